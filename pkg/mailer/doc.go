// Package mailer holds the email model, the transport interface and the
// template provider used by templated messages.
//
// # Architecture
//
//   - Email: mutable state of an outgoing message (subject, body,
//     alternatives, attachments, recipients, headers)
//   - Sender: interface that email transports implement
//   - TemplateProvider / Template: resolve a template name and execute it
//   - Renderer: TemplateProvider over an fs.FS using text/template
//
// Transports live in subpackages: resend, postmark, smtp, devsender
// (files on disk) and memory (in-process outbox).
//
// # Templates
//
// The Renderer executes every template through a generated layout that
// prints each section between marker tokens, so a template defines only the
// sections it needs:
//
//	---
//	extends: layout.md
//	subject: Welcome, {{.name}}
//	extra_headers:
//	  X-Campaign: onboarding
//	---
//	Hello **{{.name}}**!
//
//	[!button|Get started]({{.url}})
//
// Frontmatter keys are case-insensitive. "subject", "from_email" and
// "extra_headers" set sections unless the template defines them with
// {{define}}. Text outside of any define is the body. A ".md" template gets
// an html section converted from its body with goldmark.
//
// Template funcs:
//
//   - markdown: converts a string to html
//   - section: renders another section, e.g. {{section "body" .}}
//
// The output is plain text/template: values are not html-escaped.
//
// # Button syntax
//
// [!button|Label](URL) renders a call-to-action anchor. Its class and inline
// style come from RendererConfig.
package mailer
