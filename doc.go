// Package mailtemplated composes emails from a single template file with
// named sections.
//
// A template defines any of the sections subject, body, html, from_email
// and extra_headers. Rendering executes the template once and copies every
// non-empty section onto the message. Sections the template leaves out or
// renders empty keep the values set when the message was created.
//
// # Quick Start
//
//	//go:embed templates
//	var templates embed.FS
//
//	renderer, err := mailer.NewRendererWithConfig(templates, mailer.RendererConfig{TemplateDir: "templates"})
//	if err != nil {
//	    return err
//	}
//
//	msg, err := mailtemplated.New("welcome.txt", map[string]any{"name": "Ann"},
//	    mailtemplated.WithProvider(renderer),
//	    mailtemplated.WithSender(sender),
//	    mailtemplated.WithFrom("team@example.com"),
//	    mailtemplated.WithTo("ann@example.com"),
//	)
//	if err != nil {
//	    return err
//	}
//	if _, err := msg.Send(ctx, mailtemplated.AndClean()); err != nil {
//	    return err
//	}
//
// # Templates
//
// welcome.txt:
//
//	{{define "subject"}}Welcome, {{.name}}{{end}}
//	{{define "body"}}Hi {{.name}}, thanks for signing up.{{end}}
//	{{define "html"}}<p>Hi <b>{{.name}}</b>, thanks for signing up.</p>{{end}}
//
// An html section becomes the body when there is no plain text body,
// otherwise it is attached as a text/html alternative. Markdown templates
// (".md") get their html section from the rendered body.
//
// # Lifecycle
//
// A message starts unrendered. Send renders it on first use. Render can be
// called again with new data and replaces the previous output instead of
// adding to it. Clean (or the AndClean call option) drops the template name,
// the template and the context; the rendered fields stay and the message can
// still be sent or serialized, but no longer rendered.
//
// # Serialization
//
// Messages implement json.Marshaler. The template, provider, sender and
// logger are not serialized; bind them again with Restore or the Set
// methods. See pkg/job for deferred delivery through a river job queue.
//
// # Markers
//
// Sections are delimited in the rendered output by marker tokens passed to
// the template as variables (TAG_START_SUBJECT, TAG_END_SUBJECT, ...). The
// token and variable formats are configurable with SetDefaultFormat or
// WithFormat; the template provider must use the same format.
package mailtemplated
