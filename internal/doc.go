// Package internal implements templated email messages.
//
// A Message wraps the mutable state of an outgoing email (mailer.Email),
// a template reference and the data to render it with. Rendering executes
// the template once and copies every non-empty section (subject, body,
// html, from_email, extra_headers) onto the email. Empty or missing
// sections never overwrite values that were set before.
//
// The exported API lives in the root mailtemplated package, which
// re-exports these types.
package internal
