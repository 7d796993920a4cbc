// Package section splits one rendered template into the named parts of an
// email message.
//
// A template author surrounds every part (subject, plain body, html body,
// sender, extra headers) with a pair of marker tokens. The tokens are derived
// from a Format and exposed to templates as context variables, so after
// rendering their literal occurrences delimit each part:
//
//	###start_subject###Hello {{.name}}###end_subject###
//
// With the default Format the variables are named TAG_START_SUBJECT,
// TAG_END_SUBJECT and so on.
//
// # Formats
//
// Format.Tag controls the literal marker text and accepts the {bound} and
// {block} placeholders. Format.TagVar controls the variable names and accepts
// {BOUND} and {BLOCK}. Both can be overridden process-wide:
//
//	if err := section.SetDefault(section.Format{
//		Tag:    "<!--{bound}_{block}-->",
//		TagVar: "{BOUND}_{BLOCK}_PART",
//	}); err != nil {
//		return err
//	}
//
// Markers for a Format are computed once and cached for the life of the
// process.
//
// # Extraction
//
// Extract returns the text between the first start marker and the first end
// marker with surrounding newlines removed. A missing marker is not an error,
// it only reports that the section is absent.
package section
