// Package inicodec reads and writes the section-based settings files.
//
// The written form is fixed:
//
//	[section]
//	# comment
//	key=value
//	<blank line>
//
// A comment line is emitted only for entries that carry one. Sections and keys
// follow the store's insertion order.
//
// Parsing is delegated to gopkg.in/ini.v1 configured to match the written
// form: "=" is the only delimiter, "#" and ";" start comment lines only at the
// beginning of a line, a trailing backslash is literal and quotes are kept.
// The parser's implicit DEFAULT section is dropped. Comments are not
// recovered, so Parse(Marshal(s)) equals s minus its comments.
package inicodec
