// Package legacy maps a directory of one-fact-per-file settings onto the
// consolidated section-based layout.
//
// The mapping is a static, ordered rule table (see Rules). Each rule
// recognises one or more legacy filenames, or a filename pattern, and turns
// the file into zero or more kvstore facts:
//
//   - KindValue: the first line of the file is the value
//   - KindFlag: the file's existence is the value; contents are never read
//   - KindPairs: every "key=value" line is one entry of a shared section
//   - KindWords: every "name value" line is one entry of a shared section
//   - KindInterfaces: interface version strings, classified by prefix
//
// Filenames are compared after NFC normalisation and Unicode case folding.
// Unknown files are skipped so that directories written by newer tools still
// migrate.
package legacy
