// Package revert turns a consolidated settings tree back into the legacy
// one-fact-per-file directory.
//
// Each rule of the ordered table (see Rules) reads one key, or one whole
// section, and decides whether its legacy file is written. Boolean rules are
// gated: a file is produced only when the stored value has the polarity the
// rule expects, so "disable_account_avatar.txt" appears only when
// main::general/enable_account_avatar is false.
package revert
