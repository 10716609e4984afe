package legacy

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// foldName returns the comparison form of a filename: NFC normalised (macOS
// reports decomposed names) and case folded.
func foldName(name string) string {
	return cases.Fold().String(norm.NFC.String(name))
}
