package render

import (
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Differ renders line diffs between two versions of a file.
type Differ struct {
	// Color adds ANSI colors: removals red, additions green, headers bold.
	Color bool
}

func (d Differ) paint(attr color.Attribute) *color.Color {
	c := color.New(attr)
	if d.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// Diff returns a line diff of before → after headed by name, or "" when the
// two are identical. Missing files compare as empty.
func (d Differ) Diff(name, before, after string) string {
	if before == after {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	header := d.paint(color.Bold)
	del := d.paint(color.FgRed)
	ins := d.paint(color.FgGreen)

	var sb strings.Builder
	sb.WriteString(header.Sprint("--- "+name) + "\n")
	sb.WriteString(header.Sprint("+++ "+name) + "\n")
	for _, diff := range diffs {
		for _, line := range splitLines(diff.Text) {
			switch diff.Type {
			case diffmatchpatch.DiffDelete:
				sb.WriteString(del.Sprint("-"+line) + "\n")
			case diffmatchpatch.DiffInsert:
				sb.WriteString(ins.Sprint("+"+line) + "\n")
			case diffmatchpatch.DiffEqual:
				sb.WriteString(" " + line + "\n")
			}
		}
	}
	return sb.String()
}

// splitLines splits text after each newline. A trailing newline does not
// produce an empty final line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	return lines
}
