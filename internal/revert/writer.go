package revert

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/creachadair/atomicfile"

	"github.com/roach88/migrate-gse/internal/kvstore"
)

// Output is one legacy file produced by a rule.
type Output struct {
	Name    string `json:"name" yaml:"name"`
	Path    string `json:"path" yaml:"path"`
	Content string `json:"content" yaml:"content"`
}

// Report lists what a Write produced, in rule order.
type Report struct {
	Written []Output `json:"written" yaml:"written"`
}

// Count returns the number of files produced.
func (r *Report) Count() int {
	if r == nil {
		return 0
	}
	return len(r.Written)
}

// Writer renders the reverse table into a directory of legacy files.
type Writer struct {
	// Dir receives the legacy files. It is created on the first write.
	Dir string
	// Logger receives per-file diagnostics. Nil discards them.
	Logger *slog.Logger
	// DryRun renders every file into the report without touching disk.
	DryRun bool
	// Rules overrides the built-in table. Nil means Rules().
	Rules []Rule
}

func (w *Writer) logger() *slog.Logger {
	if w.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return w.Logger
}

// Write applies every rule to cfg (section → key → entry). The first failed
// write aborts and returns the files written so far.
func (w *Writer) Write(cfg *kvstore.Map) (*Report, error) {
	log := w.logger()
	table := w.Rules
	if table == nil {
		table = rules
	}

	report := &Report{}
	created := false
	for i := range table {
		r := &table[i]
		content, ok := r.Render(cfg)
		if !ok {
			continue
		}
		out := Output{Name: r.File, Path: filepath.Join(w.Dir, r.File), Content: content}

		if !w.DryRun {
			if !created {
				if err := os.MkdirAll(w.Dir, 0o755); err != nil {
					return report, &WriteError{Path: w.Dir, Err: err}
				}
				created = true
			}
			if err := atomicfile.WriteData(out.Path, []byte(content), 0o644); err != nil {
				return report, &WriteError{Path: out.Path, Err: err}
			}
		}

		log.Debug("legacy file rendered",
			"file", r.File,
			"strategy", r.Strategy.String(),
			"section", r.Section,
			"dry_run", w.DryRun)
		report.Written = append(report.Written, out)
	}
	return report, nil
}
