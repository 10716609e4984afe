package legacy

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/roach88/migrate-gse/internal/kvstore"
)

// Result is the outcome of a directory scan.
type Result struct {
	// Store holds every recognised fact: file → section → key → entry.
	Store *kvstore.Map
	// Matched lists recognised filenames in the order they were applied.
	Matched []string
	// Ignored lists directory entries no rule recognised.
	Ignored []string
	// Facts counts the facts produced, including ones Merge discarded
	// because an earlier file already set the same key.
	Facts int
}

// Empty reports whether the scan recognised nothing.
func (r *Result) Empty() bool {
	return r.Store.Len() == 0
}

// Mapper scans legacy settings directories.
type Mapper struct {
	// Logger receives per-file diagnostics. Nil discards them.
	Logger *slog.Logger
	// Rules overrides the built-in table. Nil means Rules().
	Rules []Rule
}

func (m *Mapper) logger() *slog.Logger {
	if m.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return m.Logger
}

func (m *Mapper) rules() []Rule {
	if m.Rules == nil {
		return rules
	}
	return m.Rules
}

type match struct {
	rule int
	rank int
	name string
}

// Scan reads dir (not recursively) and merges the facts of every recognised
// file into a new store.
//
// Files are applied in rule-table order, then by name precedence within a
// rule, so the outcome does not depend on how the filesystem lists entries.
// The first failure to read a recognised file aborts the scan.
func (m *Mapper) Scan(dir string) (*Result, error) {
	log := m.logger()
	table := m.rules()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &FileError{Name: dir, Op: "scan", Err: err}
	}

	result := &Result{Store: kvstore.New()}
	var matches []match
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		folded := foldName(entry.Name())
		found := false
		for i := range table {
			if rank, ok := table[i].Match(folded); ok {
				matches = append(matches, match{rule: i, rank: rank, name: entry.Name()})
				found = true
				break
			}
		}
		if !found {
			log.Debug("ignoring unrecognised file", "name", entry.Name())
			result.Ignored = append(result.Ignored, entry.Name())
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].rule != matches[j].rule {
			return matches[i].rule < matches[j].rule
		}
		if matches[i].rank != matches[j].rank {
			return matches[i].rank < matches[j].rank
		}
		return matches[i].name < matches[j].name
	})

	for _, mt := range matches {
		rule := &table[mt.rule]
		facts, err := rule.Apply(filepath.Join(dir, mt.name))
		if err != nil {
			return nil, err
		}
		for _, f := range facts {
			kvstore.Merge(result.Store, f.Fragment())
		}
		log.Debug("mapped legacy file",
			"name", mt.name,
			"kind", rule.Kind.String(),
			"file", rule.Target.File,
			"section", rule.Target.Section,
			"facts", len(facts),
		)
		result.Matched = append(result.Matched, mt.name)
		result.Facts += len(facts)
	}

	return result, nil
}

// Apply reads the legacy file at path and returns its facts in merge order.
// KindFlag rules never open the file.
func (r *Rule) Apply(path string) ([]kvstore.Fact, error) {
	if r.Kind == KindFlag {
		return []kvstore.Fact{r.fact(r.Target.Key, r.Literal, r.Comment)}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &FileError{Name: path, Op: "open", Err: err}
	}
	defer f.Close()

	switch r.Kind {
	case KindValue:
		return r.applyValue(path, f)
	case KindPairs:
		return r.applyLines(path, f, parsePair)
	case KindWords:
		return r.applyLines(path, f, parseWords)
	case KindInterfaces:
		return r.applyInterfaces(path, f)
	default:
		return nil, &RuleError{File: path, Kind: r.Kind}
	}
}

func (r *Rule) fact(key, value, comment string) kvstore.Fact {
	return kvstore.Fact{
		File:    r.Target.File,
		Section: r.Target.Section,
		Key:     key,
		Entry:   kvstore.Entry{Value: value, Comment: comment},
	}
}

func (r *Rule) applyValue(path string, rd io.Reader) ([]kvstore.Fact, error) {
	line, err := bufio.NewReader(rd).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, &FileError{Name: path, Op: "read", Err: err}
	}
	if r.KeepSpaces {
		line = strings.TrimRight(line, "\r\n")
	} else {
		line = strings.TrimSpace(line)
	}
	return []kvstore.Fact{r.fact(r.Target.Key, line, r.Comment)}, nil
}

// lineParser splits one line of a multi-entry file. skip reports comment and
// blank lines.
type lineParser func(line string) (key, value string, skip bool, err error)

var (
	errNoEquals     = errors.New("missing '=' separator")
	errNoWhitespace = errors.New("missing whitespace separator")
)

// parsePair handles "key=value" lines. The value keeps its inner and outer
// spaces; only the key is trimmed.
func parsePair(line string) (string, string, bool, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || trimmed[0] == '#' {
		return "", "", true, nil
	}
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return "", "", false, errNoEquals
	}
	return strings.TrimSpace(key), value, false, nil
}

// parseWords handles "name value" lines split at the first whitespace run.
func parseWords(line string) (string, string, bool, error) {
	line = strings.TrimSpace(line)
	if line == "" || line[0] == '#' || line[0] == ';' {
		return "", "", true, nil
	}
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return "", "", false, errNoWhitespace
	}
	return line[:i], strings.TrimSpace(line[i:]), false, nil
}

func (r *Rule) applyLines(path string, rd io.Reader, parse lineParser) ([]kvstore.Fact, error) {
	var facts []kvstore.Fact
	for _, c := range r.Control {
		facts = append(facts, r.fact(c.Key, c.Value, c.Comment))
	}

	sc := newLineScanner(rd)
	for n := 1; sc.Scan(); n++ {
		key, value, skip, err := parse(sc.Text())
		if err != nil {
			return nil, &FormatError{File: path, Line: n, Text: sc.Text(), Reason: err.Error()}
		}
		if skip {
			continue
		}
		facts = append(facts, r.fact(key, value, ""))
	}
	if err := sc.Err(); err != nil {
		return nil, &FileError{Name: path, Op: "read", Err: err}
	}
	return facts, nil
}

func (r *Rule) applyInterfaces(path string, rd io.Reader) ([]kvstore.Fact, error) {
	var facts []kvstore.Fact
	sc := newLineScanner(rd)
	for sc.Scan() {
		line := cleanInterfaceLine(sc.Text())
		if line == "" {
			continue
		}
		name, ok := ClassifyInterface(line)
		if !ok {
			continue
		}
		facts = append(facts, r.fact(name, line, ""))
	}
	if err := sc.Err(); err != nil {
		return nil, &FileError{Name: path, Op: "read", Err: err}
	}
	return facts, nil
}

// maxLine bounds a single line of a legacy file; app paths can be long.
const maxLine = 1 << 20

func newLineScanner(rd io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, 0, 4096), maxLine)
	return sc
}
