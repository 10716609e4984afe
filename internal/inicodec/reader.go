package inicodec

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"gopkg.in/ini.v1"

	"github.com/roach88/migrate-gse/internal/kvstore"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// reader feeds section-based text into an ini.File one line at a time.
// ini.v1 keeps the sections and keys; the lines themselves are split here
// because its own parser unquotes values starting with a backtick or """.
//
// Values are literal: no quoting, escapes, inline comments or
// interpolation. Full-line comments start with '#' or ';'. A line indented
// deeper than the key before it continues that key's value, and a blank or
// comment line ends it. A repeated key keeps its position and takes the
// later value. Lines before any section land in DEFAULT.
type reader struct {
	file   *ini.File
	sec    *ini.Section
	key    *ini.Key
	indent int // indentation of the line that opened key
}

func newReader() *reader {
	f := ini.Empty()
	return &reader{file: f, sec: f.Section(ini.DefaultSection)}
}

// read consumes data. Every call continues the same logical file set, so
// sections repeated across calls merge.
func (r *reader) read(data []byte) error {
	r.sec, r.key = r.file.Section(ini.DefaultSection), nil

	sc := bufio.NewScanner(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for n := 1; sc.Scan(); n++ {
		if err := r.line(sc.Text()); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	return sc.Err()
}

func (r *reader) line(raw string) error {
	value := strings.TrimSpace(raw)
	if value == "" || value[0] == '#' || value[0] == ';' {
		r.key = nil
		return nil
	}

	indent := len(raw) - len(strings.TrimLeftFunc(raw, unicode.IsSpace))
	if r.key != nil && indent > r.indent {
		r.key.SetValue(r.key.Value() + "\n" + value)
		return nil
	}
	r.key, r.indent = nil, indent

	if value[0] == '[' {
		if end := strings.LastIndexByte(value, ']'); end > 1 {
			sec, err := r.file.NewSection(value[1:end])
			if err != nil {
				return err
			}
			r.sec = sec
			return nil
		}
	}

	i := strings.IndexByte(value, '=')
	if i < 0 {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	name := strings.TrimRightFunc(value[:i], unicode.IsSpace)
	if name == "" {
		return errors.New("empty key name")
	}
	key, err := r.sec.NewKey(name, strings.TrimSpace(value[i+1:]))
	if err != nil {
		return err
	}
	r.key = key
	return nil
}

// sections returns everything read so far, without DEFAULT.
func (r *reader) sections() *kvstore.Map {
	out := kvstore.New()
	for _, sec := range r.file.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}
		m := out.Child(sec.Name())
		for _, k := range sec.Keys() {
			m.Set(k.Name(), kvstore.Entry{Value: k.Value()})
		}
	}
	return out
}
