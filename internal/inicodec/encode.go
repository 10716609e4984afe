package inicodec

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/creachadair/atomicfile"

	"github.com/roach88/migrate-gse/internal/kvstore"
)

// Encode writes sections (section → key → entry) to w.
func Encode(w io.Writer, sections *kvstore.Map) error {
	bw := bufio.NewWriter(w)
	for _, name := range sections.Keys() {
		n, _ := sections.Get(name)
		sec, ok := n.(*kvstore.Map)
		if !ok {
			return &StructureError{Path: []string{name}, Reason: "value outside any section"}
		}

		bw.WriteString("[" + name + "]\n")
		for _, key := range sec.Keys() {
			kn, _ := sec.Get(key)
			e, ok := kn.(kvstore.Entry)
			if !ok {
				return &StructureError{Path: []string{name, key}, Reason: "nested deeper than section/key"}
			}
			if e.Comment != "" {
				bw.WriteString("# " + e.Comment + "\n")
			}
			bw.WriteString(key + "=" + e.Value + "\n")
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

// Marshal returns the encoded form of sections.
func Marshal(sections *kvstore.Map) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, sections); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalStore encodes every destination file of store, keyed by file name.
// The order of names follows the store.
func MarshalStore(store *kvstore.Map) ([]string, map[string][]byte, error) {
	names := store.Keys()
	out := make(map[string][]byte, len(names))
	for _, name := range names {
		sections, ok := store.Sub(name)
		if !ok {
			return nil, nil, &StructureError{Path: []string{name}, Reason: "destination file is not a map"}
		}
		data, err := Marshal(sections)
		if err != nil {
			return nil, nil, err
		}
		out[name] = data
	}
	return names, out, nil
}

// WriteFiles creates dir and writes one file per destination file of store,
// named exactly as its key. Each file is replaced atomically. It returns the
// written paths in store order.
func WriteFiles(dir string, store *kvstore.Map) ([]string, error) {
	names, files, err := MarshalStore(store)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &FileError{Op: "write", Path: dir, Err: err}
	}

	written := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := atomicfile.WriteData(path, files[name], 0o644); err != nil {
			return written, &FileError{Op: "write", Path: path, Err: err}
		}
		written = append(written, path)
	}
	return written, nil
}
