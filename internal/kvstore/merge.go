package kvstore

// Merge folds src into dest in place.
//
// For each key of src, in order:
//   - absent from dest: a deep copy of the src subtree is appended;
//   - both sides hold a *Map: the two maps are merged recursively;
//   - anything else: dest keeps its value and src's is discarded.
//
// src is never mutated. Merge has no failure mode.
func Merge(dest, src *Map) {
	if dest == nil || src == nil {
		return
	}
	for _, key := range src.keys {
		sv := src.items[key]
		dv, ok := dest.items[key]
		if !ok {
			dest.Set(key, cloneNode(sv))
			continue
		}
		dm, dIsMap := dv.(*Map)
		sm, sIsMap := sv.(*Map)
		if dIsMap && sIsMap {
			Merge(dm, sm)
		}
	}
}

// Fragment builds the one-entry store file → section → key → e.
func Fragment(file, section, key string, e Entry) *Map {
	root := New()
	root.Child(file).Child(section).Set(key, e)
	return root
}

// Fact is one configuration item addressed by its full path.
type Fact struct {
	File    string
	Section string
	Key     string
	Entry   Entry
}

// Fragment returns the one-entry store holding f.
func (f Fact) Fragment() *Map {
	return Fragment(f.File, f.Section, f.Key, f.Entry)
}
