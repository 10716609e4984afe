package kvstore

// Node is either a *Map or an Entry.
type Node interface {
	node()
}

// Entry is a leaf value. Values are kept as text; a Comment is emitted
// before the key when the tree is serialized and is never recovered on parse.
type Entry struct {
	Value   string `json:"value" yaml:"value"`
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`
}

func (Entry) node() {}

// Map is an insertion-ordered mapping from string keys to nodes.
// The zero value is not usable; call New.
type Map struct {
	keys  []string
	items map[string]Node
}

func (*Map) node() {}

// New returns an empty map.
func New() *Map {
	return &Map{items: make(map[string]Node)}
}

// Len returns the number of keys. A nil map has length 0.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Get returns the node stored at key.
func (m *Map) Get(key string) (Node, bool) {
	if m == nil {
		return nil, false
	}
	n, ok := m.items[key]
	return n, ok
}

// Set stores n at key. A new key is appended to the key order; an existing
// key keeps its position. Set is the only operation that replaces values;
// use Merge for first-writer-wins accumulation.
func (m *Map) Set(key string, n Node) {
	if _, ok := m.items[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.items[key] = n
}

// Delete removes key and reports whether it was present.
func (m *Map) Delete(key string) bool {
	if _, ok := m.items[key]; !ok {
		return false
	}
	delete(m.items, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

// Child returns the map stored at key, creating an empty one when the key is
// absent. It returns nil when key already holds an Entry.
func (m *Map) Child(key string) *Map {
	n, ok := m.items[key]
	if !ok {
		child := New()
		m.Set(key, child)
		return child
	}
	child, _ := n.(*Map)
	return child
}

// Lookup walks path from m and returns the node at its end.
// An empty path returns m itself.
func (m *Map) Lookup(path ...string) (Node, bool) {
	if m == nil {
		return nil, false
	}
	var cur Node = m
	for _, key := range path {
		mm, ok := cur.(*Map)
		if !ok {
			return nil, false
		}
		if cur, ok = mm.items[key]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// Entry returns the leaf at path.
func (m *Map) Entry(path ...string) (Entry, bool) {
	n, ok := m.Lookup(path...)
	if !ok {
		return Entry{}, false
	}
	e, ok := n.(Entry)
	return e, ok
}

// Sub returns the map at path.
func (m *Map) Sub(path ...string) (*Map, bool) {
	n, ok := m.Lookup(path...)
	if !ok {
		return nil, false
	}
	mm, ok := n.(*Map)
	return mm, ok
}

// Clone returns a deep copy of m.
func (m *Map) Clone() *Map {
	if m == nil {
		return nil
	}
	out := &Map{
		keys:  make([]string, len(m.keys)),
		items: make(map[string]Node, len(m.items)),
	}
	copy(out.keys, m.keys)
	for k, n := range m.items {
		out.items[k] = cloneNode(n)
	}
	return out
}

func cloneNode(n Node) Node {
	if mm, ok := n.(*Map); ok {
		return mm.Clone()
	}
	return n
}

// Leaf is an Entry together with the keys leading to it.
type Leaf struct {
	Path  []string
	Entry Entry
}

// Leaves returns every Entry below m in depth-first insertion order.
func (m *Map) Leaves() []Leaf {
	var out []Leaf
	m.collect(nil, &out)
	return out
}

func (m *Map) collect(prefix []string, out *[]Leaf) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		path := make([]string, len(prefix)+1)
		copy(path, prefix)
		path[len(prefix)] = k

		switch n := m.items[k].(type) {
		case *Map:
			n.collect(path, out)
		case Entry:
			*out = append(*out, Leaf{Path: path, Entry: n})
		}
	}
}
