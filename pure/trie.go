package pure

// Trie maps key sequences to values by walking one nested map per key.
//
// A bounded trie keeps two generations: once the head generation holds
// maxSize entries it becomes the tail, the old tail is dropped and a fresh head
// starts. Loads consult the head first and then the tail. An unbounded trie
// (maxSize 0) never forgets, which is what interning tables need.
//
// Trie is not safe for concurrent use.
type Trie[O any] struct {
	memos   [2]*trieNode[O]
	headIdx int
	size    int
	maxSize int
}

type trieNode[O any] struct {
	children map[ComparableOrString]*trieNode[O]
	value    O
	set      bool
}

func newTrieNode[O any]() *trieNode[O] {
	return &trieNode[O]{children: map[ComparableOrString]*trieNode[O]{}}
}

// NewTrie returns a trie holding at most maxSize entries per generation.
// maxSize 0 means unbounded.
func NewTrie[O any](maxSize int) *Trie[O] {
	if maxSize < 0 {
		panic("maxSize should not be negative")
	}
	return &Trie[O]{
		memos:   [2]*trieNode[O]{newTrieNode[O](), newTrieNode[O]()},
		maxSize: maxSize,
	}
}

// Load returns the value stored under keys. The empty sequence is a valid key
// and addresses the root.
func (t *Trie[O]) Load(keys []ComparableOrString) (O, bool) {
	if n, ok := t.find(t.memos[t.headIdx], keys); ok && n.set {
		return n.value, true
	}
	if t.maxSize > 0 {
		if n, ok := t.find(t.memos[1-t.headIdx], keys); ok && n.set {
			return n.value, true
		}
	}
	var zero O
	return zero, false
}

// Store records value under keys, overwriting any previous value.
func (t *Trie[O]) Store(keys []ComparableOrString, value O) {
	if t.maxSize > 0 && t.size >= t.maxSize {
		t.headIdx = 1 - t.headIdx
		t.memos[t.headIdx] = newTrieNode[O]()
		t.size = 0
	}
	n := t.memos[t.headIdx]
	for _, k := range keys {
		child, ok := n.children[k]
		if !ok {
			child = newTrieNode[O]()
			n.children[k] = child
		}
		n = child
	}
	if !n.set {
		t.size++
	}
	n.value = value
	n.set = true
}

// LoadOrStore returns the value under keys, building and storing it with
// build when absent. loaded reports whether the value was already present.
func (t *Trie[O]) LoadOrStore(keys []ComparableOrString, build func() O) (value O, loaded bool) {
	if v, ok := t.Load(keys); ok {
		return v, true
	}
	v := build()
	t.Store(keys, v)
	return v, false
}

// Len returns the number of entries in the head generation.
func (t *Trie[O]) Len() int {
	return t.size
}

func (t *Trie[O]) find(n *trieNode[O], keys []ComparableOrString) (*trieNode[O], bool) {
	for _, k := range keys {
		child, ok := n.children[k]
		if !ok {
			return nil, false
		}
		n = child
	}
	return n, true
}
