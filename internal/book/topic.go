package book

import "git.home.luguber.info/inful/wikibook/internal/manifest"

const none = -1

// Topic is one loaded topic file plus its position in the graph.
type Topic struct {
	// Source is the absolute path of the topic file and its identity.
	Source  string
	Title   string
	Summary string
	// Text is the topic body after the wiki transform.
	Text string
	// Meta is the manifest declaration the topic was loaded from.
	Meta *manifest.TopicSpec

	special  bool
	index    int
	parent   int
	children []int
	previous int
	next     int

	// Declared references, resolved into indices by the linking pass.
	parentSource string
	childSources []string
}

// TocExclude reports whether the topic is hidden from TOC listings.
func (t *Topic) TocExclude() bool {
	return t.Meta != nil && t.Meta.TocExclude
}

// TocExcludeChildren reports whether TOC listings stop descending at the topic.
func (t *Topic) TocExcludeChildren() bool {
	return t.Meta != nil && t.Meta.TocExcludeChildren
}

// forest is an arena of topics with a source path index.
type forest struct {
	special bool
	topics  []*Topic
	index   map[string]int
}

func newForest(special bool) *forest {
	return &forest{special: special, index: make(map[string]int)}
}

func (f *forest) add(t *Topic) {
	t.special = f.special
	t.index = len(f.topics)
	f.topics = append(f.topics, t)
	f.index[t.Source] = t.index
}

func (f *forest) lookup(source string) (*Topic, bool) {
	i, ok := f.index[source]
	if !ok {
		return nil, false
	}
	return f.topics[i], true
}

func (f *forest) get(i int) *Topic {
	if i == none {
		return nil
	}
	return f.topics[i]
}

func (f *forest) list(indices []int) []*Topic {
	out := make([]*Topic, len(indices))
	for i, idx := range indices {
		out[i] = f.topics[idx]
	}
	return out
}

// link resolves declared parent and child paths into indices and threads the
// previous/next chain through the arena in load order.
func (f *forest) link() {
	last := len(f.topics) - 1
	for i, t := range f.topics {
		t.parent = none
		if t.parentSource != "" {
			if p, ok := f.index[t.parentSource]; ok {
				t.parent = p
			}
		}

		t.children = make([]int, 0, len(t.childSources))
		for _, src := range t.childSources {
			if c, ok := f.index[src]; ok {
				t.children = append(t.children, c)
			}
		}

		t.previous, t.next = none, none
		if i > 0 {
			t.previous = i - 1
		}
		if i < last {
			t.next = i + 1
		}
	}
}

func (f *forest) roots() []int {
	out := []int{}
	for i, t := range f.topics {
		if t.parent == none {
			out = append(out, i)
		}
	}
	return out
}
