package book

import (
	"errors"
	"io/fs"

	ferrors "git.home.luguber.info/inful/wikibook/internal/foundation/errors"
	"git.home.luguber.info/inful/wikibook/internal/manifest"
	"git.home.luguber.info/inful/wikibook/internal/pathutil"
	"git.home.luguber.info/inful/wikibook/internal/refmap"
	"git.home.luguber.info/inful/wikibook/internal/storage"
)

// Book is the linked topic graph of one manifest.
type Book struct {
	Manifest   *manifest.Book
	ProjectDir string

	topics  *forest
	special *forest
	tocRoot int
	refs    *refmap.Map
}

// Build loads every special and hierarchical topic declared by m and links them.
//
// Build fails on the first topic whose path escapes the project directory, is
// declared twice, or does not exist. It also fails when tocRootTopic or any
// reference table path names something that is not a loaded topic.
func Build(m *manifest.Book, store storage.Store, loader *Loader) (*Book, error) {
	b := &Book{
		Manifest:   m,
		ProjectDir: m.ProjectDir,
		topics:     newForest(false),
		special:    newForest(true),
		tocRoot:    none,
		refs:       refmap.New(),
	}

	entries := m.RefEntries()
	if err := b.refs.AddEntries(entries); err != nil {
		return nil, err
	}

	if err := b.loadForest(m.Special, b.special, store, loader); err != nil {
		return nil, err
	}
	if err := b.loadForest(m.Topics, b.topics, store, loader); err != nil {
		return nil, err
	}

	if err := b.checkReferences(entries); err != nil {
		return nil, err
	}
	if err := b.linkTocRoot(); err != nil {
		return nil, err
	}
	b.special.link()
	b.topics.link()

	return b, nil
}

// checkReferences rejects reference table paths that match no hierarchical
// topic, on either side of an entry.
func (b *Book) checkReferences(entries []refmap.Entry) error {
	for i, e := range entries {
		for _, p := range append(append([]string(nil), e.Source...), e.Target...) {
			if _, ok := b.topics.lookup(p); !ok {
				return ferrors.UnresolvedReferenceError("reference table path does not match a topic").
					WithContext("entry", i).
					WithContext("reference", pathutil.RelativeTo(b.ProjectDir, p)).
					Build()
			}
		}
	}
	return nil
}

func (b *Book) loadForest(specs []manifest.TopicSpec, f *forest, store storage.Store, loader *Loader) error {
	return b.walk(specs, "", func(spec *manifest.TopicSpec, parentSource string) error {
		source := pathutil.Resolve(b.ProjectDir, spec.Source)

		if !pathutil.IsContainedIn(b.ProjectDir, source) {
			return ferrors.PathContainmentError("topic source is outside the project directory").
				WithContext("source", spec.Source).
				WithContext("project", b.ProjectDir).
				Build()
		}
		if _, dup := b.topics.lookup(source); dup {
			return duplicateTopic(spec.Source)
		}
		if _, dup := b.special.lookup(source); dup {
			return duplicateTopic(spec.Source)
		}
		if _, err := store.Stat(source); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return ferrors.MissingFileError("topic source does not exist").
					WithContext("source", spec.Source).
					WithContext("path", source).
					Build()
			}
			return err
		}

		topic, err := loader.Load(source)
		if err != nil {
			return err
		}
		topic.Meta = spec
		topic.parentSource = parentSource
		topic.childSources = make([]string, len(spec.Topics))
		for i := range spec.Topics {
			topic.childSources[i] = pathutil.Resolve(b.ProjectDir, spec.Topics[i].Source)
		}
		f.add(topic)
		return nil
	})
}

func duplicateTopic(source string) error {
	return ferrors.DuplicateTopicError("topic already defined").
		WithContext("source", source).
		Build()
}

// walk visits specs in pre-order, passing the resolved source of each node's
// parent ("" at the top level).
func (b *Book) walk(specs []manifest.TopicSpec, parentSource string, fn func(*manifest.TopicSpec, string) error) error {
	for i := range specs {
		spec := &specs[i]
		if err := fn(spec, parentSource); err != nil {
			return err
		}
		if len(spec.Topics) > 0 {
			self := pathutil.Resolve(b.ProjectDir, spec.Source)
			if err := b.walk(spec.Topics, self, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *Book) linkTocRoot() error {
	if b.Manifest.TocRootTopic == "" {
		b.tocRoot = none
		return nil
	}
	source := pathutil.Resolve(b.ProjectDir, b.Manifest.TocRootTopic)
	t, ok := b.topics.lookup(source)
	if !ok {
		return ferrors.UnresolvedReferenceError("tocRootTopic does not match a topic").
			WithContext("tocRootTopic", b.Manifest.TocRootTopic).
			Build()
	}
	b.tocRoot = t.index
	return nil
}

// Topics returns the hierarchical topics in reading order.
func (b *Book) Topics() []*Topic {
	return append([]*Topic(nil), b.topics.topics...)
}

// SpecialTopics returns the special topics in declaration order.
func (b *Book) SpecialTopics() []*Topic {
	return append([]*Topic(nil), b.special.topics...)
}

// Lookup finds a hierarchical topic by absolute source path.
func (b *Book) Lookup(source string) (*Topic, bool) {
	return b.topics.lookup(source)
}

// Children returns the book's top-level topics.
func (b *Book) Children() []*Topic {
	return b.topics.list(b.topics.roots())
}

// TocRoot returns the topic anchoring TOC listings, or nil when the book itself
// is the root.
func (b *Book) TocRoot() *Topic {
	return b.topics.get(b.tocRoot)
}

// TocRootChildren returns the children of the TOC root.
func (b *Book) TocRootChildren() []*Topic {
	if root := b.TocRoot(); root != nil {
		return b.ChildrenOf(root)
	}
	return b.Children()
}

// Parent returns t's parent, or nil for a top-level topic.
func (b *Book) Parent(t *Topic) *Topic {
	return b.forestOf(t).get(t.parent)
}

// ChildrenOf returns t's children in declaration order.
func (b *Book) ChildrenOf(t *Topic) []*Topic {
	return b.forestOf(t).list(t.children)
}

// Previous returns the topic before t in reading order, or nil.
func (b *Book) Previous(t *Topic) *Topic {
	return b.forestOf(t).get(t.previous)
}

// Next returns the topic after t in reading order, or nil.
func (b *Book) Next(t *Topic) *Topic {
	return b.forestOf(t).get(t.next)
}

// Ancestors returns t's parent chain ordered from the top-level topic down to
// t's direct parent.
func (b *Book) Ancestors(t *Topic) []*Topic {
	var chain []*Topic
	for p := b.Parent(t); p != nil; p = b.Parent(p) {
		chain = append([]*Topic{p}, chain...)
	}
	return chain
}

// Related returns the topics associated with t by the reference table, ordered
// by source path. A reference naming a path that is not a loaded topic is an
// error.
func (b *Book) Related(t *Topic) ([]*Topic, error) {
	paths := b.refs.RelatedTo(t.Source)
	out := make([]*Topic, 0, len(paths))
	for _, p := range paths {
		related, ok := b.topics.lookup(p)
		if !ok {
			return nil, ferrors.UnresolvedReferenceError("reference table path does not match a topic").
				WithContext("topic", pathutil.RelativeTo(b.ProjectDir, t.Source)).
				WithContext("reference", pathutil.RelativeTo(b.ProjectDir, p)).
				Build()
		}
		out = append(out, related)
	}
	return out, nil
}

// RelativeSource returns t's source relative to the project directory with
// forward slashes.
func (b *Book) RelativeSource(t *Topic) string {
	return pathutil.RelativeTo(b.ProjectDir, t.Source)
}

func (b *Book) forestOf(t *Topic) *forest {
	if t.special {
		return b.special
	}
	return b.topics
}
