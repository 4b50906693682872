// Package refmap indexes "related topic" associations declared in a book's
// reference table.
//
// A reference table entry names a list of source topics and a list of target
// topics. Every (source, target) pair of the cross product becomes an edge whose
// direction depends on the entry type:
//
//   - normal: source references target and target references source
//   - sourceonly: source references target
//   - targetonly: target references source
//
// Edges are kept in sets, so the same pair declared twice collapses into one, and
// a topic is never related to itself.
package refmap

import (
	"fmt"

	ferrors "git.home.luguber.info/inful/wikibook/internal/foundation/errors"
	"git.home.luguber.info/inful/wikibook/internal/util/sets"
)

// Type selects which directions an entry maps.
type Type string

const (
	TypeNormal     Type = "normal"
	TypeSourceOnly Type = "sourceonly"
	TypeTargetOnly Type = "targetonly"
)

// Entry is one row of a reference table. An empty Type means TypeNormal.
type Entry struct {
	Type   Type
	Source []string
	Target []string
}

// directions reports whether the entry maps source->target and target->source.
func (t Type) directions() (sourceToTarget, targetToSource bool, err error) {
	switch t {
	case TypeNormal, "":
		return true, true, nil
	case TypeSourceOnly:
		return true, false, nil
	case TypeTargetOnly:
		return false, true, nil
	default:
		return false, false, fmt.Errorf("unknown reference type %q", t)
	}
}

// Map is a directed association index between topic paths.
// The zero value is not usable; call New.
type Map struct {
	edges map[string]sets.Set[string]
}

// New creates an empty reference map.
func New() *Map {
	return &Map{edges: make(map[string]sets.Set[string])}
}

// AddEntries adds the edges declared by each entry.
func (m *Map) AddEntries(entries []Entry) error {
	for i, entry := range entries {
		sourceToTarget, targetToSource, err := entry.Type.directions()
		if err != nil {
			return ferrors.ConfigError("invalid reference table entry").
				WithContext("entry", i).
				WithCause(err).
				Build()
		}
		for _, source := range entry.Source {
			for _, target := range entry.Target {
				if sourceToTarget {
					m.AddEdge(source, target)
				}
				if targetToSource {
					m.AddEdge(target, source)
				}
			}
		}
	}
	return nil
}

// AddEdge records that from references to. Self-edges are dropped.
func (m *Map) AddEdge(from, to string) {
	if from == to {
		return
	}
	set, ok := m.edges[from]
	if !ok {
		set = sets.New[string]()
		m.edges[from] = set
	}
	set.Add(to)
}

// RelatedTo returns the paths referenced by path in ascending order.
// It returns an empty, non-nil slice when path has no edges.
func (m *Map) RelatedTo(path string) []string {
	return sets.Sorted(m.edges[path])
}

// Sources returns every path that has at least one outgoing edge, sorted.
func (m *Map) Sources() []string {
	keys := sets.New[string]()
	for k := range m.edges {
		keys.Add(k)
	}
	return sets.Sorted(keys)
}
