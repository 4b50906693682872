package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/wikibook/internal/book"
	ferrors "git.home.luguber.info/inful/wikibook/internal/foundation/errors"
	"git.home.luguber.info/inful/wikibook/internal/manifest"
	"git.home.luguber.info/inful/wikibook/internal/storage"
)

// fixture topics, in reading order:
//
//	a
//	b
//	  c
//	    g
//	  d  (tocExclude)
//	  e  (tocExcludeChildren)
//	    f
var fixtureFiles = map[string]string{
	"a.md": "A body.\n",
	"b.md": "# B\n\nBody.\n",
	"c.md": "C summary.\n",
	"d.md": "D.\n",
	"e.md": "# E\n",
	"f.md": "F.\n",
	"g.md": "G.\n",
}

func fixtureManifest() *manifest.Book {
	m := &manifest.Book{
		ProjectDir: "/book",
		Topics: []manifest.TopicSpec{
			{Source: "a.md"},
			{Source: "b.md", Topics: []manifest.TopicSpec{
				{Source: "c.md", Topics: []manifest.TopicSpec{{Source: "g.md"}}},
				{Source: "d.md", TocExclude: true},
				{Source: "e.md", TocExcludeChildren: true, Topics: []manifest.TopicSpec{{Source: "f.md"}}},
			}},
		},
	}
	m.ApplyDefaults()
	return m
}

func buildFixture(t *testing.T, m *manifest.Book) *book.Book {
	t.Helper()
	store := storage.NewMemory()
	for name, text := range fixtureFiles {
		require.NoError(t, store.WriteTextFile("/book/"+name, text))
	}
	b, err := book.Build(m, store, book.NewLoader(store, nil))
	require.NoError(t, err)
	return b
}

func topic(t *testing.T, b *book.Book, name string) *book.Topic {
	t.Helper()
	tp, ok := b.Lookup("/book/" + name)
	require.True(t, ok, name)
	return tp
}

func TestBreadcrumbs(t *testing.T) {
	b := buildFixture(t, fixtureManifest())

	assert.Equal(t, "", Breadcrumbs(b, topic(t, b, "a.md")))
	assert.Equal(t, "<sup>[[b]]</sup>\n\n", Breadcrumbs(b, topic(t, b, "c.md")))
	assert.Equal(t, "<sup>[[b]] | [[e]]</sup>\n\n", Breadcrumbs(b, topic(t, b, "f.md")))
	assert.Equal(t, "<sup>[[b]] | [[c]]</sup>\n\n", Breadcrumbs(b, topic(t, b, "g.md")))
}

func TestPagination(t *testing.T) {
	b := buildFixture(t, fixtureManifest())

	assert.Equal(t, "[[Next Page &gt;|b]]", Pagination(b, topic(t, b, "a.md")))
	assert.Equal(t, "[[&lt; Previous Page|b]] | [[Next Page &gt;|g]]", Pagination(b, topic(t, b, "c.md")))
	assert.Equal(t, "[[&lt; Previous Page|e]]", Pagination(b, topic(t, b, "f.md")))
}

func TestPagination_SingleTopic(t *testing.T) {
	m := &manifest.Book{ProjectDir: "/book", Topics: []manifest.TopicSpec{{Source: "a.md"}}}
	m.ApplyDefaults()
	b := buildFixture(t, m)

	assert.Equal(t, "", Pagination(b, topic(t, b, "a.md")))
}

func TestTopicListing(t *testing.T) {
	b := buildFixture(t, fixtureManifest())

	got := TopicListing("Child Topics", []*book.Topic{topic(t, b, "c.md"), topic(t, b, "e.md")})
	want := "\n\n---\n\n#### Child Topics:\n" +
		"\n- **[[c]]**<br/>\n  C summary.\n" +
		"\n- **[[e]]**\n"
	assert.Equal(t, want, got)
}

func TestTocListing(t *testing.T) {
	b := buildFixture(t, fixtureManifest())
	roots := b.Children()

	tests := []struct {
		depth int
		want  string
	}{
		{-1, "- [[a]]\n- [[b]]\n"},
		{0, "- [[a]]\n- [[b]]\n"},
		{1, "- [[a]]\n- [[b]]\n  - [[c]]\n  - [[e]]\n"},
		{2, "- [[a]]\n- [[b]]\n  - [[c]]\n    - [[g]]\n  - [[e]]\n"},
		{fullTocDepth, "- [[a]]\n- [[b]]\n  - [[c]]\n    - [[g]]\n  - [[e]]\n"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TocListing(b, roots, tt.depth), "depth %d", tt.depth)
	}
}

func TestTocListing_ExcludeChildrenAtAnyDepth(t *testing.T) {
	b := buildFixture(t, fixtureManifest())

	for _, depth := range []int{0, 1, 5, fullTocDepth} {
		assert.NotContains(t, TocListing(b, b.Children(), depth), "[[f]]")
		assert.NotContains(t, TocListing(b, b.Children(), depth), "[[d]]")
	}
}

func TestTocVariables(t *testing.T) {
	m := fixtureManifest()
	depth := 1
	m.TocDepth = &depth
	m.TocRootTopic = "b.md"
	b := buildFixture(t, m)

	vars := TocVariables(b)
	require.Len(t, vars, 2)
	assert.Equal(t, Variable{FullTocPlaceholder, "- [[c]]\n  - [[g]]\n- [[e]]\n"}, vars[0])
	assert.Equal(t, Variable{TocPlaceholder, "- [[c]]\n- [[e]]\n"}, vars[1])
}

func TestSubstitutePlaceholders_FirstOccurrenceOnly(t *testing.T) {
	vars := []Variable{
		{FullTocPlaceholder, "FULL"},
		{TocPlaceholder, "SHORT"},
	}

	got := SubstitutePlaceholders("{{TOC}} / {{FULL_TOC}} / {{TOC}} / {{OTHER}}", vars)
	assert.Equal(t, "SHORT / FULL / {{TOC}} / {{OTHER}}", got)
}

func TestSourceLink(t *testing.T) {
	tests := []struct {
		name string
		base string
		want string
	}{
		{"unset", "", ""},
		{"directory base", "https://example.com/repo/blob/main/", "\n<sub>Source: [c.md](https://example.com/repo/blob/main/c.md)</sub>\n"},
		{"base without trailing slash", "https://example.com/repo/blob/main", "\n<sub>Source: [c.md](https://example.com/repo/blob/c.md)</sub>\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := fixtureManifest()
			m.SourceBaseURL = tt.base
			b := buildFixture(t, m)

			got, err := SourceLink(b, topic(t, b, "c.md"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSourceLink_InvalidBase(t *testing.T) {
	m := fixtureManifest()
	m.SourceBaseURL = "http://[::1"
	b := buildFixture(t, m)

	_, err := SourceLink(b, topic(t, b, "a.md"))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestTopic_Full(t *testing.T) {
	m := fixtureManifest()
	m.SourceBaseURL = "https://example.com/repo/blob/main/"
	m.ReferenceTable = []manifest.ReferenceEntry{
		{Source: []string{"a.md"}, Target: []string{"b.md"}},
	}
	b := buildFixture(t, m)

	got, err := Topic(b, topic(t, b, "b.md"))
	require.NoError(t, err)

	want := "# B\n\nBody.\n" +
		"\n\n<br/>[[&lt; Previous Page|a]] | [[Next Page &gt;|c]]\n" +
		"\n\n---\n\n#### Related Topics:\n" +
		"\n- **[[a]]**<br/>\n  A body.\n" +
		"\n\n---\n\n#### Child Topics:\n" +
		"\n- **[[c]]**<br/>\n  C summary.\n" +
		"\n- **[[d]]**<br/>\n  D.\n" +
		"\n- **[[e]]**\n" +
		"\n" +
		"\n<sub>Source: [b.md](https://example.com/repo/blob/main/b.md)</sub>\n"
	assert.Equal(t, want, got)
}

func TestTopic_Minimal(t *testing.T) {
	b := buildFixture(t, fixtureManifest())

	got, err := Topic(b, topic(t, b, "a.md"))
	require.NoError(t, err)
	assert.Equal(t, "A body.\n\n\n<br/>[[Next Page &gt;|b]]\n\n", got)
}

func TestTopic_Nested(t *testing.T) {
	b := buildFixture(t, fixtureManifest())

	got, err := Topic(b, topic(t, b, "f.md"))
	require.NoError(t, err)
	assert.Equal(t, "<sup>[[b]] | [[e]]</sup>\n\nF.\n\n\n<br/>[[&lt; Previous Page|e]]\n\n", got)
}
