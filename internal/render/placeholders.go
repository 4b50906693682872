package render

import (
	"strings"

	"git.home.luguber.info/inful/wikibook/internal/book"
)

// Placeholder tokens recognized in topic text.
const (
	FullTocPlaceholder = "{{FULL_TOC}}"
	TocPlaceholder     = "{{TOC}}"
)

// fullTocDepth is deep enough to list any realistic book completely.
const fullTocDepth = 999999

// Variable is one placeholder and its replacement.
type Variable struct {
	Placeholder string
	Value       string
}

// TocVariables returns the TOC placeholders of b, listing the children of the
// TOC root. {{TOC}} honors the manifest's tocDepth.
func TocVariables(b *book.Book) []Variable {
	roots := b.TocRootChildren()
	return []Variable{
		{Placeholder: FullTocPlaceholder, Value: TocListing(b, roots, fullTocDepth)},
		{Placeholder: TocPlaceholder, Value: TocListing(b, roots, b.Manifest.Depth()-1)},
	}
}

// SubstitutePlaceholders replaces the first occurrence of each placeholder in
// text, in the order vars are given. Later occurrences of the same placeholder
// are left untouched.
func SubstitutePlaceholders(text string, vars []Variable) string {
	for _, v := range vars {
		text = strings.Replace(text, v.Placeholder, v.Value, 1)
	}
	return text
}
