// Package render produces the GitHub wiki markdown for a built book: breadcrumbs,
// pagination, topic listings, TOC listings and the final page of each topic.
//
// Every function here is pure; the book graph is only read.
package render

import (
	"net/url"
	"strings"

	"git.home.luguber.info/inful/wikibook/internal/book"
	ferrors "git.home.luguber.info/inful/wikibook/internal/foundation/errors"
)

// Listing headings.
const (
	RelatedTopicsHeading = "Related Topics"
	ChildTopicsHeading   = "Child Topics"
)

// Breadcrumbs links every ancestor of t, outermost first. It returns "" for a
// top-level topic.
func Breadcrumbs(b *book.Book, t *book.Topic) string {
	ancestors := b.Ancestors(t)
	if len(ancestors) == 0 {
		return ""
	}
	crumbs := make([]string, len(ancestors))
	for i, a := range ancestors {
		crumbs[i] = "[[" + a.Title + "]]"
	}
	return "<sup>" + strings.Join(crumbs, " | ") + "</sup>\n\n"
}

// Pagination links the previous and next topics in reading order. Absent sides
// are omitted; it returns "" when t has neither.
func Pagination(b *book.Book, t *book.Topic) string {
	var parts []string
	if prev := b.Previous(t); prev != nil {
		parts = append(parts, "[[&lt; Previous Page|"+prev.Title+"]]")
	}
	if next := b.Next(t); next != nil {
		parts = append(parts, "[[Next Page &gt;|"+next.Title+"]]")
	}
	return strings.Join(parts, " | ")
}

// TopicListing renders a headed bullet list of topics with their summaries.
func TopicListing(heading string, topics []*book.Topic) string {
	var sb strings.Builder
	sb.WriteString("\n\n---\n\n#### " + heading + ":\n")
	for _, t := range topics {
		sb.WriteString("\n- **[[" + t.Title + "]]**")
		if t.Summary != "" {
			sb.WriteString("<br/>\n  " + t.Summary)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// TocListing renders an indented bullet list of topics and their descendants.
//
// Topics marked tocExclude are skipped along with their subtree. A topic marked
// tocExcludeChildren is listed but not descended into. Children are listed only
// while maxDepth is above zero, and each level down spends one unit of depth.
func TocListing(b *book.Book, topics []*book.Topic, maxDepth int) string {
	var sb strings.Builder
	writeToc(&sb, b, "", topics, maxDepth)
	return sb.String()
}

func writeToc(sb *strings.Builder, b *book.Book, padding string, topics []*book.Topic, maxDepth int) {
	for _, t := range topics {
		if t.TocExclude() {
			continue
		}
		sb.WriteString(padding + "- [[" + t.Title + "]]\n")

		if t.TocExcludeChildren() || maxDepth <= 0 {
			continue
		}
		if children := b.ChildrenOf(t); len(children) > 0 {
			writeToc(sb, b, padding+"  ", children, maxDepth-1)
		}
	}
}

// SourceLink renders the attribution line pointing at t's source file under the
// book's sourceBaseUrl. It returns "" when no base URL is configured.
func SourceLink(b *book.Book, t *book.Topic) (string, error) {
	base := b.Manifest.SourceBaseURL
	if base == "" {
		return "", nil
	}
	rel := b.RelativeSource(t)

	baseURL, err := url.Parse(base)
	if err != nil {
		return "", ferrors.ConfigError("invalid sourceBaseUrl").
			WithCause(err).
			WithContext("sourceBaseUrl", base).
			Build()
	}
	relURL, err := url.Parse(rel)
	if err != nil {
		return "", ferrors.ConfigError("topic path is not a valid URL reference").
			WithCause(err).
			WithContext("source", rel).
			Build()
	}

	return "\n<sub>Source: [" + rel + "](" + baseURL.ResolveReference(relURL).String() + ")</sub>\n", nil
}

// Topic renders the complete page for t: breadcrumbs, body, pagination, related
// and child listings, then the source link. Sections without content are left
// out entirely.
func Topic(b *book.Book, t *book.Topic) (string, error) {
	related, err := b.Related(t)
	if err != nil {
		return "", err
	}
	source, err := SourceLink(b, t)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(Breadcrumbs(b, t))
	sb.WriteString(t.Text)
	if pagination := Pagination(b, t); pagination != "" {
		sb.WriteString("\n\n<br/>" + pagination + "\n")
	}
	if len(related) > 0 {
		sb.WriteString(TopicListing(RelatedTopicsHeading, related))
	}
	if children := b.ChildrenOf(t); len(children) > 0 {
		sb.WriteString(TopicListing(ChildTopicsHeading, children))
	}
	sb.WriteString("\n")
	sb.WriteString(source)
	return sb.String(), nil
}
