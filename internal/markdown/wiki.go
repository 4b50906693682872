package markdown

import "regexp"

var (
	// ![alt](./path) with an optional ./ or ../ prefix.
	imageEmbedPattern = regexp.MustCompile(`!\[([^\]]*)\]\((\.\.?/)?([^)]+)\)`)

	// [label]: ./target.md reference definitions, one per line.
	relativeReferencePattern = regexp.MustCompile(`(?m)^(\[[^\]]*\]:)\s*(\./.+?)\.md[ \t]*$`)
)

// ConvertToWiki rewrites regular markdown into GitHub wiki flavored markdown:
// image embeds become [[path|alt]] and relative reference definitions lose their
// .md extension, which the wiki does not accept in links.
func ConvertToWiki(topicText string) string {
	topicText = imageEmbedPattern.ReplaceAllString(topicText, "[[${3}|${1}]]")
	topicText = relativeReferencePattern.ReplaceAllString(topicText, "${1} ${2}")
	return topicText
}
