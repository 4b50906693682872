package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSummary(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "leading paragraph",
			text: "Presets make it easy to reuse parameters.\n\n## Usage\n\nMore text.\n",
			want: "Presets make it easy to reuse parameters.",
		},
		{
			name: "multi-line paragraph keeps line breaks",
			text: "First line\nsecond line\n\nNext paragraph.\n",
			want: "First line\nsecond line",
		},
		{
			name: "leading blank lines are not blocks",
			text: "\n\nSummary after blanks.\n",
			want: "Summary after blanks.",
		},
		{
			// A heading first means no summary, even though a paragraph follows.
			name: "heading then paragraph has no summary",
			text: "# Title\n\nThis paragraph is not a summary.\n",
			want: "",
		},
		{
			name: "list first",
			text: "- item\n- item\n",
			want: "",
		},
		{
			name: "code block first",
			text: "```\ncode\n```\n\nParagraph.\n",
			want: "",
		},
		{
			name: "html comment first",
			text: "<!-- c -->\n\nPara.\n",
			want: "",
		},
		{
			name: "html block first",
			text: "<div>intro</div>\n\nPara.\n",
			want: "",
		},
		{
			name: "reference definitions are skipped",
			text: "[home]: ./Home\n\nSummary text.\n",
			want: "Summary text.",
		},
		{
			name: "empty document",
			text: "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSummary(tt.text))
		})
	}
}

func TestConvertToWiki_ImageEmbeds(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"![Logo](./img/logo.png)", "[[img/logo.png|Logo]]"},
		{"![Logo](../img/logo.png)", "[[img/logo.png|Logo]]"},
		{"![](img/logo.png)", "[[img/logo.png|]]"},
		{"See ![a](x.png) and ![b](./y.png).", "See [[x.png|a]] and [[y.png|b]]."},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ConvertToWiki(tt.in))
		})
	}
}

func TestConvertToWiki_ReferenceDefinitions(t *testing.T) {
	in := "Read [the guide][guide].\n\n[guide]: ./Getting-Started.md\n[site]: https://example.com/page.md\n"
	want := "Read [the guide][guide].\n\n[guide]: ./Getting-Started\n[site]: https://example.com/page.md\n"
	assert.Equal(t, want, ConvertToWiki(in))
}

func TestConvertToWiki_LeavesInlineLinksAlone(t *testing.T) {
	in := "[Install](./Installation.md)\n"
	assert.Equal(t, in, ConvertToWiki(in))
}

func TestConvertToWiki_ReferenceDefinitionKeepsLineBreaks(t *testing.T) {
	in := "[a]: ./A.md\n\nText.\n\n[b]: ./B.md  \n"
	want := "[a]: ./A\n\nText.\n\n[b]: ./B\n"
	assert.Equal(t, want, ConvertToWiki(in))
}
