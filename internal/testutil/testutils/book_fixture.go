package helpers

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFiles creates each file under root, making parent directories as needed.
// Keys are slash-separated relative paths.
func WriteFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", filepath.Dir(full), err)
		}
		if err := os.WriteFile(full, []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", full, err)
		}
	}
}

// SampleBook is a small book project exercising nesting, special pages,
// placeholders, references and an asset directory.
var SampleBook = map[string]string{
	"book.yaml": `title: Sample
tocDepth: 2
sourceBaseUrl: https://example.com/sample/blob/main/
topics:
  - source: Home.md
  - source: Guide.md
    topics:
      - source: guide/Install.md
special:
  - source: _Sidebar.md
referenceTable:
  - source: [Home.md]
    target: [guide/Install.md]
assetDirectoryNames: [img]
`,
	"Home.md":          "Welcome to the sample.\n\n{{TOC}}",
	"Guide.md":         "# Guide\n\nHow to use it.\n",
	"guide/Install.md": "Install it.\n\n![shot](../img/shot.png)\n",
	"_Sidebar.md":      "{{FULL_TOC}}",
	"img/shot.png":     "png-bytes",
}
