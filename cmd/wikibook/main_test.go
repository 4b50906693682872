package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helpers "git.home.luguber.info/inful/wikibook/internal/testutil/testutils"
)

func sampleProject(t *testing.T) (manifest, out string) {
	t.Helper()
	root := t.TempDir()
	helpers.WriteFiles(t, filepath.Join(root, "book"), helpers.SampleBook)
	return filepath.Join(root, "book", "book.yaml"), filepath.Join(root, "wiki")
}

func TestRun_BuildThenClean(t *testing.T) {
	manifest, out := sampleProject(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"build", "-i", manifest, "-o", out, "--jobs", "2"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	helpers.NewFileAssertions(t, out).
		AssertFileHasPrefix("Home.md", "<!-- GENERATED OUTPUT -->\n\n").
		AssertFileExists("Install.md").
		AssertFileExists("_Sidebar.md").
		AssertFileExists("img/shot.png")
	assert.Contains(t, stderr.String(), "Build complete")

	helpers.WriteFiles(t, out, map[string]string{"Notes.md": "hand written\n"})

	code = run([]string{"clean", "-i", manifest, "-o", out}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	helpers.NewFileAssertions(t, out).
		AssertNotExists("Home.md").
		AssertNotExists("img").
		AssertFileEquals("Notes.md", "hand written\n")
}

func TestRun_BuildWritesMetricsFile(t *testing.T) {
	manifest, out := sampleProject(t)
	metricsFile := filepath.Join(t.TempDir(), "wikibook.prom")
	var stdout, stderr bytes.Buffer

	code := run([]string{"build", "-i", manifest, "-o", out, "--metrics-file", metricsFile}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	helpers.NewFileAssertions(t, filepath.Dir(metricsFile)).
		AssertFileContains(filepath.Base(metricsFile), "wikibook_build_outcomes_total")
}

func TestRun_MissingRequiredFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"build", "-o", t.TempDir()}, &stdout, &stderr)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "--input")
}

func TestRun_UnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"publish"}, &stdout, &stderr))
}

func TestRun_MissingManifest(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	code := run([]string{"build", "-i", filepath.Join(dir, "nope.yaml"), "-o", filepath.Join(dir, "out")}, &stdout, &stderr)
	assert.Equal(t, 7, code)
	assert.Contains(t, stderr.String(), "manifest file not found")
}

func TestRun_Init(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer

	require.Equal(t, 0, run([]string{"init", "-o", dir}, &stdout, &stderr), stderr.String())
	helpers.NewFileAssertions(t, dir).AssertFileContains("book.yaml", "title:")

	assert.Equal(t, 7, run([]string{"init", "-o", dir}, &stdout, &stderr))
	assert.Equal(t, 0, run([]string{"init", "-o", dir, "--force"}, &stdout, &stderr))
}
