package manifest

import (
	"errors"
	"io/fs"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/wikibook/internal/foundation/errors"
	"git.home.luguber.info/inful/wikibook/internal/storage"
)

// Example returns a small manifest showing every supported field.
func Example() *Book {
	depth := DefaultTocDepth
	return &Book{
		Title:         "My Book",
		Author:        "Jane Doe",
		TocDepth:      &depth,
		SourceBaseURL: "https://github.com/example/book/blob/main/",
		Topics: []TopicSpec{
			{Source: "Home.md"},
			{
				Source: "Getting-Started.md",
				Topics: []TopicSpec{
					{Source: "getting-started/Installation.md"},
					{Source: "getting-started/Configuration.md"},
				},
			},
			{Source: "FAQ.md", TocExclude: true},
		},
		Special: []TopicSpec{
			{Source: "_Sidebar.md"},
			{Source: "_Footer.md"},
		},
		ReferenceTable: []ReferenceEntry{
			{
				Type:   "normal",
				Source: []string{"getting-started/Installation.md"},
				Target: []string{"getting-started/Configuration.md"},
			},
		},
		AssetDirectoryNames: []string{"img"},
	}
}

// WriteExample writes Example to path. An existing file is only replaced when
// force is set.
func WriteExample(store storage.Store, path string, force bool) error {
	if _, err := store.Stat(path); err == nil && !force {
		return ferrors.ConfigError("manifest file already exists (use --force to overwrite)").
			WithContext("file", path).
			Build()
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	data, err := yaml.Marshal(Example())
	if err != nil {
		return ferrors.InternalError("failed to marshal example manifest").
			WithCause(err).
			Build()
	}
	return store.WriteTextFile(path, string(data))
}
