// Package manifest defines the book manifest: the YAML document listing a
// book's topics, special pages, cross references and asset directories.
package manifest

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/wikibook/internal/foundation/errors"
	"git.home.luguber.info/inful/wikibook/internal/pathutil"
	"git.home.luguber.info/inful/wikibook/internal/refmap"
	"git.home.luguber.info/inful/wikibook/internal/storage"
)

// Defaults applied to fields missing from a manifest.
const (
	DefaultTitle    = "Untitled"
	DefaultAuthor   = "Unknown Author"
	DefaultTocDepth = 2
)

// Book is the decoded manifest.
type Book struct {
	Title               string           `yaml:"title"`
	Author              string           `yaml:"author"`
	TocRootTopic        string           `yaml:"tocRootTopic,omitempty"`
	TocDepth            *int             `yaml:"tocDepth,omitempty"`
	SourceBaseURL       string           `yaml:"sourceBaseUrl,omitempty"`
	Topics              []TopicSpec      `yaml:"topics"`
	Special             []TopicSpec      `yaml:"special,omitempty"`
	ReferenceTable      []ReferenceEntry `yaml:"referenceTable,omitempty"`
	AssetDirectoryNames []string         `yaml:"assetDirectoryNames,omitempty"`

	// FilePath is the absolute path of the manifest file.
	FilePath string `yaml:"-"`
	// ProjectDir is the directory containing the manifest; topic paths are
	// resolved against it.
	ProjectDir string `yaml:"-"`
}

// TopicSpec declares one topic and, optionally, its children.
type TopicSpec struct {
	Source             string      `yaml:"source"`
	Topics             []TopicSpec `yaml:"topics,omitempty"`
	TocExclude         bool        `yaml:"tocExclude,omitempty"`
	TocExcludeChildren bool        `yaml:"tocExcludeChildren,omitempty"`
}

// ReferenceEntry declares related-topic associations.
type ReferenceEntry struct {
	Type   string   `yaml:"type,omitempty"`
	Source []string `yaml:"source"`
	Target []string `yaml:"target"`
}

// Depth returns the configured TOC depth.
func (b *Book) Depth() int {
	if b.TocDepth == nil {
		return DefaultTocDepth
	}
	return *b.TocDepth
}

// ApplyDefaults fills in missing fields.
func (b *Book) ApplyDefaults() {
	if b.Title == "" {
		b.Title = DefaultTitle
	}
	if b.Author == "" {
		b.Author = DefaultAuthor
	}
	if b.TocDepth == nil {
		depth := DefaultTocDepth
		b.TocDepth = &depth
	}
	if b.Topics == nil {
		b.Topics = []TopicSpec{}
	}
	if b.Special == nil {
		b.Special = []TopicSpec{}
	}
	if b.ReferenceTable == nil {
		b.ReferenceTable = []ReferenceEntry{}
	}
	if b.AssetDirectoryNames == nil {
		b.AssetDirectoryNames = []string{}
	}
}

// Validate implements validation.Validatable.
func (b Book) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.TocDepth, validation.Min(0)),
		validation.Field(&b.Topics),
		validation.Field(&b.Special),
		validation.Field(&b.ReferenceTable),
		validation.Field(&b.AssetDirectoryNames, validation.Each(validation.Required)),
	)
}

// Validate implements validation.Validatable.
func (t TopicSpec) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Source, validation.Required),
		validation.Field(&t.Topics),
	)
}

// Validate implements validation.Validatable.
func (e ReferenceEntry) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Type, validation.In(string(refmap.TypeNormal), string(refmap.TypeSourceOnly), string(refmap.TypeTargetOnly))),
		validation.Field(&e.Source, validation.Required, validation.Each(validation.Required)),
		validation.Field(&e.Target, validation.Required, validation.Each(validation.Required)),
	)
}

// RefEntries converts the reference table to refmap entries with every path
// resolved against the project directory.
func (b *Book) RefEntries() []refmap.Entry {
	entries := make([]refmap.Entry, 0, len(b.ReferenceTable))
	for _, e := range b.ReferenceTable {
		entries = append(entries, refmap.Entry{
			Type:   refmap.Type(e.Type),
			Source: b.resolveAll(e.Source),
			Target: b.resolveAll(e.Target),
		})
	}
	return entries
}

func (b *Book) resolveAll(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = pathutil.Resolve(b.ProjectDir, p)
	}
	return out
}

// Load reads, expands, decodes, defaults and validates the manifest at path.
// Before decoding, .env and .env.local in the manifest's directory are loaded
// into the process environment without overriding variables already set, and
// ${VAR} references in the manifest text are expanded. A literal $ is written $$.
func Load(store storage.Store, path string) (*Book, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, ferrors.ConfigError("cannot resolve manifest path").
			WithCause(err).
			WithContext("file", path).
			Build()
	}
	projectDir := filepath.Dir(abs)

	if _, err := store.Stat(abs); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ferrors.ConfigError("manifest file not found").
				WithContext("file", abs).
				Build()
		}
		return nil, err
	}

	if err := loadEnvFiles(store, projectDir); err != nil {
		return nil, err
	}

	text, err := store.ReadTextFile(abs)
	if err != nil {
		return nil, err
	}

	var book Book
	if err := yaml.Unmarshal([]byte(expandEnv(text)), &book); err != nil {
		return nil, ferrors.ConfigError("failed to parse manifest").
			WithCause(err).
			WithContext("file", abs).
			Build()
	}
	book.FilePath = abs
	book.ProjectDir = projectDir

	if err := book.Validate(); err != nil {
		return nil, ferrors.ConfigError("invalid manifest").
			WithCause(err).
			WithContext("file", abs).
			Build()
	}
	book.ApplyDefaults()

	return &book, nil
}

var envFiles = []string{".env", ".env.local"}

func loadEnvFiles(store storage.Store, dir string) error {
	for _, name := range envFiles {
		path := filepath.Join(dir, name)
		if _, err := store.Stat(path); err != nil {
			continue
		}
		text, err := store.ReadTextFile(path)
		if err != nil {
			return err
		}
		vars, err := godotenv.Unmarshal(text)
		if err != nil {
			return ferrors.ConfigError("failed to parse env file").
				WithCause(err).
				WithContext("file", path).
				Build()
		}
		for key, value := range vars {
			if _, exists := os.LookupEnv(key); exists {
				continue
			}
			if err := os.Setenv(key, value); err != nil {
				return ferrors.ConfigError("failed to set environment variable").
					WithCause(err).
					WithContext("variable", key).
					Build()
			}
		}
	}
	return nil
}

// expandEnv is os.ExpandEnv except that $$ yields a literal $.
func expandEnv(text string) string {
	return os.Expand(text, func(name string) string {
		if name == "$" {
			return "$"
		}
		return os.Getenv(name)
	})
}
