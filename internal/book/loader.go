package book

import (
	"log/slog"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/wikibook/internal/logfields"
	"git.home.luguber.info/inful/wikibook/internal/markdown"
	"git.home.luguber.info/inful/wikibook/internal/storage"
)

// Loader reads topic files and derives their title, summary and wiki text.
type Loader struct {
	store  storage.Store
	logger *slog.Logger
}

// NewLoader creates a loader reading through store. A nil logger discards output.
func NewLoader(store storage.Store, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{store: store, logger: logger}
}

// Load reads the topic at the absolute path source.
func (l *Loader) Load(source string) (*Topic, error) {
	raw, err := l.store.ReadTextFile(source)
	if err != nil {
		return nil, err
	}

	text := markdown.ConvertToWiki(raw)
	topic := &Topic{
		Source:  source,
		Title:   TitleFromFilename(source),
		Summary: markdown.ExtractSummary(text),
		Text:    text,
	}
	l.logger.Debug("Loaded topic", logfields.Path(source), logfields.Topic(topic.Title))
	return topic, nil
}

// TitleFromFilename derives a topic title from its file name: the extension is
// dropped and hyphens become spaces.
func TitleFromFilename(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ReplaceAll(base, "-", " ")
}
