// Package book reads a book directory into a domain.Book.
//
// A directory with a book.toml manifest uses the manifest's spine order.
// Without one, every readable text file in the directory becomes a section,
// ordered by file name.
package book

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"

	"spinewalk/internal/domain"
	"spinewalk/internal/eventbus"
)

var (
	// ErrEmptySpine is returned when a book has no sections
	ErrEmptySpine = errors.New("book has no sections")
	// ErrNotBook is returned when the path is neither a directory nor a manifest
	ErrNotBook = errors.New("not a book directory or manifest")
)

// mediaTypes maps the readable extensions to their media type
var mediaTypes = map[string]string{
	".txt":   "text/plain",
	".md":    "text/markdown",
	".html":  "text/html",
	".htm":   "text/html",
	".xhtml": "application/xhtml+xml",
}

var (
	titleTagRe = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	headingRe  = regexp.MustCompile(`(?is)<h[1-3][^>]*>(.*?)</h[1-3]>`)
	headRe     = regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`)
	blockEndRe = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|tr|blockquote|section)>|<br\s*/?>`)
	tagRe      = regexp.MustCompile(`(?s)<[^>]*>`)
	blankRunRe = regexp.MustCompile(`\n{3,}`)
)

// Loader reads books from disk
type Loader struct {
	bus eventbus.EventBus
	log zerolog.Logger
}

// NewLoader creates a loader; bus may be nil
func NewLoader(bus eventbus.EventBus, log zerolog.Logger) *Loader {
	return &Loader{
		bus: bus,
		log: log.With().Str("component", "book").Logger(),
	}
}

// Load reads the book at path, which is a book directory or a book.toml file
func (l *Loader) Load(ctx context.Context, path string) (*domain.Book, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open book: %w", err)
	}

	var b *domain.Book
	switch {
	case info.IsDir():
		manifestPath := filepath.Join(path, ManifestName)
		if _, err := os.Stat(manifestPath); err == nil {
			b, err = l.loadManifest(ctx, manifestPath)
			if err != nil {
				return nil, err
			}
		} else {
			b, err = l.scanDirectory(ctx, path)
			if err != nil {
				return nil, err
			}
		}
	case filepath.Base(path) == ManifestName:
		b, err = l.loadManifest(ctx, path)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrNotBook)
	}

	if b.Spine.Len() == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptySpine)
	}

	l.log.Info().
		Str("path", path).
		Str("title", b.Title()).
		Int("sections", b.Spine.Len()).
		Msg("book loaded")
	if l.bus != nil {
		l.bus.Publish(eventbus.BookLoadedEvent{
			Path:     path,
			Title:    b.Title(),
			Sections: b.Spine.Len(),
		})
	}
	return b, nil
}

// loadManifest builds the book from book.toml
func (l *Loader) loadManifest(ctx context.Context, manifestPath string) (*domain.Book, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", manifestPath, err)
	}

	root := filepath.Dir(manifestPath)
	spine := domain.NewSpine()
	for i, entry := range m.Spine {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.Href == "" {
			return nil, fmt.Errorf("spine entry %d has no href", i+1)
		}
		id := entry.ID
		if id == "" {
			id = idFromHref(entry.Href)
		}
		section, err := readSection(filepath.Join(root, filepath.FromSlash(entry.Href)), id, entry.MediaType)
		if err != nil {
			return nil, fmt.Errorf("spine entry %q: %w", id, err)
		}
		section.Href = entry.Href
		if entry.Title != "" {
			section.Title = entry.Title
		}
		spine.Append(section)
	}

	b := &domain.Book{
		Metadata: domain.Metadata{
			Title:       m.Metadata.Title,
			Authors:     m.Metadata.Authors,
			Language:    m.Metadata.Language,
			Publisher:   m.Metadata.Publisher,
			Description: m.Metadata.Description,
		},
		Spine: spine,
	}
	if m.Cover != "" {
		index := spine.IndexOfID(m.Cover)
		if index == domain.NotFound {
			l.log.Warn().Str("cover", m.Cover).Msg("cover id not in spine, ignoring")
		} else {
			b.Cover = spine.At(index)
		}
	}
	return b, nil
}

// scanDirectory builds the book from the readable files directly inside root
func (l *Loader) scanDirectory(ctx context.Context, root string) (*domain.Book, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			l.log.Warn().Err(err).Str("path", path).Msg("error walking path")
			return nil
		}

		if d.IsDir() {
			if path != root {
				return fs.SkipDir
			}
			return nil
		}

		// Skip hidden files
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if _, ok := mediaTypes[strings.ToLower(filepath.Ext(d.Name()))]; ok {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	sort.Strings(paths)
	spine := domain.NewSpine()
	for _, path := range paths {
		section, err := readSection(path, idFromHref(path), "")
		if err != nil {
			return nil, err
		}
		section.Href = filepath.Base(path)
		spine.Append(section)
	}

	b := &domain.Book{
		Metadata: domain.Metadata{Title: filepath.Base(root)},
		Spine:    spine,
	}
	// A file named cover.* opens the book
	if index := spine.IndexOfID("cover"); index != domain.NotFound {
		b.Cover = spine.At(index)
	}
	return b, nil
}

// readSection reads one content file. An empty mediaType is derived from
// the extension; the media type decides whether markup is stripped.
func readSection(path, id, mediaType string) (*domain.Section, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read section: %w", err)
	}

	if mediaType == "" {
		var ok bool
		mediaType, ok = mediaTypes[strings.ToLower(filepath.Ext(path))]
		if !ok {
			mediaType = "text/plain"
		}
	}

	raw := string(data)
	section := &domain.Section{
		ID:        id,
		MediaType: mediaType,
	}
	if isMarkup(mediaType) {
		section.Title = markupTitle(raw)
		section.Content = markupText(raw)
	} else {
		section.Title = textTitle(raw)
		section.Content = raw
	}
	return section, nil
}

func isMarkup(mediaType string) bool {
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}

func idFromHref(href string) string {
	base := filepath.Base(filepath.FromSlash(href))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// textTitle returns the first non-empty line without markdown heading marks
func textTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
		if line != "" {
			return line
		}
	}
	return ""
}

func markupTitle(content string) string {
	for _, re := range []*regexp.Regexp{titleTagRe, headingRe} {
		if m := re.FindStringSubmatch(content); m != nil {
			title := strings.TrimSpace(html.UnescapeString(tagRe.ReplaceAllString(m[1], "")))
			if title != "" {
				return strings.Join(strings.Fields(title), " ")
			}
		}
	}
	return ""
}

// markupText reduces (X)HTML to readable text
func markupText(content string) string {
	text := headRe.ReplaceAllString(content, "")
	text = blockEndRe.ReplaceAllString(text, "\n\n")
	text = tagRe.ReplaceAllString(text, "")
	text = html.UnescapeString(text)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	text = blankRunRe.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(text)
}
