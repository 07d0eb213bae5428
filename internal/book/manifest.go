package book

// ManifestName is the file that describes a book directory's reading order
const ManifestName = "book.toml"

// manifest is the on-disk form of book.toml
type manifest struct {
	Cover    string           `toml:"cover"`
	Metadata manifestMetadata `toml:"metadata"`
	Spine    []manifestEntry  `toml:"spine"`
}

type manifestMetadata struct {
	Title       string   `toml:"title"`
	Authors     []string `toml:"authors"`
	Language    string   `toml:"language"`
	Publisher   string   `toml:"publisher"`
	Description string   `toml:"description"`
}

type manifestEntry struct {
	ID        string `toml:"id"`
	Title     string `toml:"title"`
	Href      string `toml:"href"`
	MediaType string `toml:"media_type"`
}
