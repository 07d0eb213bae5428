package domain

// Section is one addressable unit of book content (a chapter or page)
type Section struct {
	ID        string
	Title     string
	Href      string // path relative to the book root
	MediaType string
	Content   string
}

// DisplayTitle returns the title shown in the table of contents
func (s *Section) DisplayTitle() string {
	if s == nil {
		return ""
	}
	if s.Title != "" {
		return s.Title
	}
	return s.ID
}

// Metadata describes the book as a whole
type Metadata struct {
	Title       string
	Authors     []string
	Language    string
	Publisher   string
	Description string
}

// Book groups the metadata, the reading order and the optional cover page
type Book struct {
	Metadata Metadata
	Spine    *Spine
	Cover    *Section // nil if the book has no cover; always a member of Spine otherwise
}

// Title returns the book title, falling back to the first section title
func (b *Book) Title() string {
	if b.Metadata.Title != "" {
		return b.Metadata.Title
	}
	if b.Spine != nil && b.Spine.Len() > 0 {
		return b.Spine.At(0).DisplayTitle()
	}
	return "Untitled"
}
