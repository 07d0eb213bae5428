package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"spinewalk/internal/domain"
	"spinewalk/internal/navigation"
)

// TOCPane lists the spine and marks the current section
type TOCPane struct {
	seq     navigation.Sequence
	styles  *Styles
	current int
	offset  int
}

// NewTOCPane creates a table of contents over seq
func NewTOCPane(seq navigation.Sequence, styles *Styles) *TOCPane {
	return &TOCPane{
		seq:     seq,
		styles:  styles,
		current: navigation.Unset,
	}
}

// SectionChanged implements navigation.Observer
func (p *TOCPane) SectionChanged(event navigation.ChangeEvent) {
	p.current = event.CurrentIndex()
}

// Current returns the highlighted index
func (p *TOCPane) Current() int {
	return p.current
}

// View renders at most height entries, scrolled so the current one is visible
func (p *TOCPane) View(width, height int) string {
	if height < 1 {
		height = 1
	}
	total := p.seq.Len()

	// Keep the current entry inside the window
	if p.current >= 0 {
		if p.current < p.offset {
			p.offset = p.current
		} else if p.current >= p.offset+height {
			p.offset = p.current - height + 1
		}
	}
	if p.offset > total-height {
		p.offset = total - height
	}
	if p.offset < 0 {
		p.offset = 0
	}

	var lines []string
	for i := p.offset; i < total && i < p.offset+height; i++ {
		title := truncate(fmt.Sprintf("%d. %s", i+1, p.seq.At(i).DisplayTitle()), width)
		if i == p.current {
			lines = append(lines, p.styles.TOCCurrent.Render(title))
		} else {
			lines = append(lines, p.styles.TOCItem.Render(title))
		}
	}
	return strings.Join(lines, "\n")
}

// ContentPane shows the text of the current section
type ContentPane struct {
	styles    *Styles
	viewport  viewport.Model
	section   *domain.Section
	wrapWidth int
}

// NewContentPane creates an empty content pane
func NewContentPane(styles *Styles, wrapWidth int) *ContentPane {
	p := &ContentPane{
		styles:    styles,
		viewport:  viewport.New(80, 20),
		wrapWidth: wrapWidth,
	}
	p.refresh()
	return p
}

// SectionChanged implements navigation.Observer
func (p *ContentPane) SectionChanged(event navigation.ChangeEvent) {
	p.section = event.CurrentSection()
	p.refresh()
	p.viewport.GotoTop()
}

// Section returns the section on display
func (p *ContentPane) Section() *domain.Section {
	return p.section
}

// SetSize resizes the viewport and rewraps the text
func (p *ContentPane) SetSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	p.viewport.Width = width
	p.viewport.Height = height
	p.refresh()
}

// Update forwards scrolling input to the viewport
func (p *ContentPane) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

// View renders the visible part of the section
func (p *ContentPane) View() string {
	return p.viewport.View()
}

// Text returns the full rendered text, unwrapped
func (p *ContentPane) Text() string {
	if p.section == nil {
		return ""
	}
	return p.section.DisplayTitle() + "\n\n" + p.section.Content
}

func (p *ContentPane) refresh() {
	if p.section == nil {
		p.viewport.SetContent(p.styles.Dim.Render("No section selected"))
		return
	}
	width := p.viewport.Width
	if p.wrapWidth > 0 && p.wrapWidth < width {
		width = p.wrapWidth
	}
	body := lipgloss.NewStyle().Width(width).Render(p.section.Content)
	p.viewport.SetContent(p.styles.SectionTitle.Render(p.section.DisplayTitle()) + "\n\n" + body)
}

// ButtonBar shows whether previous/next moves are available
type ButtonBar struct {
	styles      *Styles
	hasPrevious bool
	hasNext     bool
	index       int
	total       int
}

// NewButtonBar creates a button bar reflecting cursor's current state
func NewButtonBar(cursor *navigation.Cursor, styles *Styles) *ButtonBar {
	b := &ButtonBar{styles: styles}
	b.Sync(cursor)
	return b
}

// SectionChanged implements navigation.Observer
func (b *ButtonBar) SectionChanged(event navigation.ChangeEvent) {
	b.Sync(event.Cursor())
}

// Sync re-reads the cursor; used after silent repositioning
func (b *ButtonBar) Sync(cursor *navigation.Cursor) {
	b.hasPrevious = cursor.HasPrevious()
	b.hasNext = cursor.HasNext()
	b.index = cursor.Index()
	b.total = cursor.Sequence().Len()
}

// View renders the bar
func (b *ButtonBar) View() string {
	prev := b.styles.ButtonOff.Render("◀ prev")
	if b.hasPrevious {
		prev = b.styles.Button.Render("◀ prev")
	}
	next := b.styles.ButtonOff.Render("next ▶")
	if b.hasNext {
		next = b.styles.Button.Render("next ▶")
	}
	position := "-"
	if b.index != navigation.Unset {
		position = fmt.Sprintf("%d/%d", b.index+1, b.total)
	}
	return prev + "  " + b.styles.Position.Render(position) + "  " + next
}

// MetadataPane shows the book metadata and details of the current section
type MetadataPane struct {
	book    *domain.Book
	styles  *Styles
	section *domain.Section
}

// NewMetadataPane creates a metadata pane for book
func NewMetadataPane(book *domain.Book, styles *Styles) *MetadataPane {
	return &MetadataPane{book: book, styles: styles}
}

// SectionChanged implements navigation.Observer
func (p *MetadataPane) SectionChanged(event navigation.ChangeEvent) {
	p.section = event.CurrentSection()
}

// View renders the metadata as key/value lines
func (p *MetadataPane) View(width int) string {
	md := p.book.Metadata
	rows := [][2]string{
		{"Title", p.book.Title()},
		{"Authors", strings.Join(md.Authors, ", ")},
		{"Language", md.Language},
		{"Publisher", md.Publisher},
	}
	if p.section != nil {
		rows = append(rows,
			[2]string{"Section", p.section.ID},
			[2]string{"File", p.section.Href},
			[2]string{"Type", p.section.MediaType},
		)
	}

	var lines []string
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		lines = append(lines, p.styles.MetaKey.Render(row[0]+":"))
		lines = append(lines, p.styles.MetaValue.Render(truncate(row[1], width)))
	}
	if md.Description != "" {
		lines = append(lines, "", lipgloss.NewStyle().Width(width).Render(md.Description))
	}
	return strings.Join(lines, "\n")
}

// truncate shortens s to width cells, marking the cut with an ellipsis
func truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
