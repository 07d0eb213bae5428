package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"spinewalk/internal/config"
	"spinewalk/internal/domain"
	"spinewalk/internal/eventbus"
	"spinewalk/internal/navigation"
)

const (
	metadataWidth = 30
	minContentW   = 20
	// Border and horizontal padding added by the pane styles
	paneFrameW = 4
	paneFrameH = 2
)

// Model represents the UI state.
// Every pane is a cursor observer; the model itself only turns keys into moves.
type Model struct {
	book   *domain.Book
	cursor *navigation.Cursor
	config *config.Config
	bus    eventbus.EventBus
	log    zerolog.Logger
	styles *Styles
	keys   keyMap
	help   help.Model

	toc     *TOCPane
	content *ContentPane
	buttons *ButtonBar
	meta    *MetadataPane
	pager   *PagerOps

	prompt    textinput.Model
	prompting bool

	showTOC  bool
	showMeta bool
	status   string
	isError  bool

	width       int
	height      int
	inPagerMode bool // tracks if we're currently in pager mode

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model and subscribes its panes to cursor; bus may be nil
func NewModel(book *domain.Book, cursor *navigation.Cursor, cfg *config.Config, bus eventbus.EventBus, log zerolog.Logger) *Model {
	styles := NewStyles()

	prompt := textinput.New()
	prompt.Prompt = "section id: "
	prompt.PromptStyle = styles.Prompt
	prompt.CharLimit = 256

	m := &Model{
		book:     book,
		cursor:   cursor,
		config:   cfg,
		bus:      bus,
		log:      log.With().Str("component", "ui").Logger(),
		styles:   styles,
		keys:     defaultKeyMap(),
		help:     help.New(),
		toc:      NewTOCPane(cursor.Sequence(), styles),
		content:  NewContentPane(styles, cfg.UI.WrapWidth),
		buttons:  NewButtonBar(cursor, styles),
		meta:     NewMetadataPane(book, styles),
		pager:    NewPagerOps(cfg.Reader.PagerVimKeys),
		prompt:   prompt,
		showTOC:  cfg.UI.ShowTOC,
		showMeta: cfg.UI.ShowMetadata,
	}

	// Subscription order is render order: panes first, status line last
	cursor.Subscribe(m.toc)
	cursor.Subscribe(m.content)
	cursor.Subscribe(m.buttons)
	cursor.Subscribe(m.meta)
	cursor.Subscribe(m)

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// Open positions the cursor according to startAt: "cover", "first" or a section id
func (m *Model) Open(startAt string) {
	switch startAt {
	case "", config.StartAtFirst:
		m.cursor.First()
	case config.StartAtCover:
		if m.book.Cover != nil {
			m.cursor.GotoSection(m.book.Cover)
		} else {
			m.cursor.First()
		}
	default:
		if m.cursor.Sequence().IndexOfID(startAt) == domain.NotFound {
			m.cursor.First()
			m.setError(fmt.Sprintf("No section with id %q", startAt))
			return
		}
		m.cursor.GotoID(startAt)
	}
}

// SectionChanged implements navigation.Observer and keeps the status line current
func (m *Model) SectionChanged(event navigation.ChangeEvent) {
	section := event.CurrentSection()
	if section == nil {
		return
	}
	m.log.Debug().
		Int("from", event.PreviousIndex).
		Int("to", event.CurrentIndex()).
		Str("section", section.ID).
		Msg("section changed")
	m.setStatus(section.DisplayTitle())
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case pagerMsg:
		if msg.err != nil {
			m.log.Error().Err(msg.err).Str("section", msg.sectionID).Msg("pager failed")
			if m.bus != nil {
				m.bus.Publish(eventbus.ErrorEvent{
					Message: "pager failed for section " + msg.sectionID,
					Err:     msg.err,
				})
			}
			m.setError(fmt.Sprintf("Pager error: %v", msg.err))
		}
		return m, nil

	case tea.KeyMsg:
		if m.prompting {
			return m, m.updatePrompt(msg)
		}
		return m, m.handleKey(msg)
	}

	return m, m.content.Update(msg)
}

// handleKey maps a key in normal mode to a cursor move or UI toggle
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Next):
		if !m.cursor.HasNext() {
			m.setStatus("Already at the last section")
			return nil
		}
		m.cursor.Next()

	case key.Matches(msg, m.keys.Previous):
		if m.cursor.Positioned() && !m.cursor.HasPrevious() {
			m.setStatus("Already at the first section")
			return nil
		}
		m.cursor.Previous()

	case key.Matches(msg, m.keys.First):
		m.cursor.First()

	case key.Matches(msg, m.keys.Last):
		m.cursor.Last()

	case key.Matches(msg, m.keys.GotoID):
		m.prompting = true
		m.prompt.Reset()
		m.layout()
		return m.prompt.Focus()

	case key.Matches(msg, m.keys.ToggleTOC):
		m.showTOC = !m.showTOC
		m.layout()

	case key.Matches(msg, m.keys.ToggleMeta):
		m.showMeta = !m.showMeta
		m.layout()

	case key.Matches(msg, m.keys.OpenPager):
		return m.openPager()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()

	default:
		return m.content.Update(msg)
	}
	return nil
}

// updatePrompt handles keys while the goto-id prompt is open
func (m *Model) updatePrompt(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.CancelPrompt):
		m.closePrompt()
		return nil

	case key.Matches(msg, m.keys.Submit):
		id := strings.TrimSpace(m.prompt.Value())
		m.closePrompt()
		if id == "" {
			return nil
		}
		if m.cursor.Sequence().IndexOfID(id) == domain.NotFound {
			m.setError(fmt.Sprintf("No section with id %q", id))
			return nil
		}
		m.cursor.GotoID(id)
		return nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return cmd
}

func (m *Model) closePrompt() {
	m.prompting = false
	m.prompt.Blur()
	m.layout()
}

// openPager returns a command that shows the current section in ov
func (m *Model) openPager() tea.Cmd {
	section := m.cursor.Section()
	if section == nil {
		return nil
	}
	text := m.content.Text()
	return func() tea.Msg {
		if m.program != nil {
			// Send pause message to stop rendering
			m.program.Send(pauseRenderingMsg{})
		}

		err := m.pager.Show(text)

		if m.program != nil {
			// Send resume message to restart rendering
			m.program.Send(resumeRenderingMsg{})
		}
		return pagerMsg{sectionID: section.ID, err: err}
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.isError = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.isError = true
}

// tocWidth returns the inner width of the contents pane, 0 when hidden
func (m *Model) tocWidth() int {
	if !m.showTOC {
		return 0
	}
	return m.config.UI.TOCWidth
}

func (m *Model) metaWidth() int {
	if !m.showMeta {
		return 0
	}
	return metadataWidth
}

// bodyHeight returns the inner height shared by all panes
func (m *Model) bodyHeight() int {
	// header, button bar, status line, help
	chrome := 3 + lipgloss.Height(m.help.View(m.keys))
	h := m.height - chrome - paneFrameH
	if h < 1 {
		h = 1
	}
	return h
}

// contentWidth returns the inner width left for the content pane
func (m *Model) contentWidth() int {
	w := m.width - paneFrameW
	if m.showTOC {
		w -= m.tocWidth() + paneFrameW
	}
	if m.showMeta {
		w -= m.metaWidth() + paneFrameW
	}
	if w < minContentW {
		w = minContentW
	}
	return w
}

func (m *Model) layout() {
	if m.width == 0 {
		return
	}
	m.content.SetSize(m.contentWidth(), m.bodyHeight())
}

// View renders the reader
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	header := m.styles.Title.Render(m.book.Title())
	if authors := m.book.Metadata.Authors; len(authors) > 0 {
		header += m.styles.Dim.Render(" by " + strings.Join(authors, ", "))
	}

	height := m.bodyHeight()
	var panes []string
	if m.showTOC {
		panes = append(panes, m.styles.Pane.
			Width(m.tocWidth()+2).
			Height(height).
			Render(m.toc.View(m.tocWidth(), height)))
	}
	panes = append(panes, m.styles.FocusedPane.
		Width(m.contentWidth()+2).
		Height(height).
		Render(m.content.View()))
	if m.showMeta {
		panes = append(panes, m.styles.Pane.
			Width(m.metaWidth()+2).
			Height(height).
			Render(m.meta.View(m.metaWidth())))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, panes...)

	var status string
	switch {
	case m.prompting:
		status = m.prompt.View()
	case m.isError:
		status = m.styles.StatusError.Render(m.status)
	default:
		status = m.styles.Status.Render(m.status)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		m.buttons.View(),
		status,
		m.styles.Help.Render(m.help.View(m.keys)),
	)
}
