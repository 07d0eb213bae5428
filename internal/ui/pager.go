package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

// pagerMsg contains the result of a pager command
type pagerMsg struct {
	sectionID string
	err       error
}

// pauseRenderingMsg and resumeRenderingMsg bracket the time ov owns the terminal
type pauseRenderingMsg struct{}
type resumeRenderingMsg struct{}

// PagerOps shows section text in ov
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
	vimKeys bool
}

// NewPagerOps creates pager operations; the program is set once it exists
func NewPagerOps(vimKeys bool) *PagerOps {
	return &PagerOps{vimKeys: vimKeys}
}

// SetProgram sets the program reference for terminal management
func (p *PagerOps) SetProgram(program *tea.Program) {
	p.program = program
}

// Show runs ov over text until the user leaves it
func (p *PagerOps) Show(text string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(text))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	if p.vimKeys {
		configureVimKeyBindings(&config)
	}
	root.SetConfig(config)

	return root.Run()
}

// configureVimKeyBindings adds vim-style movement on top of ov's defaults
func configureVimKeyBindings(config *oviewer.Config) {
	if config.Keybind == nil {
		config.Keybind = make(map[string][]string)
	}
	config.Keybind["down"] = []string{"Enter", "Down", "ctrl+N", "j"}
	config.Keybind["up"] = []string{"Up", "ctrl+P", "k"}
	config.Keybind["top"] = []string{"Home", "g"}
	config.Keybind["bottom"] = []string{"End", "G"}
	config.Keybind["exit"] = []string{"Escape", "q"}
}
