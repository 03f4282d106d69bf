package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

// BreakoutSelection holds the user's choice from the Breakout menu.
type BreakoutSelection struct {
	Level int // zero-based starting level
}

// BreakoutLevelModel lets users start a new game or pick the starting
// level.
type BreakoutLevelModel struct {
	cursor        int
	levelCursor   int
	inLevelSelect bool
	levels        []string
	width         int
	height        int
	keyMapper     *KeyMapper
	selection     *BreakoutSelection
	quitting      bool
	back          bool
}

// NewBreakoutLevelModel creates a new Breakout start menu.
func NewBreakoutLevelModel(width, height int) BreakoutLevelModel {
	return BreakoutLevelModel{
		levels:    breakout.LevelNames(),
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m BreakoutLevelModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m BreakoutLevelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inLevelSelect {
			return m.handleLevelKey(action)
		}
		return m.handleStartKey(action)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m BreakoutLevelModel) handleStartKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		m.cursor = 0
	case MenuActionDown:
		m.cursor = 1
	case MenuActionSelect:
		if m.cursor == 0 {
			m.selection = &BreakoutSelection{}
			return m, tea.Quit
		}
		m.inLevelSelect = true
		m.levelCursor = 0
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

func (m BreakoutLevelModel) handleLevelKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < len(m.levels)-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		m.selection = &BreakoutSelection{Level: m.levelCursor}
		return m, tea.Quit
	case MenuActionBack:
		m.inLevelSelect = false
	}
	return m, nil
}

// View renders the start menu or the level list.
func (m BreakoutLevelModel) View() string {
	if m.quitting || m.back || m.selection != nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")

	if m.inLevelSelect {
		b.WriteString(centerText("SELECT LEVEL", m.width))
		b.WriteString("\n\n")
		for i, name := range m.levels {
			b.WriteString(centerText(fmt.Sprintf("%s%2d. %s", cursorMark(i == m.levelCursor), i+1, name), m.width))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(centerText("B R E A K O U T", m.width))
		b.WriteString("\n\n")
		options := []string{
			fmt.Sprintf("New Game (%d levels, cycling)", len(m.levels)),
			"Select Level...",
		}
		for i, opt := range options {
			b.WriteString(centerText(cursorMark(i == m.cursor)+opt, m.width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))
	return b.String()
}

func cursorMark(active bool) string {
	if active {
		return "> "
	}
	return "  "
}

// Selected returns the selection, or nil if none was made.
func (m BreakoutLevelModel) Selected() *BreakoutSelection {
	return m.selection
}

// RunBreakoutLevelSelector shows the Breakout start menu. It returns nil
// when the user backs out or quits.
func RunBreakoutLevelSelector(cfg core.RuntimeConfig) (*BreakoutSelection, error) {
	p := tea.NewProgram(
		NewBreakoutLevelModel(cfg.ScreenW, cfg.ScreenH),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(BreakoutLevelModel)
	if !ok {
		return nil, nil
	}
	return m.Selected(), nil
}
