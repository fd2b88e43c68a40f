package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snakebot/internal/config"
	"github.com/vovakirdan/snakebot/internal/core"
)

// MenuChoice is what the user picked from the start menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceAutopilot
	ChoiceDifficulty
	ChoiceScores
	ChoiceQuit
)

// menuItem is one line of the start menu.
type menuItem struct {
	choice MenuChoice
	title  string
}

var menuItems = []menuItem{
	{ChoicePlay, "Play"},
	{ChoiceAutopilot, "Watch autopilot"},
	{ChoiceDifficulty, "Difficulty"},
	{ChoiceScores, "High scores"},
	{ChoiceQuit, "Quit"},
}

var presets = []config.DifficultyPreset{config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard}

// MenuModel is the start menu. Difficulty is cycled in place; every other
// item ends the menu and is read back with Selected.
type MenuModel struct {
	cursor    int
	preset    config.DifficultyPreset
	width     int
	height    int
	keyMapper *KeyMapper
	selected  MenuChoice
	quitting  bool
}

// NewMenuModel creates a start menu showing the given difficulty.
func NewMenuModel(preset config.DifficultyPreset, width, height int) MenuModel {
	if preset == "" {
		preset = config.DifficultyNormal
	}
	return MenuModel{
		preset:    preset,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.cursor = core.Clamp(m.cursor-1, 0, len(menuItems)-1)

	case MenuActionDown:
		m.cursor = core.Clamp(m.cursor+1, 0, len(menuItems)-1)

	case MenuActionLeft:
		if menuItems[m.cursor].choice == ChoiceDifficulty {
			m.cyclePreset(-1)
		}

	case MenuActionRight:
		if menuItems[m.cursor].choice == ChoiceDifficulty {
			m.cyclePreset(1)
		}

	case MenuActionSelect:
		switch c := menuItems[m.cursor].choice; c {
		case ChoiceDifficulty:
			m.cyclePreset(1)
		case ChoiceQuit:
			m.quitting = true
			return m, tea.Quit
		default:
			m.selected = c
		}

	case MenuActionScoreboard:
		m.selected = ChoiceScores
	}

	return m, nil
}

// cyclePreset moves the difficulty by step, wrapping around.
func (m *MenuModel) cyclePreset(step int) {
	i := 0
	for j, p := range presets {
		if p == m.preset {
			i = j
		}
	}
	m.preset = presets[(i+step+len(presets))%len(presets)]
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("  S N A K E B O T  ", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("A* autopilot snake", m.width))
	b.WriteString("\n\n")

	for i, item := range menuItems {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		title := item.title
		if item.choice == ChoiceDifficulty {
			title = fmt.Sprintf("%s: < %s >", title, m.preset)
		}
		b.WriteString(centerText(cursor+title, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit", m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the picked item, ChoiceNone while the menu is open.
func (m MenuModel) Selected() MenuChoice {
	return m.selected
}

// Preset returns the difficulty currently shown.
func (m MenuModel) Preset() config.DifficultyPreset {
	return m.preset
}

// IsQuitting returns true if the user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}
