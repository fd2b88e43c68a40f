package tui

import (
	"math/rand"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/snakebot/internal/config"
	"github.com/vovakirdan/snakebot/internal/snake"
	"github.com/vovakirdan/snakebot/internal/storage"
)

// screenKind is the sub-model a session is showing.
type screenKind int

const (
	screenMenu screenKind = iota
	screenGame
	screenScores
)

// SessionConfig configures one terminal session, local or over SSH.
type SessionConfig struct {
	ID       string // empty means a fresh UUID
	Settings GameSettings
	Store    ScoreStore
	Width    int
	Height   int

	// StartInGame skips the menu and opens a game right away.
	StartInGame bool
	// Autopilot makes that first game autonomous and already running.
	Autopilot bool
}

// SessionModel manages the full flow: menu -> game -> scoreboard -> menu.
// It is the top-level model for local play and for SSH sessions.
type SessionModel struct {
	id       string
	settings GameSettings
	store    ScoreStore
	width    int
	height   int

	current  screenKind
	returnTo screenKind // where the scoreboard goes back to
	menu     MenuModel
	game     *GameModel
	board    ScoreboardModel
	games    int

	quitting bool
}

// NewSessionModel creates a session model. It fails when the game options
// are invalid, so later games in the session can be built without checks.
func NewSessionModel(cfg SessionConfig) (SessionModel, error) {
	if _, err := snake.New(cfg.Settings.Options, rand.New(rand.NewSource(1))); err != nil {
		return SessionModel{}, err
	}

	id := cfg.ID
	if id == "" {
		id = uuid.NewString()
	}

	m := SessionModel{
		id:       id,
		settings: cfg.Settings,
		store:    cfg.Store,
		width:    cfg.Width,
		height:   cfg.Height,
		menu:     NewMenuModel(cfg.Settings.Preset, cfg.Width, cfg.Height),
	}
	if cfg.StartInGame {
		if err := m.newGame(cfg.Autopilot); err != nil {
			return SessionModel{}, err
		}
	}
	return m, nil
}

// ID returns the session identifier used in logs.
func (m SessionModel) ID() string {
	return m.id
}

// newGame replaces the current game with a fresh one and shows it.
// An autopilot game starts running at once.
func (m *SessionModel) newGame(autopilot bool) error {
	m.games++
	settings := m.settings
	settings.Options.Autonomous = autopilot

	gm, err := NewGameModel(m.games, settings, m.store, m.width, m.height)
	if err != nil {
		return err
	}
	if autopilot {
		gm.engine.Start()
	}
	m.game = &gm
	m.current = screenGame
	return nil
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.current == screenGame && m.game != nil {
		return m.game.Init()
	}
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m.resize(msg)

	case TickMsg:
		// The game keeps its loop while the scoreboard is up.
		if m.game == nil {
			return m, nil
		}
		next, cmd := m.game.Update(msg)
		gm := next.(GameModel)
		m.game = &gm
		return m, cmd
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// resize forwards a window change to every live sub-model.
func (m SessionModel) resize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	next, _ := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	if m.current == screenScores {
		next, _ = m.board.Update(msg)
		m.board = next.(ScoreboardModel)
	}
	if m.game != nil {
		next, _ = m.game.Update(msg)
		gm := next.(GameModel)
		m.game = &gm
	}
	return m, nil
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if preset := m.menu.Preset(); preset != m.settings.Preset {
		m.settings.Preset = preset
		m.settings.Pace = config.PaceForPreset(preset)
	}

	switch m.menu.Selected() {
	case ChoicePlay, ChoiceAutopilot:
		auto := m.menu.Selected() == ChoiceAutopilot
		m.menu = NewMenuModel(m.settings.Preset, m.width, m.height)
		if err := m.newGame(auto); err != nil {
			// Unreachable: options were checked by NewSessionModel.
			m.quitting = true
			return m, tea.Quit
		}
		return m, m.game.Init()

	case ChoiceScores:
		m.menu = NewMenuModel(m.settings.Preset, m.width, m.height)
		return m.openScores(screenMenu, storage.ModeManual)
	}

	return m, cmd
}

// updateGame handles updates when a game is on screen.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	gm := next.(GameModel)
	m.game = &gm

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.game.BackToMenu():
		m.game = nil
		m.current = screenMenu
		return m, m.menu.Init()

	case m.game.WantsScoreboard():
		m.game.openScoreboard = false
		if m.game.engine.Status() == snake.StatusRunning {
			m.game.engine.TogglePause()
		}
		return m.openScores(screenGame, m.game.scoreMode())
	}

	return m, cmd
}

// openScores shows the scoreboard on the given mode's tab.
func (m SessionModel) openScores(from screenKind, mode string) (tea.Model, tea.Cmd) {
	m.board = NewScoreboardModel(m.store, mode, m.width, m.height)
	m.returnTo = from
	m.current = screenScores
	return m, m.board.Init()
}

// updateScores handles updates when the scoreboard is on screen.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.board.Update(msg)
	m.board = next.(ScoreboardModel)

	if m.board.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.board.IsGoingBack() {
		m.current = m.returnTo
		if m.current == screenGame && m.game == nil {
			m.current = screenMenu
		}
		return m, nil
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenGame:
		if m.game != nil {
			return m.game.View()
		}
	case screenScores:
		return m.board.View()
	}
	return m.menu.View()
}

// RunSession runs a local session in the alternate screen until the user quits.
func RunSession(cfg SessionConfig) error {
	model, err := NewSessionModel(cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)
	_, err = p.Run()
	return err
}
