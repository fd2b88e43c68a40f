package tui

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snakebot/internal/config"
	"github.com/vovakirdan/snakebot/internal/core"
	"github.com/vovakirdan/snakebot/internal/snake"
	"github.com/vovakirdan/snakebot/internal/storage"
)

// ScoreStore is the slice of storage the TUI needs. *storage.Store
// satisfies it; pass a nil interface to play without persistence.
type ScoreStore interface {
	SaveScore(mode string, score, length, ticks int) (int64, error)
	HighScore(mode string) (int, error)
	TopScores(mode string, limit int) ([]storage.ScoreEntry, error)
}

// GameSettings is what a driver needs to start games.
type GameSettings struct {
	Options snake.Options
	Pace    config.PaceConfig
	Preset  config.DifficultyPreset
	Seed    int64 // 0 means seed from the clock
}

// seedFor returns the RNG seed of the n-th game of a session.
func (s GameSettings) seedFor(n int) int64 {
	if s.Seed == 0 {
		return time.Now().UnixNano()
	}
	return s.Seed + int64(n)
}

// GameModel runs one engine on a paced tick loop.
type GameModel struct {
	id        int // tags this game's tick loop
	engine    *snake.Engine
	pace      config.PaceConfig
	screen    *core.Screen
	store     ScoreStore
	keyMapper *KeyMapper

	best       map[string]int // stored high score per mode
	assisted   bool           // autopilot drove at least one move this game
	scoreSaved bool
	newBest    bool

	quitting       bool
	backToMenu     bool
	openScoreboard bool
}

// NewGameModel builds an engine from settings and wraps it for the terminal.
// id must differ from any earlier game in the same program.
func NewGameModel(id int, settings GameSettings, store ScoreStore, width, height int) (GameModel, error) {
	engine, err := snake.New(settings.Options, rand.New(rand.NewSource(settings.seedFor(id))))
	if err != nil {
		return GameModel{}, err
	}

	m := GameModel{
		id:        id,
		engine:    engine,
		pace:      settings.Pace,
		screen:    core.NewScreen(width, height),
		store:     store,
		keyMapper: NewKeyMapper(),
		best:      make(map[string]int, 2),
	}
	m.loadBest()
	return m, nil
}

// loadBest refreshes the stored high scores. Failures read as zero.
func (m *GameModel) loadBest() {
	if m.store == nil {
		return
	}
	for _, mode := range []string{storage.ModeManual, storage.ModeAuto} {
		if hs, err := m.store.HighScore(mode); err == nil {
			m.best[mode] = hs
		}
	}
}

// scoreMode is the board this game ranks on. Any autopilot help makes it auto.
func (m GameModel) scoreMode() string {
	if m.assisted || m.engine.Autonomous() {
		return storage.ModeAuto
	}
	return storage.ModeManual
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.id, m.pace.Interval(m.engine.Len()))
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Game != m.id {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey turns a key press into engine calls.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionStart:
		m.engine.Start()
	case core.ActionPause:
		m.engine.TogglePause()
	case core.ActionAutopilot:
		m.engine.SetAutonomous(!m.engine.Autonomous())
	case core.ActionReset:
		m.reset()
	case core.ActionScoreboard:
		m.openScoreboard = true
	case core.ActionBack:
		m.backToMenu = true
	default:
		if dir, ok := action.Heading(); ok {
			m.engine.SetDirection(dir)
		}
	}
	return m, nil
}

// reset starts a fresh board on the same engine.
func (m *GameModel) reset() {
	m.engine.Reset(m.engine.Width())
	m.assisted = false
	m.scoreSaved = false
	m.newBest = false
	m.loadBest()
}

// handleTick advances the engine and schedules the next tick.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.engine.Status() == snake.StatusRunning && m.engine.Autonomous() {
		m.assisted = true
	}

	if m.engine.Tick() == snake.GameOver {
		m.finish()
	}

	return m, tickCmd(m.id, m.pace.Interval(m.engine.Len()))
}

// finish records the score once per game.
func (m *GameModel) finish() {
	if m.scoreSaved {
		return
	}
	m.scoreSaved = true

	score := m.engine.Score()
	mode := m.scoreMode()
	if score > m.best[mode] {
		m.newBest = true
		m.best[mode] = score
	}
	if m.store != nil && score > 0 {
		snap := m.engine.Snapshot()
		//nolint:errcheck // Best-effort save, the game goes on regardless
		m.store.SaveScore(mode, score, snap.Length, int(snap.Tick))
	}
}

// saveScreenshot writes the current frame as plain text.
func (m *GameModel) saveScreenshot() {
	drawGame(m.screen, m.engine.Snapshot(), m.hud())

	dir := filepath.Join(os.Getenv("HOME"), ".snakebot", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	name := fmt.Sprintf("snake_%s.txt", time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save
	os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

// hud collects what the renderer shows around the board.
func (m GameModel) hud() hudInfo {
	mode := m.scoreMode()
	return hudInfo{
		Best:    max(m.best[mode], m.engine.Score()),
		Mode:    mode,
		NewBest: m.newBest,
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	drawGame(m.screen, m.engine.Snapshot(), m.hud())
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user asked to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to leave the game.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// WantsScoreboard returns true if the user pressed Tab.
func (m GameModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Engine exposes the running engine, mostly for tests.
func (m GameModel) Engine() *snake.Engine {
	return m.engine
}
