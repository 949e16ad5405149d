package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/minemarker/internal/config"
	"github.com/vovakirdan/minemarker/internal/scenario"
	"github.com/vovakirdan/minemarker/internal/sim"
	"github.com/vovakirdan/minemarker/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	SSH    config.SSHConfig
	Replay config.ReplayConfig
}

// SSHServer serves the scenario menu and replay viewer over SSH.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	loader *scenario.Loader
	logger *log.Logger
}

// NewSSHServer creates a new SSH server. The store may be nil, in which case
// runs are not recorded. The caller owns the store.
func NewSSHServer(cfg SSHServerConfig, loader *scenario.Loader, store *storage.Store, logger *log.Logger) (*SSHServer, error) {
	srv := &SSHServer{
		config: cfg,
		store:  store,
		loader: loader,
		logger: logger,
	}

	hostKeyPath, err := config.ExpandHome(cfg.SSH.HostKeyPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.SSH.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}
	if cfg.SSH.IdleTimeout > 0 {
		opts = append(opts, wish.WithIdleTimeout(cfg.SSH.IdleTimeout))
	}
	if cfg.SSH.MaxTimeout > 0 {
		opts = append(opts, wish.WithMaxTimeout(cfg.SSH.MaxTimeout))
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := Config{
		ScreenW:      pty.Window.Width,
		ScreenH:      pty.Window.Height,
		StepInterval: s.config.Replay.StepInterval(),
		Autoplay:     s.config.Replay.Autoplay,
	}

	model, err := NewSessionModel(s.loader, s.store, s.logger.With("user", sshSession.User()), cfg)
	if err != nil {
		s.logger.Error("cannot start session", "user", sshSession.User(), "error", err)
		return nil, nil
	}

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.SSH.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-done:
		s.logger.Info("shutting down...")
		return s.Shutdown()
	case err := <-errCh:
		return fmt.Errorf("ssh server: %w", err)
	}
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.SSH.Address
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenReplay
	screenScoreboard
)

// SessionModel manages one session: menu -> replay or results -> menu.
type SessionModel struct {
	loader     *scenario.Loader
	store      *storage.Store
	logger     *log.Logger
	config     Config
	scenarios  []scenario.Scenario
	screen     sessionScreen
	menu       MenuModel
	replay     ReplayModel
	scoreboard ScoreboardModel
	lastErr    error
	quitting   bool
}

// NewSessionModel loads the scenarios and opens the menu.
func NewSessionModel(loader *scenario.Loader, store *storage.Store, logger *log.Logger, cfg Config) (SessionModel, error) {
	scenarios, err := loader.LoadAll()
	if err != nil {
		return SessionModel{}, err
	}

	return SessionModel{
		loader:    loader,
		store:     store,
		logger:    logger,
		config:    cfg,
		scenarios: scenarios,
		menu:      NewMenuModel(scenarios, store, cfg),
	}, nil
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenReplay:
		return m.updateReplay(msg)
	case screenScoreboard:
		return m.updateScoreboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		m.scoreboard = NewScoreboardModel(m.store, m.scenarioIDs(), m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScoreboard
		return m, m.scoreboard.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		return m.startReplay(selected.ScenarioID)
	}

	return m, cmd
}

// startReplay runs a scenario and opens its replay.
func (m SessionModel) startReplay(id string) (tea.Model, tea.Cmd) {
	result, err := m.runScenario(id)
	if err != nil {
		m.logger.Error("scenario failed", "scenario", id, "error", err)
		m.lastErr = err
		m.menu = NewMenuModel(m.scenarios, m.store, m.config)
		return m, nil
	}

	m.lastErr = nil
	m.replay = NewReplayModel(id, result, m.config)
	m.screen = screenReplay
	return m, m.replay.Init()
}

func (m SessionModel) runScenario(id string) (*sim.Result, error) {
	s, err := m.loader.LoadByID(id)
	if err != nil {
		return nil, err
	}
	result, err := s.Run(sim.WithLogger(m.logger))
	if err != nil {
		return nil, err
	}

	if m.store != nil {
		if _, err := m.store.SaveResult(storage.NewEntry(s.ID, "ssh", result)); err != nil {
			m.logger.Warn("could not record result", "scenario", s.ID, "error", err)
		}
	}
	return result, nil
}

func (m SessionModel) updateReplay(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.replay.Update(msg)
	if replay, ok := newModel.(ReplayModel); ok {
		m.replay = replay
	}

	if m.replay.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.replay.BackToMenu() {
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if board, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = board
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.scenarios, m.store, m.config)
	return m, m.menu.Init()
}

func (m SessionModel) scenarioIDs() []string {
	ids := make([]string, len(m.scenarios))
	for i, s := range m.scenarios {
		ids[i] = s.ID
	}
	return ids
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenReplay:
		return m.replay.View()
	case screenScoreboard:
		return m.scoreboard.View()
	}

	view := m.menu.View()
	if m.lastErr != nil {
		view += "\n" + failStyle.Render(m.lastErr.Error()) + "\n"
	}
	return view
}
