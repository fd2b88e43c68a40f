package web

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/snakebot/internal/config"
	"github.com/vovakirdan/snakebot/internal/recording"
	"github.com/vovakirdan/snakebot/internal/snake"
)

// DefaultAddr is the listen address used when Config.Addr is empty.
const DefaultAddr = ":12000"

// Config holds configuration for the watch server.
type Config struct {
	Addr    string
	Options snake.Options // Autonomous is forced on
	Pace    config.PaceConfig
	Seed    int64 // 0 means seed from the clock

	// RestartDelay is how long the final frame of a game stays up before
	// a new game starts.
	RestartDelay time.Duration

	// Recorder, when set, archives every tick and is flushed once per game.
	Recorder *recording.Recorder

	Logger *log.Logger
}

// Server runs one autopilot game forever and streams it on /ws.
type Server struct {
	cfg      Config
	hub      *Hub
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// New validates cfg and returns a server ready to Run.
func New(cfg Config) (*Server, error) {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.RestartDelay <= 0 {
		cfg.RestartDelay = 2 * time.Second
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	cfg.Options.Autonomous = true
	if cfg.Pace.Floor() <= 0 {
		return nil, fmt.Errorf("web: pace min_ms must be positive")
	}
	if _, err := snake.New(cfg.Options, rand.New(rand.NewSource(cfg.Seed))); err != nil {
		return nil, fmt.Errorf("web: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Server{
		cfg:    cfg,
		hub:    NewHub(),
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}, nil
}

// Hub returns the server's client hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Handler returns the HTTP routes: /ws for frames, /healthz for probes.
// The returned handler only works while Run (or Serve) is active.
func (s *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		//nolint:errcheck // Nothing to do if the probe hung up
		w.Write([]byte("ok\n"))
	})
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade has already written the HTTP error.
			s.logger.Debug("upgrade failed", "remote", r.RemoteAddr, "error", err)
			return
		}
		s.logger.Info("viewer connected", "remote", r.RemoteAddr)
		s.hub.attach(ctx, conn)
	})
	return mux
}

// Serve runs the hub and the game loop without an HTTP listener, for
// callers that mount Handler themselves. It blocks until ctx is done.
func (s *Server) Serve(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.hub.Run(ctx) })
	g.Go(func() error { return s.gameLoop(ctx) })
	return g.Wait()
}

// Run listens on cfg.Addr and streams games until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	httpSrv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error { return s.Serve(ctx) })
	g.Go(func() error {
		s.logger.Info("watch server listening", "address", s.cfg.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("web: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// gameLoop owns the engine. It ticks at the configured pace, broadcasts a
// frame per tick and starts a new game a short while after each one ends.
func (s *Server) gameLoop(ctx context.Context) error {
	engine, err := snake.New(s.cfg.Options, rand.New(rand.NewSource(s.cfg.Seed)))
	if err != nil {
		return fmt.Errorf("web: %w", err)
	}

	runID := uuid.NewString()
	engine.Start()
	s.publish(runID, engine.Snapshot(), snake.Continued)

	timer := time.NewTimer(s.cfg.Pace.Interval(engine.Len()))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.flush(runID)
			return nil
		case <-timer.C:
		}

		out := engine.Tick()
		snap := engine.Snapshot()
		s.publish(runID, snap, out)
		if s.cfg.Recorder != nil {
			s.cfg.Recorder.Observe(runID, snap, out)
		}

		next := s.cfg.Pace.Interval(engine.Len())
		if out == snake.GameOver || !snap.HasFood {
			s.logger.Info("game finished",
				"run", runID,
				"score", snap.Score,
				"length", snap.Length,
				"ticks", snap.Tick,
				"board_full", !snap.HasFood,
				"viewers", s.hub.Clients(),
			)
			s.flush(runID)

			engine.Reset(engine.Width())
			engine.Start()
			runID = uuid.NewString()
			next = s.cfg.RestartDelay
		}
		timer.Reset(next)
	}
}

// publish encodes and broadcasts one frame.
func (s *Server) publish(runID string, snap snake.Snapshot, out snake.Outcome) {
	data, err := FrameFromSnapshot(runID, snap, out).Encode()
	if err != nil {
		s.logger.Error("cannot encode frame", "error", err)
		return
	}
	if !s.hub.Broadcast(data) {
		s.logger.Debug("frame dropped, hub busy", "tick", snap.Tick)
	}
}

// flush archives the recorded game, if recording.
func (s *Server) flush(runID string) {
	if s.cfg.Recorder == nil {
		return
	}
	path, err := s.cfg.Recorder.Flush(runID)
	if err != nil {
		s.logger.Error("cannot write recording", "run", runID, "error", err)
		return
	}
	if path != "" {
		s.logger.Debug("recording written", "path", path)
	}
}
