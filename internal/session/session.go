// Package session implements the multicast presence-and-messaging
// engine: one live session per Session value, a broadcaster loop
// announcing the current message on a fixed period, a receiver loop
// feeding the device table, and an event channel toward the
// presentation layer.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"mcast/internal/devices"
	"mcast/internal/metrics"
	"mcast/internal/multicast"
	"mcast/internal/util/logger/sl"
)

const (
	defaultSendInterval = 3 * time.Second
	firstSendDelay      = 500 * time.Millisecond
	eventBufferSize     = 256
	timestampLayout     = "15:04:05"
)

// Config is the per-start configuration of a session.
type Config struct {
	Address string
	Port    int
	Message string
	// Interface pins the outbound interface by name; empty lets the
	// platform choose.
	Interface    string
	SendInterval time.Duration
	ReadTimeout  time.Duration
}

// Conn is the slice of the socket layer the loops consume.
type Conn interface {
	Send(p []byte) error
	Receive(buf []byte) (int, net.Addr, error)
	Close() error
}

// Session owns the lifecycle of at most one running multicast
// membership. Start and Stop serialize on an internal mutex so the
// single-running invariant holds under concurrent callers.
type Session struct {
	log     *slog.Logger
	metrics *metrics.Metrics
	table   *devices.Table
	events  chan Event

	open        func(multicast.Config) (Conn, error)
	settleDelay time.Duration

	mu      sync.Mutex // serializes Start/Stop
	running atomic.Bool
	conn    Conn
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	stateMu    sync.RWMutex // guards instanceID and message
	instanceID string
	message    string

	sentCount atomic.Uint64
}

// New creates a stopped session. A nil metrics value is allowed.
func New(log *slog.Logger, m *metrics.Metrics) *Session {
	return &Session{
		log:     log,
		metrics: m,
		table:   devices.NewTable(),
		events:  make(chan Event, eventBufferSize),
		open: func(cfg multicast.Config) (Conn, error) {
			return multicast.Open(cfg)
		},
		settleDelay: firstSendDelay,
	}
}

// Events returns the channel the engine publishes on. The channel
// stays open for the life of the Session, across restarts.
func (s *Session) Events() <-chan Event {
	return s.events
}

// Start validates cfg, joins the group and spawns both loops. It fails
// with ErrAlreadyRunning if a session is live, and leaves the session
// stopped with no side effects on any validation or socket error.
func (s *Session) Start(cfg Config) (string, error) {
	const op = "session.Start"
	log := s.log.With(slog.String("op", op))

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running.Load() {
		return "", ErrAlreadyRunning
	}

	if cfg.SendInterval <= 0 {
		cfg.SendInterval = defaultSendInterval
	}

	mcfg := multicast.Config{
		Address:     cfg.Address,
		Port:        cfg.Port,
		Interface:   cfg.Interface,
		ReadTimeout: cfg.ReadTimeout,
	}
	if err := mcfg.Validate(); err != nil {
		return "", err
	}

	conn, err := s.open(mcfg)
	if err != nil {
		log.Error("failed to open multicast group", sl.Err(err))
		return "", err
	}

	instanceID := uuid.NewString()

	s.stateMu.Lock()
	s.instanceID = instanceID
	s.message = cfg.Message
	s.stateMu.Unlock()

	s.sentCount.Store(0)
	s.table.Clear()
	s.conn = conn

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(2)
	go s.receiveLoop(ctx, conn, instanceID)
	go s.broadcastLoop(ctx, conn, instanceID, cfg.SendInterval)

	s.running.Store(true)

	log.Info("session started",
		slog.String("instance_id", instanceID),
		slog.String("group", cfg.Address),
		slog.Int("port", cfg.Port),
	)
	s.emit(StatusEvent{Text: fmt.Sprintf("multicast session started on %s:%d", cfg.Address, cfg.Port)})

	return instanceID, nil
}

// Stop cancels both loops, waits for them to finish (the broadcaster
// sends its final disconnect before exiting), then closes the socket
// and clears all per-session state.
func (s *Session) Stop() error {
	const op = "session.Stop"
	log := s.log.With(slog.String("op", op))

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running.Load() {
		return ErrNotRunning
	}

	s.cancel()
	s.wg.Wait()

	if err := s.conn.Close(); err != nil {
		log.Warn("error closing group connection", sl.Err(err))
	}
	s.conn = nil
	s.cancel = nil

	s.table.Clear()
	s.sentCount.Store(0)

	s.stateMu.Lock()
	s.instanceID = ""
	s.message = ""
	s.stateMu.Unlock()

	s.running.Store(false)

	log.Info("session stopped")
	s.emit(StatusEvent{Text: "multicast session stopped"})

	return nil
}

// UpdateMessage swaps the broadcast text in place. The broadcaster
// reads it fresh on every tick. No-op while stopped.
func (s *Session) UpdateMessage(text string) {
	if !s.running.Load() {
		return
	}

	s.stateMu.Lock()
	s.message = text
	s.stateMu.Unlock()
}

// Running reports the lifecycle state.
func (s *Session) Running() bool {
	return s.running.Load()
}

// InstanceID returns the identifier of the live session, or the empty
// string when stopped.
func (s *Session) InstanceID() string {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.instanceID
}

// SentCount returns the number of envelopes sent by the live session,
// or zero when stopped.
func (s *Session) SentCount() uint64 {
	return s.sentCount.Load()
}

// ActiveDevices snapshots the presence table. Safe in any state; empty
// when stopped.
func (s *Session) ActiveDevices() []devices.Device {
	return s.table.Snapshot(time.Now())
}

func (s *Session) currentMessage() string {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.message
}

func (s *Session) emit(ev Event) {
	select {
	case s.events <- ev:
	default:
		// consumer is behind, drop rather than stall an I/O loop
	}
}
