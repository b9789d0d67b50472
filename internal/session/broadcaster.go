package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mcast/internal/envelope"
	"mcast/internal/util/logger/sl"
)

// broadcastLoop announces the current message on every tick. The first
// envelope after start carries the connect type so peers can register
// this instance promptly; every later tick is a plain text envelope.
// On cancellation it fires one best-effort disconnect before exiting.
func (s *Session) broadcastLoop(ctx context.Context, conn Conn, instanceID string, interval time.Duration) {
	defer s.wg.Done()

	const op = "session.broadcastLoop"
	log := s.log.With(slog.String("op", op))

	// let the group join settle before the first announce
	select {
	case <-ctx.Done():
		s.sendDisconnect(conn, instanceID)
		return
	case <-time.After(s.settleDelay):
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	msgType := envelope.TypeConnect
	for {
		s.broadcastOnce(conn, instanceID, msgType, log)
		msgType = envelope.TypeText

		select {
		case <-ctx.Done():
			s.sendDisconnect(conn, instanceID)
			log.Debug("broadcast loop stopped")
			return
		case <-ticker.C:
		}
	}
}

func (s *Session) broadcastOnce(conn Conn, instanceID string, msgType byte, log *slog.Logger) {
	text := fmt.Sprintf("%s #%d", s.currentMessage(), s.sentCount.Load()+1)

	env := envelope.Envelope{Type: msgType, SenderID: instanceID, Text: text}
	data, err := env.Encode()
	if err != nil {
		log.Error("failed to encode envelope", sl.Err(err))
		return
	}

	if err := conn.Send(data); err != nil {
		log.Error("send failed", sl.Err(err))
		s.emit(ErrorEvent{Text: fmt.Sprintf("send failed: %v", err)})
		return
	}

	s.metrics.IncSent()
	s.emit(SentEvent{Count: s.sentCount.Add(1)})
}

// sendDisconnect tells peers this instance is leaving so they can
// surface it without waiting for staleness. Failures are ignored.
func (s *Session) sendDisconnect(conn Conn, instanceID string) {
	env := envelope.Envelope{
		Type:     envelope.TypeDisconnect,
		SenderID: instanceID,
		Text:     fmt.Sprintf("%s - Disconnecting", s.currentMessage()),
	}

	data, err := env.Encode()
	if err != nil {
		return
	}
	_ = conn.Send(data)
}
