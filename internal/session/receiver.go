package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"mcast/internal/envelope"
	"mcast/internal/multicast"
	"mcast/internal/util/logger/sl"
)

// receiveLoop drains the group socket until cancellation or a fatal
// read error. Malformed datagrams and our own envelopes are discarded
// without user-facing noise; everything else updates the device table
// and surfaces as a message event.
func (s *Session) receiveLoop(ctx context.Context, conn Conn, instanceID string) {
	defer s.wg.Done()

	const op = "session.receiveLoop"
	log := s.log.With(slog.String("op", op))

	buf := make([]byte, multicast.MaxDatagramSize)
	for {
		select {
		case <-ctx.Done():
			log.Debug("receive loop stopped")
			return
		default:
		}

		n, _, err := conn.Receive(buf)
		if err != nil {
			if errors.Is(err, multicast.ErrReadTimeout) {
				continue
			}
			if ctx.Err() != nil {
				return
			}
			// fatal for this loop only; the session stays up until an
			// explicit stop
			log.Error("receive failed", sl.Err(err))
			s.emit(ErrorEvent{Text: fmt.Sprintf("receive failed: %v", err)})
			return
		}

		s.metrics.IncReceived()

		env, err := envelope.Decode(buf[:n])
		if err != nil {
			// parsing noise on a shared group is expected
			s.metrics.IncParseErrors()
			continue
		}

		if env.SenderID == instanceID {
			s.metrics.IncSelfDropped()
			continue
		}

		s.table.Upsert(env.SenderID, env.Text, time.Now())

		s.emit(MessageEvent{
			MsgType:   envelope.TypeName(env.Type),
			SenderID:  env.SenderID,
			Text:      env.Text,
			Timestamp: time.Now().Format(timestampLayout),
		})
	}
}
