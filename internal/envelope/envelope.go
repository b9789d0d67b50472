// Package envelope implements the binary wire format exchanged on the
// multicast group. Layout: [type:1][length:2 BE][sender id:36][text:length].
package envelope

import (
	"encoding/binary"
	"fmt"
)

const (
	TypeText       byte = 0
	TypeDisconnect byte = 1
	TypeConnect    byte = 2
)

const (
	MaxTextSize = 500
	senderIDLen = 36 // canonical UUID string length
	headerLen   = 3
)

// Envelope is the unit carried inside each datagram.
type Envelope struct {
	Type     byte
	SenderID string
	Text     string
}

// TypeName returns the presentation name for a wire type byte.
func TypeName(t byte) string {
	switch t {
	case TypeText:
		return "TEXT"
	case TypeDisconnect:
		return "DISCONNECT"
	case TypeConnect:
		return "CONNECT"
	default:
		return "UNKNOWN"
	}
}

// Encode serializes the envelope into wire bytes.
func (e *Envelope) Encode() ([]byte, error) {
	if len(e.SenderID) != senderIDLen {
		return nil, fmt.Errorf("%w: got %d bytes", ErrBadSenderID, len(e.SenderID))
	}
	if len(e.Text) > MaxTextSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrTextTooLong, len(e.Text), MaxTextSize)
	}

	text := []byte(e.Text)
	buf := make([]byte, 0, headerLen+senderIDLen+len(text))

	buf = append(buf, e.Type)

	length := make([]byte, 2)
	binary.BigEndian.PutUint16(length, uint16(len(text)))
	buf = append(buf, length...)

	buf = append(buf, e.SenderID...)
	buf = append(buf, text...)

	return buf, nil
}

// Decode parses wire bytes into an envelope. Trailing bytes beyond the
// declared text length are ignored.
func Decode(data []byte) (*Envelope, error) {
	if len(data) < headerLen {
		return nil, fmt.Errorf("%w: %d bytes for header", ErrTruncated, len(data))
	}

	msgType := data[0]
	length := binary.BigEndian.Uint16(data[1:3])

	if len(data) < headerLen+senderIDLen {
		return nil, fmt.Errorf("%w: %d bytes for sender id", ErrTruncated, len(data))
	}

	textEnd := headerLen + senderIDLen + int(length)
	if len(data) < textEnd {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrTruncated, textEnd, len(data))
	}

	return &Envelope{
		Type:     msgType,
		SenderID: string(data[headerLen : headerLen+senderIDLen]),
		Text:     string(data[headerLen+senderIDLen : textEnd]),
	}, nil
}
