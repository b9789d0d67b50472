package session

// Event is one outward notification from the engine. Events are
// fire-and-forget: the presentation layer drains them from Events(),
// and a slow consumer loses events rather than stalling the loops.
type Event interface {
	isEvent()
}

// MessageEvent carries one accepted non-self envelope.
type MessageEvent struct {
	MsgType   string
	SenderID  string
	Text      string
	Timestamp string
}

// StatusEvent is a free-text lifecycle milestone.
type StatusEvent struct {
	Text string
}

// ErrorEvent is a free-text recoverable or fatal fault.
type ErrorEvent struct {
	Text string
}

// SentEvent reports the running sent counter after a successful send.
type SentEvent struct {
	Count uint64
}

func (MessageEvent) isEvent() {}
func (StatusEvent) isEvent()  {}
func (ErrorEvent) isEvent()   {}
func (SentEvent) isEvent()    {}
