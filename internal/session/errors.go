package session

import "errors"

var (
	ErrAlreadyRunning = errors.New("multicast session already running")
	ErrNotRunning     = errors.New("multicast session not running")
)
