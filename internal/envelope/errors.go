package envelope

import "errors"

var (
	ErrTruncated   = errors.New("datagram too short")
	ErrTextTooLong = errors.New("message text too long")
	ErrBadSenderID = errors.New("sender id must be a canonical uuid string")
)
