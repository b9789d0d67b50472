package multicast

import "errors"

var (
	ErrInvalidAddress    = errors.New("address is not a valid ip literal")
	ErrNotMulticast      = errors.New("address is not a multicast group")
	ErrInvalidPort       = errors.New("port out of range")
	ErrInterfaceNotFound = errors.New("interface not found")

	// ErrReadTimeout reports that the bounded receive window elapsed
	// with no datagram. It is the caller's cue to poll its stop signal.
	ErrReadTimeout = errors.New("receive timed out")
)

// IsConfigError reports whether err stems from the group configuration
// rather than from the network stack.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidAddress) ||
		errors.Is(err, ErrNotMulticast) ||
		errors.Is(err, ErrInvalidPort) ||
		errors.Is(err, ErrInterfaceNotFound)
}
