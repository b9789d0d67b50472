package devices

// Staleness is a qualitative liveness bucket derived from the seconds
// elapsed since a peer was last seen. The engine never acts on it; the
// presentation layer uses it to color rows.
type Staleness int

const (
	Fresh Staleness = iota
	Warning
	Stale
)

const (
	freshThreshold = 2.0
	staleThreshold = 10.0
)

func Classify(secondsSinceSeen float64) Staleness {
	switch {
	case secondsSinceSeen < freshThreshold:
		return Fresh
	case secondsSinceSeen < staleThreshold:
		return Warning
	default:
		return Stale
	}
}

func (s Staleness) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case Warning:
		return "warning"
	default:
		return "stale"
	}
}
