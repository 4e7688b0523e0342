package repository

// Origin tells a write where the change came from.
type Origin int

const (
	// LocalOrigin is a change made on this device; it is pushed.
	LocalOrigin Origin = iota
	// RemoteOrigin is a change received from the remote store; it is not.
	RemoteOrigin
)

func (o Origin) String() string {
	switch o {
	case LocalOrigin:
		return "local"
	case RemoteOrigin:
		return "remote"
	}
	return "unknown"
}
