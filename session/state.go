package session

// State is the lifecycle state of the managed session.
type State int

const (
	Unauthenticated State = iota
	Authenticated
	Refreshing
	LoggedOut
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Authenticated:
		return "authenticated"
	case Refreshing:
		return "refreshing"
	case LoggedOut:
		return "logged_out"
	default:
		return "unknown"
	}
}
