package session

// Listener is the host callback surface, the only channel through which
// asynchronous outcomes reach the embedding application.
type Listener interface {
	// OnNewToken is delivered after every user-visible token acquisition.
	OnNewToken(accessToken string)

	// OnLogout is delivered whenever the session transitions to logged out,
	// whether user-initiated or forced by a fatal refresh failure.
	OnLogout()

	// OnException is delivered once per failure event.
	OnException(err error)
}
