package flow

// AuthorizationRequest describes a browser-based authorization launch.
// The launcher opens the URL and later feeds the outcome back through
// Controller.HandleAuthorizationResult.
type AuthorizationRequest struct {
	URL          string
	State        string
	CodeVerifier string
}

// EndSessionRequest describes a browser-based end-session launch.
type EndSessionRequest struct {
	URL string
}

// Launcher is the host-provided boundary to the OS-level authorization
// UI. Launch calls must not block; outcomes arrive asynchronously.
type Launcher interface {
	Launch(req AuthorizationRequest)
	LaunchEndSession(req EndSessionRequest)
}

// ResultKind tags a launcher outcome.
type ResultKind int

const (
	ResultSuccess ResultKind = iota
	ResultCanceled
	ResultError
)

// AuthorizationResult is the tagged outcome of an authorization launch.
type AuthorizationResult struct {
	Kind             ResultKind
	Code             string
	State            string
	ErrorCode        string
	ErrorDescription string
}

// EndSessionResult is the tagged outcome of an end-session launch.
type EndSessionResult struct {
	Kind             ResultKind
	ErrorCode        string
	ErrorDescription string
}
