package session

import (
	"context"

	errs "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/token"
)

// Do executes an authenticated API call. Calls fail fast with
// ErrNotAuthorized when no access token is held and with ErrWrongThread
// when made from the host's designated event-loop goroutine. When the
// provider rejects the token as expired, a single silent refresh is
// performed and the call retried exactly once; any further failure is
// returned to the caller as-is.
func (m *Manager) Do(ctx context.Context, call func(ctx context.Context) error) error {
	return m.do(ctx, call, false)
}

func (m *Manager) do(ctx context.Context, call func(ctx context.Context) error, retried bool) error {
	if m.loopCheck != nil && m.loopCheck() {
		return errs.ErrWrongThread
	}
	if m.Token(token.AccessToken) == "" {
		return errs.ErrNotAuthorized
	}

	err := call(ctx)
	if err == nil {
		return nil
	}

	if errs.Is(err, errs.ErrTokenExpired) && !retried {
		if refreshErr := m.refresh(ctx, false); refreshErr != nil {
			return err
		}
		return m.do(ctx, call, true)
	}
	return err
}
