package guard

import (
	"errors"

	"github.com/spec-kit/rideshare-client/internal/domain"
	"github.com/spec-kit/rideshare-client/internal/session"
)

// ErrRedirected is returned by page constructors whose access check
// failed. The page never came up and no network call was issued.
var ErrRedirected = errors.New("redirected")

// Navigator performs page navigation for redirects.
type Navigator interface {
	NavigateTo(path string)
}

// RequireLogin redirects to target unless a session is live. Pages call
// this before issuing any request, so unauthenticated visitors never
// trigger authenticated calls.
func RequireLogin(store *session.Store, nav Navigator, target string) (*domain.Identity, error) {
	identity := store.Current()
	if identity == nil {
		nav.NavigateTo(target)
		return nil, ErrRedirected
	}
	return identity, nil
}

// RequireRole redirects to target unless the live session carries the
// given role. Absence of a session fails closed the same way.
func RequireRole(store *session.Store, role domain.Role, nav Navigator, target string) (*domain.Identity, error) {
	identity := store.Current()
	if identity == nil || !identity.HasRole(role) {
		nav.NavigateTo(target)
		return nil, ErrRedirected
	}
	return identity, nil
}
