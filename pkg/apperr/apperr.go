// Package apperr holds the sentinel errors shared by the order aggregate,
// the authorization scoper and the HTTP layer. Controllers match them with
// errors.Is and map them to status codes in pkg/resp.
package apperr

import "errors"

var (
	// ErrInvalidTransition: the requested status change violates lifecycle
	// order. Business rule failure, never retried.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrAuthorizationDenied: the staff member's role or service-point
	// assignments do not cover the target. Kept distinct from
	// ErrInvalidTransition so the UI can say why.
	ErrAuthorizationDenied = errors.New("authorization denied")

	// ErrNoManageableItems: narrowing a bulk request left nothing the caller
	// may act on. Surfaced instead of silently updating zero items.
	ErrNoManageableItems = errors.New("no manageable items in request")

	// ErrNotFound: referenced order, item or table does not exist.
	ErrNotFound = errors.New("not found")

	// ErrTransportUnavailable: the session or broker connection is down.
	// Recoverable; callers reconnect with backoff and re-sync state.
	ErrTransportUnavailable = errors.New("transport unavailable")
)
