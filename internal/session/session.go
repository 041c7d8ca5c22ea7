// Package session carries the caller's identity through a request.
//
// A Session is resolved once per operation (from the bearer token) and
// passed down explicitly in the context. Nothing about the caller is cached
// between requests.
package session

import "context"

// Session identifies the member making a request.
type Session struct {
	// MemberID is the caller's profile.
	MemberID string

	// AuthUserID is the identity-provider subject the profile is linked to.
	AuthUserID string

	Email string
}

type contextKey struct{}

// With returns a copy of ctx carrying s.
func With(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// From returns the session carried by ctx, if any.
func From(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok && s != nil
}

// MemberID returns the caller's member ID, or "" before authentication.
func MemberID(ctx context.Context) string {
	if s, ok := From(ctx); ok {
		return s.MemberID
	}
	return ""
}
