package domain

import (
	"context"
	"strings"
	"time"
)

// Session is an authenticated shop session as persisted in the sessions collection.
// Offline sessions are keyed "offline_<shop>".
type Session struct {
	ID          string     `json:"id" bson:"_id"`
	Shop        string     `json:"shop" bson:"shop"`
	State       string     `json:"state" bson:"state"`
	IsOnline    bool       `json:"is_online" bson:"isOnline"`
	Scope       string     `json:"scope" bson:"scope"`
	AccessToken string     `json:"-" bson:"accessToken"`
	Expires     *time.Time `json:"expires,omitempty" bson:"expires,omitempty"`
}

// OfflineSessionID returns the id of the shop's offline session.
func OfflineSessionID(shop string) string {
	return "offline_" + shop
}

// Scopes returns the granted scopes as a list.
func (s *Session) Scopes() []string {
	if s.Scope == "" {
		return nil
	}
	var out []string
	for _, scope := range strings.Split(s.Scope, ",") {
		if scope = strings.TrimSpace(scope); scope != "" {
			out = append(out, scope)
		}
	}
	return out
}

// IsActive reports whether the session can be used to call the Admin API.
func (s *Session) IsActive(now time.Time) bool {
	if s == nil || s.AccessToken == "" {
		return false
	}
	return s.Expires == nil || now.Before(*s.Expires)
}

type sessionContextKey struct{}

// WithSession stores the authenticated session in the context.
func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, session)
}

// SessionFromContext returns the session stored by WithSession, or nil.
func SessionFromContext(ctx context.Context) *Session {
	session, _ := ctx.Value(sessionContextKey{}).(*Session)
	return session
}
