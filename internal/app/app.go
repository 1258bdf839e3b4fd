// Package app holds the application-wide shapes shared by the HTTP layer and
// the Supabase client: error bodies, request-local state, page payloads and
// platform bindings.
package app

import "context"

// Error is the JSON error body returned by the API.
type Error struct {
	Message string `json:"message"`
}

// User is the authenticated Supabase user attached to a request.
type User struct {
	ID           string         `json:"id"`
	Email        string         `json:"email,omitempty"`
	Role         string         `json:"role,omitempty"`
	AppMetadata  map[string]any `json:"appMetadata,omitempty"`
	UserMetadata map[string]any `json:"userMetadata,omitempty"`
}

// Locals is request-local state. Populated by middleware, read by handlers.
type Locals struct {
	User        *User
	AccessToken string
}

// PageData is the free-form payload a page handler renders.
type PageData map[string]any

// PageState is client-side page state carried across navigations.
type PageState map[string]any

// Platform describes where the process runs.
type Platform struct {
	Service     string `json:"service"`
	Environment string `json:"environment"`
}

type ctxKey string

const (
	localsKey   ctxKey = "locals"
	platformKey ctxKey = "platform"
)

func WithLocals(ctx context.Context, l *Locals) context.Context {
	return context.WithValue(ctx, localsKey, l)
}

// LocalsFrom returns the request locals. ok is false when no middleware set them.
func LocalsFrom(ctx context.Context) (*Locals, bool) {
	l, ok := ctx.Value(localsKey).(*Locals)
	return l, ok && l != nil
}

// UserFrom is a shortcut for LocalsFrom(ctx).User.
func UserFrom(ctx context.Context) (*User, bool) {
	l, ok := LocalsFrom(ctx)
	if !ok || l.User == nil {
		return nil, false
	}
	return l.User, true
}

func WithPlatform(ctx context.Context, p Platform) context.Context {
	return context.WithValue(ctx, platformKey, p)
}

func PlatformFrom(ctx context.Context) (Platform, bool) {
	p, ok := ctx.Value(platformKey).(Platform)
	return p, ok
}
