// Package supabase builds the single Supabase client the process uses.
//
// NewClient is the only constructor and it refuses to build anything from an
// incomplete config, so a *Client in hand is always fully configured. Build it
// once in main and pass it to whatever needs it.
package supabase

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"supaportal/backend/internal/app"

	gotrue "github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/gotrue-go/types"
	supabase "github.com/supabase-community/supabase-go"
)

// Client wraps the SDK client together with the values it was built from.
// It is read-only after construction and safe to share between goroutines.
type Client struct {
	url     string
	anonKey string
	schema  string
	sdk     *supabase.Client
}

// NewClient validates cfg and constructs the SDK client. It performs no I/O.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sdk, err := supabase.NewClient(cfg.URL, cfg.AnonKey, &supabase.ClientOptions{
		Schema: cfg.schema(),
	})
	if err != nil {
		return nil, fmt.Errorf("supabase client: %w", err)
	}

	return &Client{
		url:     cfg.URL,
		anonKey: cfg.AnonKey,
		schema:  cfg.schema(),
		sdk:     sdk,
	}, nil
}

// NewClientFromEnv is NewClient(LoadConfig()).
func NewClientFromEnv() (*Client, error) {
	return NewClient(LoadConfig())
}

func (c *Client) URL() string     { return c.url }
func (c *Client) AnonKey() string { return c.anonKey }
func (c *Client) Schema() string  { return c.schema }

// DB returns the underlying SDK client (REST, storage, functions).
func (c *Client) DB() *supabase.Client { return c.sdk }

// Auth returns the GoTrue auth client.
func (c *Client) Auth() gotrue.Client { return c.sdk.Auth }

// VerifyToken resolves a user access token through the auth API.
func (c *Client) VerifyToken(ctx context.Context, token string) (*app.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrUnauthorized
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := c.Auth().WithToken(token).GetUser()
	if err != nil {
		if rejected(err) {
			return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
		}
		return nil, fmt.Errorf("supabase auth: %w", err)
	}
	if resp == nil {
		return nil, ErrUnauthorized
	}
	return userFromResponse(resp), nil
}

// gotrue reports non-2xx answers as "response status code NNN: body".
var statusCodeRe = regexp.MustCompile(`status code (\d{3})`)

// rejected reports whether the auth API refused the token (401/403), as
// opposed to being unreachable or failing.
func rejected(err error) bool {
	m := statusCodeRe.FindStringSubmatch(err.Error())
	if m == nil {
		return false
	}
	return m[1] == "401" || m[1] == "403"
}

func userFromResponse(resp *types.UserResponse) *app.User {
	return &app.User{
		ID:           resp.ID.String(),
		Email:        resp.Email,
		Role:         resp.Role,
		AppMetadata:  resp.AppMetadata,
		UserMetadata: resp.UserMetadata,
	}
}
