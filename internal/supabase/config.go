package supabase

import (
	"os"

	"supaportal/backend/internal/app"
)

const defaultSchema = "public"

// Config is what the client is built from. URL and AnonKey are required.
type Config struct {
	URL     string
	AnonKey string

	// Schema used by REST queries. Empty means "public".
	Schema string
}

// LoadConfig reads the Supabase settings from the process environment.
// It never fails; NewClient does the validation.
func LoadConfig() Config {
	env := app.ReadEnv(os.Getenv)
	return Config{
		URL:     env.PublicSupabaseURL,
		AnonKey: env.PublicSupabaseAnonKey,
		Schema:  os.Getenv("SUPABASE_SCHEMA"),
	}
}

// Validate rejects a config whose URL or key is empty. Unset and empty are the
// same thing here.
func (c Config) Validate() error {
	var missing []string
	if c.URL == "" {
		missing = append(missing, app.EnvSupabaseURL)
	}
	if c.AnonKey == "" {
		missing = append(missing, app.EnvSupabaseAnonKey)
	}
	if len(missing) > 0 {
		return &ConfigurationError{Missing: missing}
	}
	return nil
}

func (c Config) schema() string {
	if c.Schema == "" {
		return defaultSchema
	}
	return c.Schema
}
