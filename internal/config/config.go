package config

import (
	"os"
	"strings"

	"supaportal/backend/internal/app"

	"github.com/joho/godotenv"
)

type Config struct {
	SupabaseURL     string
	SupabaseAnonKey string
	SupabaseSchema  string
	Port            string
	AllowedOrigins  []string
	LogLevel        string
	Platform        app.Platform
}

// Load reads the process environment. A .env file in the working directory is
// applied first; variables already set in the environment win.
func Load() Config {
	_ = godotenv.Load()
	return FromLookup(os.Getenv)
}

// FromLookup builds a Config from any key lookup. Required values are not
// checked here.
func FromLookup(lookup func(string) string) Config {
	get := func(key, def string) string {
		v := lookup(key)
		if v == "" {
			return def
		}
		return v
	}

	env := app.ReadEnv(lookup)
	origins := get("ALLOWED_ORIGINS", "http://localhost:5173")

	allowed := []string{}
	for _, o := range strings.Split(origins, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			allowed = append(allowed, o)
		}
	}

	return Config{
		SupabaseURL:     env.PublicSupabaseURL,
		SupabaseAnonKey: env.PublicSupabaseAnonKey,
		SupabaseSchema:  get("SUPABASE_SCHEMA", ""),
		Port:            get("PORT", "8080"),
		AllowedOrigins:  allowed,
		LogLevel:        strings.ToLower(get("LOG_LEVEL", "info")),
		Platform: app.Platform{
			Service:     get("SERVICE_NAME", "supaportal-api"),
			Environment: get("ENVIRONMENT", "development"),
		},
	}
}
