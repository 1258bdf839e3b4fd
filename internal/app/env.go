package app

// Public environment entries. Both are safe to ship to browsers; the anon key
// is gated by row level security on the Supabase side.
const (
	EnvSupabaseURL     = "PUBLIC_SUPABASE_URL"
	EnvSupabaseAnonKey = "PUBLIC_SUPABASE_ANON_KEY"
)

// Env is the typed view of the public environment.
type Env struct {
	PublicSupabaseURL     string
	PublicSupabaseAnonKey string
}

// ReadEnv fills Env through lookup (usually os.Getenv). Values are kept as-is.
func ReadEnv(lookup func(string) string) Env {
	if lookup == nil {
		return Env{}
	}
	return Env{
		PublicSupabaseURL:     lookup(EnvSupabaseURL),
		PublicSupabaseAnonKey: lookup(EnvSupabaseAnonKey),
	}
}
