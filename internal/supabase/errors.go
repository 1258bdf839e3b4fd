package supabase

import (
	"errors"
	"strings"
)

// ConfigurationMessage is the fixed text of every ConfigurationError.
const ConfigurationMessage = "Missing Supabase environment variables."

var ErrUnauthorized = errors.New("unauthorized")

// ConfigurationError is returned when the Supabase URL or anon key is missing
// or empty. Missing lists the offending variable names for logs; the message
// itself never changes.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string { return ConfigurationMessage }

// Detail is Error() plus the names of the missing variables.
func (e *ConfigurationError) Detail() string {
	if len(e.Missing) == 0 {
		return ConfigurationMessage
	}
	return ConfigurationMessage + " (" + strings.Join(e.Missing, ", ") + ")"
}

func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

func IsErrUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }
