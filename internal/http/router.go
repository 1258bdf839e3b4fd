package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"supaportal/backend/internal/app"
	"supaportal/backend/internal/config"
	"supaportal/backend/internal/middleware"
	"supaportal/backend/internal/observability"
	"supaportal/backend/internal/supabase"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type RouterDeps struct {
	Cfg      config.Config
	Supabase *supabase.Client
	// Auth defaults to Supabase.
	Auth     middleware.TokenVerifier
	Logger   *zap.Logger
	Metrics  *observability.Metrics
	Gatherer prometheus.Gatherer
}

func NewRouter(d RouterDeps) http.Handler {
	if d.Auth == nil {
		d.Auth = d.Supabase
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(observability.RequestLogger(d.Logger))
	if d.Metrics != nil {
		r.Use(d.Metrics.InstrumentHTTP)
	}
	// inside the logger and metrics so a recovered panic is seen as a 500
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(d.Cfg.AllowedOrigins))
	r.Use(middleware.WithPlatform(d.Cfg.Platform))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, 200, map[string]any{"ok": true, "ts": time.Now().UTC().Format(time.RFC3339)})
	})

	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	// Public client settings. The anon key stays out of the response.
	r.Get("/v1/config", func(w http.ResponseWriter, r *http.Request) {
		p, _ := app.PlatformFrom(r.Context())
		WriteJSON(w, 200, map[string]any{
			"supabaseUrl": d.Supabase.URL(),
			"schema":      d.Supabase.Schema(),
			"platform":    p,
		})
	})

	r.Post("/v1/auth/verify", func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Token string `json:"token"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			Fail(w, 400, "invalid json")
			return
		}
		in.Token = strings.TrimSpace(in.Token)
		if in.Token == "" {
			Fail(w, 400, "missing token")
			return
		}

		u, err := d.Auth.VerifyToken(r.Context(), in.Token)
		if err != nil {
			status, msg := mapAuthError(err)
			if status == 401 {
				d.Logger.Debug("token rejected", zap.Error(err))
			} else {
				d.Logger.Warn("token verification failed", zap.Error(err))
			}
			Fail(w, status, msg)
			return
		}
		WriteJSON(w, 200, u)
	})

	// Protected routes
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.WithAuth(d.Auth))

		pr.Get("/v1/me", func(w http.ResponseWriter, r *http.Request) {
			u, _ := app.UserFrom(r.Context())
			WriteJSON(w, 200, map[string]any{
				"id":           u.ID,
				"email":        u.Email,
				"role":         u.Role,
				"admin":        middleware.IsAdmin(u),
				"userMetadata": u.UserMetadata,
			})
		})
	})

	return r
}

func mapAuthError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case supabase.IsErrUnauthorized(err):
		return 401, "invalid token"
	default:
		return 502, "auth service unavailable"
	}
}
