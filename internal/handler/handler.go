package handler

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/sysu-ecnc-dev/employee-directory/backend/internal/auth"
	"github.com/sysu-ecnc-dev/employee-directory/backend/internal/config"
	"github.com/sysu-ecnc-dev/employee-directory/backend/internal/metrics"
)

type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	config *config.Config
	schema *graphql.Schema
	tokens TokenVerifier
	db     Pinger

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, schema *graphql.Schema, tokens TokenVerifier, db Pinger) *Handler {
	return &Handler{
		config: cfg,
		schema: schema,
		tokens: tokens,
		db:     db,

		Mux: chi.NewRouter(),
	}
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Get("/healthz", h.Healthz)
	h.Mux.Method("GET", "/metrics", metrics.Handler())

	// 令牌是可选的，是否强制要求由 resolver 决定
	h.Mux.With(h.bearer).Method("POST", "/graphql", &relay.Handler{Schema: h.schema})
}
