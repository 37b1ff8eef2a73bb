package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"time"

	"github.com/sysu-ecnc-dev/employee-directory/backend/internal/config"
)

//go:embed schema.sql
var schemaSQL string

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}

func (r *Repository) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
}

// EnsureSchema 创建服务所需的表和唯一约束，表已存在时不做任何修改
func (r *Repository) EnsureSchema(ctx context.Context) error {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, schemaSQL)
	return err
}

func (r *Repository) Ping(ctx context.Context) error {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	return r.dbpool.PingContext(ctx)
}
