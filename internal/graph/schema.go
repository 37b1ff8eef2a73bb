package graph

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/graph-gophers/graphql-go"
)

//go:embed schema.graphql
var schemaString string

const maxQueryDepth = 10

func NewSchema(r *Resolver) (*graphql.Schema, error) {
	return graphql.ParseSchema(schemaString, r,
		graphql.MaxDepth(maxQueryDepth),
		graphql.Logger(&panicLogger{logger: r.logger}),
	)
}

// panicLogger 把 resolver 中的 panic 写入 slog
type panicLogger struct {
	logger *slog.Logger
}

func (l *panicLogger) LogPanic(ctx context.Context, value interface{}) {
	l.logger.ErrorContext(ctx, "resolver 发生 panic", "panic", fmt.Sprint(value), "stack", string(debug.Stack()))
}
