package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type contextKey string

const commandKey contextKey = "command"

// WithCommand records the running CLI command in ctx.
func WithCommand(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, commandKey, name)
}

// GetCommand returns the command recorded by WithCommand, or "".
func GetCommand(ctx context.Context) string {
	if name, ok := ctx.Value(commandKey).(string); ok {
		return name
	}
	return ""
}

// ContextHook adds the running command to events logged with a context.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}
	if name := GetCommand(ctx); name != "" {
		e.Str("command", name)
	}
}
