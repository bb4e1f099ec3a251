package utils

import "context"

type ExecOptions struct {
	Verbose bool // stream subprocess output to the terminal
}

type ctxKey int

const (
	execOptsKey ctxKey = iota + 1
	labelKey
)

func WithExecOptions(ctx context.Context, opts ExecOptions) context.Context {
	return context.WithValue(ctx, execOptsKey, opts)
}

func GetExecOptions(ctx context.Context) ExecOptions {
	if v, ok := ctx.Value(execOptsKey).(ExecOptions); ok {
		return v
	}
	return ExecOptions{}
}

// WithLabel records the stage or channel on whose behalf work is done, so
// shared clients can prefix their progress lines with it.
func WithLabel(ctx context.Context, label string) context.Context {
	return context.WithValue(ctx, labelKey, label)
}

// LabelFrom returns the label set by WithLabel, or def.
func LabelFrom(ctx context.Context, def string) string {
	if v, ok := ctx.Value(labelKey).(string); ok && v != "" {
		return v
	}
	return def
}
