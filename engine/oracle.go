package engine

import "context"

// Oracle scores a feature subset; higher is better. Scores may be noisy.
type Oracle interface {
	Evaluate(ctx context.Context, features []string) (float64, error)
}

// OracleFunc adapts a plain function to Oracle.
type OracleFunc func(ctx context.Context, features []string) (float64, error)

// Evaluate implements Oracle.
func (f OracleFunc) Evaluate(ctx context.Context, features []string) (float64, error) {
	return f(ctx, features)
}
