package catalog

import (
	"context"
	"time"
)

// Option is a selectable category. Label always equals Value.
type Option struct {
	Value string
	Label string
}

// DeriveOptions returns the distinct categories of movies in order of first
// occurrence.
func DeriveOptions(movies []Movie) []Option {
	seen := make(map[string]struct{}, len(movies))
	out := make([]Option, 0)
	for _, m := range movies {
		if _, ok := seen[m.Category]; ok {
			continue
		}
		seen[m.Category] = struct{}{}
		out = append(out, Option{Value: m.Category, Label: m.Category})
	}
	return out
}

// Deriver loads category options asynchronously. Latency simulates a slow
// source; zero means immediate.
type Deriver struct {
	Latency time.Duration
}

// Load derives options for movies after the configured latency. The only
// error is the context's, when it is cancelled first.
func (d Deriver) Load(ctx context.Context, movies []Movie) ([]Option, error) {
	if d.Latency > 0 {
		timer := time.NewTimer(d.Latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}
	return DeriveOptions(movies), nil
}
