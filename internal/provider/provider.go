// Package provider implements the data sources the store fetches the catalog
// from: a built-in seed, a JSON file and the SQLite catalog database.
package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jask/filmotheque/internal/catalog"
	"github.com/jask/filmotheque/internal/logging"
)

// ErrInvalidRecord marks a record that fails validation.
var ErrInvalidRecord = errors.New("invalid movie record")

// Provider delivers the full catalog in display order.
type Provider interface {
	Movies(ctx context.Context) ([]catalog.Record, error)
}

// Func adapts a function to Provider.
type Func func(ctx context.Context) ([]catalog.Record, error)

func (f Func) Movies(ctx context.Context) ([]catalog.Record, error) { return f(ctx) }

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateRecord checks a single record's fields.
func ValidateRecord(r catalog.Record) error {
	err := getValidator().Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s(%s)", strings.ToLower(fe.Field()), fe.Tag()))
		}
		return fmt.Errorf("%w: %s", ErrInvalidRecord, strings.Join(fields, ", "))
	}
	return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
}

// ValidateRecords checks every record and that ids are unique.
func ValidateRecords(records []catalog.Record) error {
	seen := make(map[string]int, len(records))
	for i, r := range records {
		if err := ValidateRecord(r); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if j, dup := seen[r.ID]; dup {
			return fmt.Errorf("record %d: %w: id %q already used by record %d", i, ErrInvalidRecord, r.ID, j)
		}
		seen[r.ID] = i
	}
	return nil
}

// Validating rejects any batch containing an invalid record.
type Validating struct {
	Next Provider
}

func (v Validating) Movies(ctx context.Context) ([]catalog.Record, error) {
	records, err := v.Next.Movies(ctx)
	if err != nil {
		return nil, err
	}
	if err := ValidateRecords(records); err != nil {
		logging.Warn().Err(err).Msg("provider returned invalid records")
		return nil, err
	}
	return records, nil
}

// sleep waits d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
