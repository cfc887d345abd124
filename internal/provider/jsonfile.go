package provider

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/jask/filmotheque/internal/catalog"
)

// JSONFile reads an array of records from Path on every fetch.
type JSONFile struct {
	Path    string
	Latency time.Duration
}

func (p JSONFile) Movies(ctx context.Context) ([]catalog.Record, error) {
	if err := sleep(ctx, p.Latency); err != nil {
		return nil, err
	}
	f, err := os.Open(p.Path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return DecodeJSON(f)
}

// DecodeJSON decodes an array of records.
func DecodeJSON(r io.Reader) ([]catalog.Record, error) {
	var records []catalog.Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if records == nil {
		records = []catalog.Record{}
	}
	return records, nil
}
