package service

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"github.com/jask/filmotheque/internal/catalog"
	"github.com/jask/filmotheque/internal/database"
	"github.com/jask/filmotheque/internal/database/repository"
	"github.com/jask/filmotheque/internal/logging"
	"github.com/jask/filmotheque/internal/provider"
)

// IngestService loads catalog files into the SQLite source.
type IngestService struct {
	Movies  *repository.MovieRepo
	Imports *repository.ImportRepo
}

type IngestResult struct {
	Imported int
	Skipped  int
	Errors   []error
}

// ImportFile picks the format from the extension: .json, otherwise CSV.
func (s *IngestService) ImportFile(ctx context.Context, path string) (IngestResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return IngestResult{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var res IngestResult
	if strings.EqualFold(filepath.Ext(path), ".json") {
		res, err = s.ImportJSON(ctx, f)
	} else {
		res, err = s.ImportCSV(ctx, f)
	}
	if err != nil {
		return res, err
	}
	for i := range res.Errors {
		res.Errors[i] = fmt.Errorf("%s: %w", filepath.Base(path), res.Errors[i])
	}
	s.record(ctx, filepath.Base(path), res)
	return res, nil
}

// ImportJSON ingests an array of records. Records failing validation are
// reported and skipped; the rest are inserted.
func (s *IngestService) ImportJSON(ctx context.Context, r io.Reader) (IngestResult, error) {
	records, err := provider.DecodeJSON(r)
	if err != nil {
		return IngestResult{}, err
	}
	res := IngestResult{}
	next, err := s.Movies.NextSortOrder(ctx)
	if err != nil {
		return res, err
	}
	for i, rec := range records {
		if strings.TrimSpace(rec.ID) == "" {
			rec.ID = uuid.NewString()
		}
		if err := provider.ValidateRecord(rec); err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		if s.insert(ctx, &res, rec, next, fmt.Sprintf("record %d", i)) {
			next++
		}
	}
	return res, nil
}

// CSV columns: id, title, category, likes, dislikes, image.
// A header row starting with "id" is skipped. Empty id gets a fresh uuid.
func (s *IngestService) ImportCSV(ctx context.Context, r io.Reader) (IngestResult, error) {
	res := IngestResult{}
	csvr := csv.NewReader(bufio.NewReader(r))
	csvr.TrimLeadingSpace = true
	csvr.FieldsPerRecord = -1

	next, err := s.Movies.NextSortOrder(ctx)
	if err != nil {
		return res, err
	}
	line := 0
	for {
		line++
		rec, err := csvr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "id") {
			continue
		}
		if len(rec) < 5 {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: expected at least 5 columns (id, title, category, likes, dislikes)", line))
			continue
		}
		likes, err := parseCount(rec[3])
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d likes: %w", line, err))
			continue
		}
		dislikes, err := parseCount(rec[4])
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d dislikes: %w", line, err))
			continue
		}
		m := catalog.Record{
			ID:       strings.TrimSpace(rec[0]),
			Title:    strings.TrimSpace(rec[1]),
			Category: strings.TrimSpace(rec[2]),
			Likes:    likes,
			Dislikes: dislikes,
		}
		if len(rec) > 5 {
			m.Image = strings.TrimSpace(rec[5])
		}
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		if err := provider.ValidateRecord(m); err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		if s.insert(ctx, &res, m, next, fmt.Sprintf("line %d", line)) {
			next++
		}
	}
	return res, nil
}

// insert stores rec and reports whether a row was added. Existing ids count
// as skipped.
func (s *IngestService) insert(ctx context.Context, res *IngestResult, rec catalog.Record, sortOrder int, where string) bool {
	if err := s.Movies.Insert(ctx, database.RowFromRecord(rec, sortOrder)); err != nil {
		if isUniqueViolation(err) {
			res.Skipped++
			return false
		}
		res.Errors = append(res.Errors, fmt.Errorf("%s insert: %w", where, err))
		return false
	}
	res.Imported++
	return true
}

func (s *IngestService) record(ctx context.Context, source string, res IngestResult) {
	log := logging.With().Str("component", "ingest").Str("source", source).Logger()
	log.Info().Int("imported", res.Imported).Int("skipped", res.Skipped).Int("errors", len(res.Errors)).Msg("catalog import")
	if s.Imports == nil {
		return
	}
	run := repository.ImportRun{
		ID:       uuid.NewString(),
		Source:   source,
		Imported: res.Imported,
		Skipped:  res.Skipped,
		Errors:   len(res.Errors),
	}
	if err := s.Imports.Insert(ctx, run); err != nil {
		log.Warn().Err(err).Msg("record import run")
	}
}

func parseCount(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative count %d", n)
	}
	return n, nil
}

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey || se.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return strings.Contains(err.Error(), "UNIQUE")
}
