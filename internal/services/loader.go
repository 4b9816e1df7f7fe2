package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vvka-141/catalogdb/pkg/catalogdb"
)

// LoaderService implements the catalogdb.Loader interface.
// Thread-Safety: NOT safe for concurrent Load() calls targeting the same database file.
type LoaderService struct {
	reader    catalogdb.TableReader
	openStore catalogdb.StoreOpener
	logger    catalogdb.Logger
	indexes   []catalogdb.IndexSpec
	newRunID  func() uuid.UUID
}

// NewLoaderService creates a LoaderService with all dependencies injected.
// Panics on nil dependencies: these are wiring mistakes, not runtime conditions.
func NewLoaderService(
	reader catalogdb.TableReader,
	openStore catalogdb.StoreOpener,
	logger catalogdb.Logger,
) *LoaderService {
	if reader == nil {
		panic("reader cannot be nil")
	}
	if openStore == nil {
		panic("openStore cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &LoaderService{
		reader:    reader,
		openStore: openStore,
		logger:    logger,
		indexes:   catalogdb.DefaultIndexes,
		newRunID:  uuid.New,
	}
}

// Load reads every configured CSV, replaces the matching tables in the
// database file and builds the lookup indexes.
//
// All sources are read before the database is opened, so missing or
// malformed input never creates or touches the file. Once opened, the
// store is closed on every return path.
func (s *LoaderService) Load(ctx context.Context, cfg catalogdb.LoadConfig) (result *catalogdb.LoadResult, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	runID := s.newRunID()
	s.logger.Verbose("Starting load %s into %s", runID, cfg.DBPath)

	sources := cfg.Sources()
	tables, err := s.readSources(sources)
	if err != nil {
		return nil, err
	}

	opts := cfg.StoreOptions()
	opts.OnBusy = func(attempt int, err error, delay time.Duration) {
		s.logger.Info("Database locked, retry %d/%d in %s: %v", attempt+1, cfg.BusyRetries, delay, err)
	}
	s.logger.Verbose("Opening %s with driver %s", opts.Path, opts.Driver)
	store, err := s.openStore(ctx, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			s.logger.Error("failed to close %s: %v", cfg.DBPath, closeErr)
			err = errors.Join(err, closeErr)
			result = nil
		}
	}()

	result = &catalogdb.LoadResult{RunID: runID, DBPath: cfg.DBPath}

	for i, table := range tables {
		if err := store.ReplaceTable(ctx, table); err != nil {
			return nil, fmt.Errorf("failed to write table %s: %w", table.Name, err)
		}
		s.logger.Verbose("Wrote table %s (%d rows): %s", table.Name, len(table.Rows), strings.Join(table.ColumnNames(), ", "))
		result.Tables = append(result.Tables, catalogdb.TableResult{
			Name:               table.Name,
			Path:               sources[i].Path,
			Rows:               len(table.Rows),
			Columns:            table.Columns,
			Checksum:           table.Checksum,
			NormalizedChecksum: table.NormalizedChecksum,
		})
	}

	for _, idx := range s.indexes {
		if err := store.CreateIndex(ctx, idx); err != nil {
			return nil, fmt.Errorf("failed to create index %s on %s(%s): %w", idx.Name, idx.Table, idx.Column, err)
		}
		s.logger.Verbose("Created index %s on %s(%s)", idx.Name, idx.Table, idx.Column)
		result.Indexes = append(result.Indexes, idx)
	}

	return result, nil
}

// readSources materializes every source in order, stopping at the first failure.
func (s *LoaderService) readSources(sources []catalogdb.TableSource) ([]*catalogdb.Table, error) {
	tables := make([]*catalogdb.Table, 0, len(sources))
	for _, src := range sources {
		s.logger.Verbose("Reading %s from %s", src.Name, src.Path)
		table, err := s.reader.ReadTable(src)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", src.Name, err)
		}
		if table.Checksum != "" {
			s.logger.Verbose("  %d rows, sha256 %s (normalized %s)", len(table.Rows), table.Checksum, table.NormalizedChecksum)
		}
		tables = append(tables, table)
	}
	return tables, nil
}
