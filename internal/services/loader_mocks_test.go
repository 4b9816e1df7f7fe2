package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/vvka-141/catalogdb/pkg/catalogdb"
)

type mockReader struct {
	tables map[string]*catalogdb.Table
	errs   map[string]error
	calls  []string
}

func (m *mockReader) ReadTable(src catalogdb.TableSource) (*catalogdb.Table, error) {
	m.calls = append(m.calls, src.Name)
	if err := m.errs[src.Name]; err != nil {
		return nil, err
	}
	t, ok := m.tables[src.Name]
	if !ok {
		return nil, fmt.Errorf("no fixture for %s: %w", src.Name, catalogdb.ErrMissingFile)
	}
	return t, nil
}

type mockStore struct {
	replaceErr map[string]error
	indexErr   map[string]error
	closeErr   error

	replaced []string
	indexed  []string
	closed   int
}

func (m *mockStore) ReplaceTable(_ context.Context, t *catalogdb.Table) error {
	if err := m.replaceErr[t.Name]; err != nil {
		return err
	}
	m.replaced = append(m.replaced, t.Name)
	return nil
}

func (m *mockStore) CreateIndex(_ context.Context, idx catalogdb.IndexSpec) error {
	if err := m.indexErr[idx.Name]; err != nil {
		return err
	}
	m.indexed = append(m.indexed, idx.Name)
	return nil
}

func (m *mockStore) Close() error {
	m.closed++
	return m.closeErr
}

// openerFor returns a StoreOpener that hands out store and records the call.
func openerFor(store *mockStore, openErr error, opened *[]string) catalogdb.StoreOpener {
	return func(_ context.Context, opts catalogdb.StoreOptions) (catalogdb.Store, error) {
		if opened != nil {
			*opened = append(*opened, opts.Driver+":"+opts.Path)
		}
		if openErr != nil {
			return nil, openErr
		}
		return store, nil
	}
}

type mockLogger struct {
	mu       sync.Mutex
	messages []string
}

func (m *mockLogger) Verbose(format string, args ...interface{}) { m.add("V", format, args) }
func (m *mockLogger) Info(format string, args ...interface{})    { m.add("I", format, args) }
func (m *mockLogger) Error(format string, args ...interface{})   { m.add("E", format, args) }

func (m *mockLogger) add(level, format string, args []interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, level+" "+fmt.Sprintf(format, args...))
}

func fixtureTable(name string, columns ...string) *catalogdb.Table {
	cols := make([]catalogdb.Column, len(columns))
	row := make([]any, len(columns))
	for i, c := range columns {
		cols[i] = catalogdb.Column{Name: c, Type: catalogdb.ColumnInteger}
		row[i] = int64(i + 1)
	}
	return &catalogdb.Table{Name: name, Columns: cols, Rows: [][]any{row}, Checksum: "sum-" + name, NormalizedChecksum: "norm-" + name}
}

func defaultFixtures() map[string]*catalogdb.Table {
	return map[string]*catalogdb.Table{
		catalogdb.TableItems:   fixtureTable(catalogdb.TableItems, "itemId", "name"),
		catalogdb.TableReviews: fixtureTable(catalogdb.TableReviews, "itemId", "userId", "rating"),
		catalogdb.TableUsers:   fixtureTable(catalogdb.TableUsers, "userId"),
	}
}
