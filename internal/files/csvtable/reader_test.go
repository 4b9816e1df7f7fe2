package csvtable

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/catalogdb/internal/checksum"
	"github.com/vvka-141/catalogdb/internal/files/filesystem"
	"github.com/vvka-141/catalogdb/pkg/catalogdb"
)

func TestParse_ItemsExample(t *testing.T) {
	table, err := Parse("items", "items.csv", strings.NewReader("itemId,name\n1,\"Widget\"\n2,Gadget\n"))
	require.NoError(t, err)

	assert.Equal(t, "items", table.Name)
	assert.Equal(t, []catalogdb.Column{
		{Name: "itemId", Type: catalogdb.ColumnInteger},
		{Name: "name", Type: catalogdb.ColumnText},
	}, table.Columns)
	assert.Equal(t, [][]any{
		{int64(1), "Widget"},
		{int64(2), "Gadget"},
	}, table.Rows)
}

func TestParse_MixedTypes(t *testing.T) {
	input := "itemId,price,inStock,note\n1,9.99,true,\n2,5,False,fragile\n"

	table, err := Parse("items", "items.csv", strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []catalogdb.ColumnType{
		catalogdb.ColumnInteger, catalogdb.ColumnReal, catalogdb.ColumnBoolean, catalogdb.ColumnText,
	}, columnTypes(table))
	assert.Equal(t, []any{int64(2), 5.0, false, "fragile"}, table.Rows[1])
	assert.Nil(t, table.Rows[0][3])
}

func TestParse_HeaderOnly(t *testing.T) {
	table, err := Parse("reviews", "reviews.csv", strings.NewReader("itemId,userId,rating\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"itemId", "userId", "rating"}, table.ColumnNames())
	assert.Empty(t, table.Rows)
	for _, c := range table.Columns {
		assert.Equal(t, catalogdb.ColumnText, c.Type)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := Parse("items", "items.csv", strings.NewReader(""))
	require.Error(t, err)
	assert.ErrorIs(t, err, catalogdb.ErrParse)
	assert.Contains(t, err.Error(), "no columns")
}

func TestParse_StripsBOM(t *testing.T) {
	table, err := Parse("users", "users.csv", strings.NewReader("\xEF\xBB\xBFuserId\n100\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"userId"}, table.ColumnNames())
}

func TestParse_CRLF(t *testing.T) {
	table, err := Parse("users", "users.csv", strings.NewReader("userId,name\r\n100,Ann\r\n"))
	require.NoError(t, err)
	assert.Equal(t, [][]any{{int64(100), "Ann"}}, table.Rows)
}

func TestParse_ShortRowPaddedWithNull(t *testing.T) {
	table, err := Parse("reviews", "reviews.csv", strings.NewReader("itemId,userId,rating\n1,100\n"))
	require.NoError(t, err)
	assert.Equal(t, [][]any{{int64(1), int64(100), nil}}, table.Rows)
}

func TestParse_LongRowFails(t *testing.T) {
	_, err := Parse("reviews", "reviews.csv", strings.NewReader("itemId,userId\n1,100\n2,100,extra\n"))
	require.Error(t, err)

	var pe *catalogdb.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 3, pe.Line)
	assert.Equal(t, "reviews.csv", pe.Path)
	assert.ErrorIs(t, err, catalogdb.ErrParse)
}

func TestParse_BareQuoteFails(t *testing.T) {
	_, err := Parse("items", "items.csv", strings.NewReader("itemId,name\n1,Wid\"get\n"))
	require.Error(t, err)

	var pe *catalogdb.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Line)
}

func TestParse_DuplicateColumnFails(t *testing.T) {
	_, err := Parse("items", "items.csv", strings.NewReader("itemId,itemId\n1,2\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, catalogdb.ErrParse)
	assert.Contains(t, err.Error(), "duplicate column")
}

func TestParse_DuplicateHeaderDifferingInCase(t *testing.T) {
	_, err := Parse("items", "items.csv", strings.NewReader("id,name,ID\n1,a,2\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, catalogdb.ErrParse)
	assert.Equal(t, catalogdb.ExitParseError, catalogdb.ExitCodeForError(err))

	var pe *catalogdb.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 1, pe.Line)
	assert.Contains(t, err.Error(), `duplicate column "ID" at positions 1 and 3`)
}

func TestParse_UnnamedColumn(t *testing.T) {
	table, err := Parse("items", "items.csv", strings.NewReader(",itemId\n0,1\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Unnamed: 0", "itemId"}, table.ColumnNames())
}

func TestParse_AmbiguousColumnFails(t *testing.T) {
	_, err := Parse("items", "items.csv", strings.NewReader("itemId,flag\n1,true\n2,0\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, catalogdb.ErrParse)
	assert.Contains(t, err.Error(), "mixes boolean")
}

func TestParse_HeaderNamesVerbatim(t *testing.T) {
	table, err := Parse("items", "items.csv", strings.NewReader("item Id, Name ,\"a,b\"\n1,x,y\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"item Id", " Name ", "a,b"}, table.ColumnNames())
}

func TestReader_ReadTable(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem()
	content := "itemId,name\n1,Widget\n"
	mfs.AddFile("/data/items.csv", content)

	reader := NewReader(mfs, checksum.New())
	table, err := reader.ReadTable(catalogdb.TableSource{Name: "items", Path: "/data/items.csv"})
	require.NoError(t, err)

	assert.Equal(t, "items", table.Name)
	assert.Len(t, table.Rows, 1)
	assert.Equal(t, checksum.New().CalculateRaw([]byte(content)), table.Checksum)
	assert.Equal(t, checksum.New().CalculateNormalized([]byte(content)), table.NormalizedChecksum)
}

func TestReader_ReadTable_NormalizedChecksumIgnoresLineEndings(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem()
	mfs.AddFile("/unix.csv", "itemId,name\n1,Widget\n")
	mfs.AddFile("/windows.csv", "\ufeffitemId,name\r\n1,Widget\r\n")
	reader := NewReader(mfs, checksum.New())

	unix, err := reader.ReadTable(catalogdb.TableSource{Name: "items", Path: "/unix.csv"})
	require.NoError(t, err)
	windows, err := reader.ReadTable(catalogdb.TableSource{Name: "items", Path: "/windows.csv"})
	require.NoError(t, err)

	assert.NotEqual(t, unix.Checksum, windows.Checksum)
	assert.Equal(t, unix.NormalizedChecksum, windows.NormalizedChecksum)
	assert.Equal(t, unix.Rows, windows.Rows)
}

func TestReader_ReadTable_Missing(t *testing.T) {
	reader := NewReader(filesystem.NewMemoryFileSystem(), checksum.New())

	_, err := reader.ReadTable(catalogdb.TableSource{Name: "items", Path: "/data/none.csv"})
	require.Error(t, err)
	assert.ErrorIs(t, err, catalogdb.ErrMissingFile)
	assert.Contains(t, err.Error(), "/data/none.csv")
}

func TestReader_ReadTable_NoPath(t *testing.T) {
	reader := NewReader(filesystem.NewMemoryFileSystem(), checksum.New())

	_, err := reader.ReadTable(catalogdb.TableSource{Name: "users"})
	require.Error(t, err)
	assert.ErrorIs(t, err, catalogdb.ErrMissingFile)
}

func TestReader_ReadTable_Malformed(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem()
	mfs.AddFile("/bad.csv", "a,b\n1,2,3\n")

	_, err := NewReader(mfs, checksum.New()).ReadTable(catalogdb.TableSource{Name: "reviews", Path: "/bad.csv"})
	require.Error(t, err)
	assert.ErrorIs(t, err, catalogdb.ErrParse)
	assert.NotErrorIs(t, err, catalogdb.ErrMissingFile)
}

func TestNewReader_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { NewReader(nil, checksum.New()) })
	assert.Panics(t, func() { NewReader(filesystem.NewMemoryFileSystem(), nil) })
}

func columnTypes(t *catalogdb.Table) []catalogdb.ColumnType {
	out := make([]catalogdb.ColumnType, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Type
	}
	return out
}
