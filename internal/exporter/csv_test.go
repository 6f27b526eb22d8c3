package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salescli/internal/config"
	"salescli/pkg/contracts/domain"
)

func testPaths(t *testing.T) *config.Paths {
	t.Helper()
	dir := t.TempDir()
	return &config.Paths{
		DataDir:   filepath.Join(dir, "data"),
		OutputDir: filepath.Join(dir, "output"),
		LogsDir:   filepath.Join(dir, "logs"),
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	content := strings.TrimPrefix(string(raw), "\xEF\xBB\xBF")
	rows, err := csv.NewReader(strings.NewReader(content)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVWriter_WriteSimpleCSV(t *testing.T) {
	paths := testPaths(t)
	w := NewCSVWriter(paths)

	err := w.WriteSimpleCSV("regions.csv", []string{"Region", "Sales"}, [][]string{
		{"North", "1820.00"},
		{"South", "300.00"},
	})
	require.NoError(t, err)

	fullPath := paths.GetOutputPath("regions.csv")
	raw, err := os.ReadFile(fullPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "\xEF\xBB\xBF"), "expected UTF-8 BOM")

	rows := readCSV(t, fullPath)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Region", "Sales"}, rows[0])
	assert.Equal(t, []string{"North", "1820.00"}, rows[1])
}

func TestCSVWriter_WriteTransactions(t *testing.T) {
	paths := testPaths(t)
	w := NewCSVWriter(paths)

	txs := []domain.Transaction{
		{
			TransactionID: "T101", Date: "2024-12-05", ProductID: "P101",
			ProductName: "Gaming Laptop", Quantity: 2, UnitPrice: 1299.99,
			CustomerID: "C501", Region: "North",
		},
		{
			TransactionID: "T102", Date: "2024-12-05", ProductID: "P102",
			ProductName: "Mouse", Quantity: 10, UnitPrice: 20,
			CustomerID: "C502", Region: "South",
		},
	}

	err := w.WriteTransactions("cleaned.csv", txs)
	require.NoError(t, err)

	rows := readCSV(t, paths.GetOutputPath("cleaned.csv"))
	require.Len(t, rows, 3)

	assert.Equal(t, append(domain.FeedColumns(), "TotalSales"), rows[0])
	assert.Equal(t, []string{"T101", "2024-12-05", "P101", "Gaming Laptop", "2", "1299.99", "C501", "North", "2599.98"}, rows[1])
	assert.Equal(t, "200.00", rows[2][8])
}

func TestCSVWriter_WriteTransactions_Empty(t *testing.T) {
	paths := testPaths(t)
	w := NewCSVWriter(paths)

	err := w.WriteTransactions("empty.csv", nil)
	require.NoError(t, err)

	rows := readCSV(t, paths.GetOutputPath("empty.csv"))
	require.Len(t, rows, 1)
	assert.Equal(t, "TransactionID", rows[0][0])
}

func TestCSVWriter_Append(t *testing.T) {
	paths := testPaths(t)
	w := NewCSVWriter(paths)

	require.NoError(t, w.WriteSimpleCSV("log.csv", []string{"A"}, [][]string{{"1"}}))
	require.NoError(t, w.WriteCSV("log.csv", WriteOptions{Records: [][]string{{"2"}}, Append: true}))

	rows := readCSV(t, paths.GetOutputPath("log.csv"))
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"2"}, rows[2])
}

func TestCSVWriter_AbsolutePathBypassesOutputDir(t *testing.T) {
	w := NewCSVWriter(testPaths(t))

	target := filepath.Join(t.TempDir(), "direct.csv")
	require.NoError(t, w.WriteSimpleCSV(target, []string{"A"}, nil))

	_, err := os.Stat(target)
	assert.NoError(t, err)
}
