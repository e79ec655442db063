package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAddListSummaryDelete(t *testing.T) {
	store := filepath.Join(t.TempDir(), "profit_data.csv")
	flags := []string{"--store", "csv", "--store-path", store, "--log-level", "warn"}
	with := func(args ...string) []string { return append(args, flags...) }

	out, err := run(t, with("add", "--date", "2024-06-01", "--pl", "1000", "--distributed", "600")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Record saved (1 records)")

	out, err = run(t, with("add", "--date", "2024-05-31", "--pl", "-200", "--distributed", "0")...)
	require.NoError(t, err)
	assert.Contains(t, out, "(2 records)")

	data, err := os.ReadFile(store)
	require.NoError(t, err)
	assert.Equal(t, "Date,DayProfitLoss,ProfitDistributed\n2024-06-01,1000,600\n2024-05-31,-200,0\n", string(data))

	out, err = run(t, with("list")...)
	require.NoError(t, err)
	assert.Contains(t, out, "| 0 | 01-Jun-2024 | 1000.00 | 600.00 |")
	assert.Contains(t, out, "| 1 | 31-May-2024 | -200.00 | 0.00 |")

	out, err = run(t, with("summary", "--raw")...)
	require.NoError(t, err)
	assert.Contains(t, out, "| Cumulative Loss | 200.00 |")
	assert.Contains(t, out, "| Net Profit | 400.00 |")

	out, err = run(t, with("statement")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Net Profit 400\n")

	out, err = run(t, with("delete", "0")...)
	require.NoError(t, err)
	assert.Contains(t, out, "(1 records left)")

	data, err = os.ReadFile(store)
	require.NoError(t, err)
	assert.Equal(t, "Date,DayProfitLoss,ProfitDistributed\n2024-05-31,-200,0\n", string(data))
}

func TestAddRejectsInvalidInput(t *testing.T) {
	store := filepath.Join(t.TempDir(), "profit_data.csv")

	_, err := run(t, "add", "--date", "2024-06-01", "--pl", "NaN", "--store-path", store)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "day_profit_loss")

	_, err = os.Stat(store)
	assert.True(t, os.IsNotExist(err), "nothing must be written")
}

func TestStatementEmptyLedger(t *testing.T) {
	store := filepath.Join(t.TempDir(), "profit_data.csv")

	_, err := run(t, "statement", "--store-path", store)
	assert.ErrorContains(t, err, "ledger has no records")

	out, err := run(t, "list", "--store-path", store)
	require.NoError(t, err)
	assert.Contains(t, out, "No records yet")
}

func TestDeleteBadIndex(t *testing.T) {
	store := filepath.Join(t.TempDir(), "profit_data.csv")

	_, err := run(t, "delete", "x", "--store-path", store)
	assert.Error(t, err)

	_, err = run(t, "delete", "3", "--store-path", store)
	assert.ErrorContains(t, err, "invalid delete selection")
}

func TestConfigInitValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.yaml")

	out, err := run(t, "config", "init", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created default configuration")

	out, err = run(t, "config", "validate", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid")
	assert.Contains(t, out, "Store: csv profit_data.csv")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "tracker version "+version+"\n", out)
}
