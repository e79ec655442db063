package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sheikh-saqib/profit-distribution-tracker/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, contents string) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "profit_data.csv")
	if contents != "" {
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	}
	return NewStore(path)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, "")
	l, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, l.IsEmpty())
}

func TestLoadZeroByteAndHeaderOnly(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, "")
	require.NoError(t, os.WriteFile(s.Path(), nil, 0o644))
	l, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, l.IsEmpty())

	s = newTestStore(t, "Date,DayProfitLoss,ProfitDistributed\n")
	l, err = s.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, l.IsEmpty())
}

func TestLoadLegacyFormats(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, "\ufeffDate,DayProfitLoss,ProfitDistributed\n"+
		"2024-06-01,1000.0,600.0\n"+
		"2024-06-02 00:00:00,-250.5,0.0\n")

	l, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, l.Len())

	assert.Equal(t, models.NewDate(2024, time.June, 1), l.Records[0].Date)
	assert.True(t, l.Records[0].DayProfitLoss.Equal(decimal.NewFromInt(1000)))
	assert.True(t, l.Records[1].DayProfitLoss.Equal(decimal.RequireFromString("-250.5")))
}

func TestLoadCorrupt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		contents string
		line     int
	}{
		{"wrong header", "date,pl,dist\n2024-06-01,1,1\n", 1},
		{"missing column", "Date,DayProfitLoss,ProfitDistributed\n2024-06-01,1\n", 2},
		{"bad date", "Date,DayProfitLoss,ProfitDistributed\n2024-06-01,1,1\nJune 2nd,1,1\n", 3},
		{"bad amount", "Date,DayProfitLoss,ProfitDistributed\n2024-06-01,abc,1\n", 2},
		{"empty amount", "Date,DayProfitLoss,ProfitDistributed\n2024-06-01,1,\n", 2},
		{"huge exponent", "Date,DayProfitLoss,ProfitDistributed\n2024-06-01,1,1\n2024-06-02,1e300000000,0\n", 3},
		{"too precise", "Date,DayProfitLoss,ProfitDistributed\n2024-06-01,1,0.0000000000000000000001\n", 2},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestStore(t, tt.contents)
			_, err := s.Load(context.Background())
			require.Error(t, err)

			var corrupt *models.StoreCorruptError
			require.ErrorAs(t, err, &corrupt)
			assert.Equal(t, s.Path(), corrupt.Location)
			assert.Equal(t, tt.line, corrupt.Line)
		})
	}
}

func TestPersistFormat(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, "")
	l := models.Ledger{Records: []models.Record{
		{Date: models.NewDate(2024, 6, 2), DayProfitLoss: decimal.RequireFromString("-12.50"), ProfitDistributed: decimal.Zero},
		{Date: models.NewDate(2024, 6, 1), DayProfitLoss: decimal.NewFromInt(1000), ProfitDistributed: decimal.NewFromInt(600)},
	}}

	require.NoError(t, s.Persist(context.Background(), l))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	want := "Date,DayProfitLoss,ProfitDistributed\n" +
		"2024-06-02,-12.5,0\n" +
		"2024-06-01,1000,600\n"
	assert.Equal(t, want, string(data))

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestPersistLoadIdempotent(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, "Date,DayProfitLoss,ProfitDistributed\n"+
		"2024-06-01,1000.00,600.0\n"+
		"2024-05-31,-3.14159,0\n")
	ctx := context.Background()

	l, err := s.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Persist(ctx, l))
	first, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	l, err = s.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Persist(ctx, l))
	second, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	assert.Equal(t, first, second)

	reloaded, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, reloaded.Len())
	assert.True(t, reloaded.Records[1].DayProfitLoss.Equal(decimal.RequireFromString("-3.14159")))
}

func TestPersistFailureKeepsPreviousFile(t *testing.T) {
	t.Parallel()

	original := "Date,DayProfitLoss,ProfitDistributed\n2024-06-01,1,1\n"
	s := newTestStore(t, original)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.Persist(ctx, models.Ledger{})
	require.Error(t, err)

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, original, string(data))

	missing := NewStore(filepath.Join(t.TempDir(), "no-such-dir", "profit_data.csv"))
	assert.Error(t, missing.Persist(context.Background(), models.Ledger{}))
}

func TestPersistEncodeFailureKeepsPreviousFile(t *testing.T) {
	t.Parallel()

	original := "Date,DayProfitLoss,ProfitDistributed\n2024-06-01,1,1\n"
	s := newTestStore(t, original)

	// The first record is written to the temp file before the second fails.
	l := models.Ledger{Records: []models.Record{
		{Date: models.NewDate(2024, 6, 2), DayProfitLoss: decimal.NewFromInt(5), ProfitDistributed: decimal.Zero},
		{Date: models.NewDate(2024, 6, 3), DayProfitLoss: decimal.New(1, 300000000), ProfitDistributed: decimal.Zero},
	}}
	err := s.Persist(context.Background(), l)
	require.Error(t, err)
	var invalid *models.InvalidRecordError
	assert.ErrorAs(t, err, &invalid)

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, original, string(data))

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must be removed")
}
