package memory

import (
	"context"
	"testing"

	"github.com/sheikh-saqib/profit-distribution-tracker/internal/models"
	"github.com/sheikh-saqib/profit-distribution-tracker/internal/models/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisherRecordsEvents(t *testing.T) {
	p := NewPublisher()
	rec := models.Record{Date: models.NewDate(2024, 6, 1)}

	require.NoError(t, p.Publish(context.Background(), events.NewRecordAppended(rec, 1)))
	require.NoError(t, p.Publish(context.Background(), events.NewRecordsDeleted([]models.Record{rec}, 0)))

	got := p.Events()
	require.Len(t, got, 2)
	assert.Equal(t, "record_appended", got[0].Name())
	assert.Equal(t, "records_deleted", got[1].Name())
	assert.NotEqual(t, got[0].ID(), got[1].ID())
	assert.NoError(t, p.Close())
}
