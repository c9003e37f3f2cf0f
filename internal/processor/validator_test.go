package processor

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thanhnp/tron-block-api/internal/models"
)

func ptr[T any](v T) *T { return &v }

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		summary *models.BlockSummary
		want    bool
	}{
		{
			name:    "complete",
			summary: &models.BlockSummary{BlockNumber: ptr(int64(1)), Timestamp: ptr(int64(2)), Hash: ptr("h")},
			want:    true,
		},
		{
			name:    "zero values are present",
			summary: &models.BlockSummary{BlockNumber: ptr(int64(0)), Timestamp: ptr(int64(0)), Hash: ptr("")},
			want:    true,
		},
		{
			name:    "other fields ignored",
			summary: &models.BlockSummary{BlockNumber: ptr(int64(-5)), Timestamp: ptr(int64(1)), Hash: ptr("not-hex"), TransactionCount: -1},
			want:    true,
		},
		{
			name:    "missing block number",
			summary: &models.BlockSummary{Timestamp: ptr(int64(2)), Hash: ptr("h")},
		},
		{
			name:    "missing timestamp",
			summary: &models.BlockSummary{BlockNumber: ptr(int64(1)), Hash: ptr("h")},
		},
		{
			name:    "missing hash",
			summary: &models.BlockSummary{BlockNumber: ptr(int64(1)), Timestamp: ptr(int64(2))},
		},
		{
			name:    "all missing",
			summary: &models.BlockSummary{Producer: "W"},
		},
		{
			name: "nil summary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			p := New(slog.New(slog.NewTextHandler(&logs, nil)))

			assert.Equal(t, tt.want, p.Validate(tt.summary))
			if tt.want {
				assert.Empty(t, logs.String())
			} else {
				assert.Contains(t, logs.String(), "level=ERROR")
			}
		})
	}
}

func TestValidate_LogsMissingFields(t *testing.T) {
	var logs bytes.Buffer
	p := New(slog.New(slog.NewTextHandler(&logs, nil)))

	assert.False(t, p.Validate(&models.BlockSummary{BlockNumber: ptr(int64(1))}))
	assert.Contains(t, logs.String(), "timestamp")
	assert.Contains(t, logs.String(), "hash")
}
