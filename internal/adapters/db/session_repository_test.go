package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/barstock/internal/core/ports"
)

func TestNormalizeListParams(t *testing.T) {
	tests := []struct {
		name     string
		in       ports.HistoryListParams
		wantPage int
		wantSize int
	}{
		{name: "defaults", in: ports.HistoryListParams{}, wantPage: 1, wantSize: defaultPageSize},
		{name: "negative_page", in: ports.HistoryListParams{Page: -2, PageSize: 5}, wantPage: 1, wantSize: 5},
		{name: "oversized_page", in: ports.HistoryListParams{Page: 3, PageSize: 1000}, wantPage: 3, wantSize: maxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeListParams(tt.in)
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantSize, got.PageSize)
		})
	}
}

func TestBuildListQuery(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("no_filters", func(t *testing.T) {
		sql, args, err := buildListQuery(normalizeListParams(ports.HistoryListParams{})).ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, "FROM inventory_sessions")
		assert.Contains(t, sql, "ORDER BY completed_date DESC, id")
		assert.Contains(t, sql, "LIMIT 20 OFFSET 0")
		assert.NotContains(t, sql, "WHERE")
		assert.Empty(t, args)
	})

	t.Run("date_range_and_offset", func(t *testing.T) {
		params := normalizeListParams(ports.HistoryListParams{From: &from, To: &to, Page: 3, PageSize: 10})
		sql, args, err := buildListQuery(params).ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, "completed_date >= $1")
		assert.Contains(t, sql, "completed_date < $2")
		assert.Contains(t, sql, "LIMIT 10 OFFSET 20")
		assert.Equal(t, []interface{}{from, to}, args)
	})
}

func TestBuildCountQuery(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	sql, args, err := buildCountQuery(ports.HistoryListParams{From: &from}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM inventory_sessions WHERE completed_date >= $1", sql)
	assert.Equal(t, []interface{}{from}, args)
}

func TestNullTime(t *testing.T) {
	assert.Nil(t, nullTime(time.Time{}))

	now := time.Now()
	got := nullTime(now)
	require.NotNil(t, got)
	assert.True(t, now.Equal(*got))
}
