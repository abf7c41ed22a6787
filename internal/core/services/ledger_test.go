package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/barstock/internal/core/domain"
	"github.com/ammerola/barstock/internal/core/services"
)

func TestLedger_NewSession(t *testing.T) {
	ledger, clock := newTestLedger(t)
	s := ledger.Session()
	assert.Equal(t, "session-1", s.ID)
	assert.Equal(t, domain.SessionActive, s.Status)
	assert.Equal(t, clock.Now(), s.StartDate)
	assert.Nil(t, s.CompletedDate)
	assert.Empty(t, s.Records)
}

func TestLedger_GetRecord(t *testing.T) {
	ledger, _ := newTestLedger(t)

	rec := ledger.GetRecord("P1")
	assert.Equal(t, domain.EmptyRecord("P1"), rec)
	assert.Empty(t, ledger.Session().Records, "reading must not create a record")
}

func TestLedger_UpdateRecord(t *testing.T) {
	t.Run("stamps_zero_timestamp", func(t *testing.T) {
		ledger, clock := newTestLedger(t)
		stored, err := ledger.UpdateRecord(domain.InventoryRecord{ProductID: "P1", FullBottles: 1})
		require.NoError(t, err)
		assert.Equal(t, clock.Now(), stored.UpdatedAt)
	})

	t.Run("is_idempotent", func(t *testing.T) {
		ledger, _ := newTestLedger(t)
		rec := domain.InventoryRecord{ProductID: "P1", FullBottles: 3, PartialBottle: 0.25, UpdatedAt: time.Date(2024, 6, 1, 21, 0, 0, 0, time.UTC)}
		_, err := ledger.UpdateRecord(rec)
		require.NoError(t, err)
		once := ledger.Session()
		_, err = ledger.UpdateRecord(rec)
		require.NoError(t, err)
		assert.Equal(t, once.Records, ledger.Session().Records)
	})

	t.Run("replaces_rather_than_adds", func(t *testing.T) {
		ledger, _ := newTestLedger(t)
		_, err := ledger.UpdateRecord(domain.InventoryRecord{ProductID: "P1", FullBottles: 5})
		require.NoError(t, err)
		_, err = ledger.UpdateRecord(domain.InventoryRecord{ProductID: "P1", FullBottles: 2})
		require.NoError(t, err)
		assert.Equal(t, 2, ledger.GetRecord("P1").FullBottles)
	})

	t.Run("timestamp_never_moves_backwards", func(t *testing.T) {
		ledger, _ := newTestLedger(t)
		later := time.Date(2024, 6, 1, 23, 0, 0, 0, time.UTC)
		_, err := ledger.UpdateRecord(domain.InventoryRecord{ProductID: "P1", UpdatedAt: later})
		require.NoError(t, err)
		stored, err := ledger.UpdateRecord(domain.InventoryRecord{ProductID: "P1", FullBottles: 1, UpdatedAt: later.Add(-time.Hour)})
		require.NoError(t, err)
		assert.Equal(t, later, stored.UpdatedAt)
		assert.Equal(t, 1, stored.FullBottles)
	})

	t.Run("rejects_invalid_records", func(t *testing.T) {
		ledger, _ := newTestLedger(t)
		for _, rec := range []domain.InventoryRecord{
			{ProductID: "P1", FullBottles: -1},
			{ProductID: "P1", PartialBottle: -0.5},
			{ProductID: "P1", PartialBottle: 1.01},
			{FullBottles: 1},
		} {
			_, err := ledger.UpdateRecord(rec)
			assert.ErrorIs(t, err, domain.ErrInvalidRecord)
		}
		assert.Empty(t, ledger.Session().Records)
	})

	t.Run("accepts_products_outside_catalog", func(t *testing.T) {
		ledger, _ := newTestLedger(t)
		_, err := ledger.UpdateRecord(domain.InventoryRecord{ProductID: "unknown", FullBottles: 1})
		assert.NoError(t, err)
	})
}

func TestLedger_UpdateRecordIfUnmodified(t *testing.T) {
	ledger, clock := newTestLedger(t)

	first, err := ledger.UpdateRecordIfUnmodified(domain.InventoryRecord{ProductID: "P1", FullBottles: 1}, time.Time{})
	require.NoError(t, err)

	clock.Advance(time.Minute)
	_, err = ledger.UpdateRecordIfUnmodified(domain.InventoryRecord{ProductID: "P1", FullBottles: 2}, time.Time{})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 1, ledger.GetRecord("P1").FullBottles)

	second, err := ledger.UpdateRecordIfUnmodified(domain.InventoryRecord{ProductID: "P1", FullBottles: 2}, first.UpdatedAt)
	require.NoError(t, err)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
}

func TestLedger_Session_IsACopy(t *testing.T) {
	ledger, _ := newTestLedger(t)
	s := ledger.Session()
	s.Records["P1"] = domain.InventoryRecord{ProductID: "P1", FullBottles: 9}
	assert.Empty(t, ledger.Session().Records)
}

func TestLedger_FinishSession(t *testing.T) {
	ledger, clock := newTestLedger(t)
	_, err := ledger.UpdateRecord(domain.InventoryRecord{ProductID: "P1", FullBottles: 2})
	require.NoError(t, err)

	clock.Advance(3 * time.Hour)
	completed := ledger.FinishSession()

	assert.Equal(t, "session-1", completed.ID)
	assert.Equal(t, domain.SessionCompleted, completed.Status)
	require.NotNil(t, completed.CompletedDate)
	assert.Equal(t, clock.Now(), *completed.CompletedDate)
	assert.Len(t, completed.Records, 1)

	next := ledger.Session()
	assert.Equal(t, "session-2", next.ID)
	assert.Equal(t, domain.SessionActive, next.Status)
	assert.Empty(t, next.Records)
	assert.NotEqual(t, completed.ID, next.ID)
}

func TestLedger_Completed_LeavesSessionActive(t *testing.T) {
	ledger, _ := newTestLedger(t)
	completed := ledger.Completed()
	assert.Equal(t, domain.SessionCompleted, completed.Status)
	assert.Equal(t, domain.SessionActive, ledger.Session().Status)
	assert.Equal(t, completed.ID, ledger.Session().ID)
}

func TestLedger_ResetSession(t *testing.T) {
	run := func(prefill bool) *domain.InventorySession {
		ledger, _ := newTestLedger(t)
		if prefill {
			_, err := ledger.UpdateRecord(domain.InventoryRecord{ProductID: "P1", FullBottles: 4})
			require.NoError(t, err)
		}
		return ledger.ResetSession()
	}

	clean, dirty := run(false), run(true)
	assert.Empty(t, dirty.Records)
	assert.Equal(t, clean.Records, dirty.Records)
	assert.Equal(t, clean.Status, dirty.Status)
}

func TestNewLedger_AdoptsSession(t *testing.T) {
	s := &domain.InventorySession{ID: "restored", Status: domain.SessionActive}
	ledger := services.NewLedger(s)
	assert.Equal(t, "restored", ledger.Session().ID)
	assert.NotNil(t, ledger.Session().Records)
}
