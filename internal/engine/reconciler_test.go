package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/disasterpulse/datasync/internal/common"
	"github.com/disasterpulse/datasync/internal/reliefweb"
	"github.com/disasterpulse/datasync/internal/repositories/repomanager"
)

func TestSyncDisaster_UpsertsDisasterAndReports(t *testing.T) {
	db, mock := newMockDB(t)

	src := &fakeSource{
		reports: map[int64][]reliefweb.ReportFields{
			100: {
				{ID: 200, Title: "Sitrep #4", Format: []reliefweb.Format{{ID: 10, Name: "Situation Report"}}},
				{ID: 201, Title: "Access Map", Format: []reliefweb.Format{{ID: 12, Name: "Map"}}},
			},
		},
	}

	rec := NewReconciler(db, repomanager.NewPostgresManager(), src,
		NewConstantPolicy(time.Millisecond), testLogger(), []int64{10, 12}, 20)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO disaster`).WillReturnResult(sqlmockResult(1))
	mock.ExpectExec(`INSERT INTO report`).WillReturnResult(sqlmockResult(1))
	mock.ExpectExec(`INSERT INTO report`).WillReturnResult(sqlmockResult(1))
	mock.ExpectExec(`DELETE FROM report WHERE disaster_id = \$1 AND NOT \(id = ANY\(\$2\)\)`).
		WithArgs(int64(100), []int64{200, 201}).
		WillReturnResult(sqlmockResult(0))
	mock.ExpectCommit()

	id, reps, err := rec.SyncDisaster(context.Background(), reliefweb.DisasterFields{
		ID:     100,
		Name:   "Cyclone Alpha",
		Status: "alert",
		Date:   reliefweb.Dates{Created: "2024-03-01T10:00:00Z"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100), id)
	require.Len(t, reps, 2)
	assert.Equal(t, int64(100), reps[0].DisasterID)
	assert.Equal(t, int64(100), reps[1].DisasterID)

	require.NoError(t, mock.ExpectationsWereMet())

	// the report fetch is filtered to this disaster and the configured formats
	require.NotNil(t, src.lastReportReq.Filter)
	conds := src.lastReportReq.Filter.Conditions
	require.Len(t, conds, 2)
	assert.Equal(t, "disaster.id", conds[0].Field)
	assert.Equal(t, int64(100), conds[0].Value)
	assert.Equal(t, "format.id", conds[1].Field)
	assert.Equal(t, []int64{10, 12}, conds[1].Value)
	assert.Equal(t, 20, src.lastReportReq.Limit)
	assert.Equal(t, "full", src.lastReportReq.Profile)
}

func TestSyncDisaster_MissingIDRejected(t *testing.T) {
	db, mock := newMockDB(t)

	rec := NewReconciler(db, repomanager.NewPostgresManager(), &fakeSource{},
		NewConstantPolicy(time.Millisecond), testLogger(), []int64{10, 12}, 20)

	_, _, err := rec.SyncDisaster(context.Background(), reliefweb.DisasterFields{Name: "no id"})
	require.ErrorIs(t, err, common.ErrMissingID)
	require.NoError(t, mock.ExpectationsWereMet(), "no storage access for a rejected record")
}

func TestSyncDisaster_ReportFetchFailureKeepsLocalReports(t *testing.T) {
	db, mock := newMockDB(t)

	src := &fakeSource{reportsErr: errors.New("connection refused")}

	rec := NewReconciler(db, repomanager.NewPostgresManager(), src,
		NewConstantPolicy(time.Millisecond), testLogger(), []int64{10, 12}, 20)

	// the disaster itself is still written; no report rows are touched
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO disaster`).WillReturnResult(sqlmockResult(1))
	mock.ExpectCommit()

	id, reps, err := rec.SyncDisaster(context.Background(), reliefweb.DisasterFields{ID: 100, Status: "alert"})
	require.NoError(t, err)
	assert.Equal(t, int64(100), id)
	assert.Empty(t, reps)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncDisaster_StorageFailureRollsBack(t *testing.T) {
	db, mock := newMockDB(t)

	src := &fakeSource{reports: map[int64][]reliefweb.ReportFields{}}

	rec := NewReconciler(db, repomanager.NewPostgresManager(), src,
		NewConstantPolicy(time.Millisecond), testLogger(), []int64{10, 12}, 20)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO disaster`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, _, err := rec.SyncDisaster(context.Background(), reliefweb.DisasterFields{ID: 100})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncDisaster_EmptyRemoteSetDeletesAllLocalReports(t *testing.T) {
	db, mock := newMockDB(t)

	src := &fakeSource{reports: map[int64][]reliefweb.ReportFields{100: {}}}

	rec := NewReconciler(db, repomanager.NewPostgresManager(), src,
		NewConstantPolicy(time.Millisecond), testLogger(), []int64{10, 12}, 20)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO disaster`).WillReturnResult(sqlmockResult(1))
	mock.ExpectExec(`DELETE FROM report WHERE disaster_id = \$1 AND NOT \(id = ANY\(\$2\)\)`).
		WithArgs(int64(100), []int64{}).
		WillReturnResult(sqlmockResult(3))
	mock.ExpectCommit()

	_, reps, err := rec.SyncDisaster(context.Background(), reliefweb.DisasterFields{ID: 100})
	require.NoError(t, err)
	assert.Empty(t, reps)
	require.NoError(t, mock.ExpectationsWereMet())
}
