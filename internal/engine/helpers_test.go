package engine

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"log/slog"
	"os"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/disasterpulse/datasync/internal/logging"
	"github.com/disasterpulse/datasync/internal/reliefweb"
)

// sliceConverter lets mock expectations carry []int64 args, which the pgx
// driver encodes natively in production.
type sliceConverter struct{}

func (sliceConverter) ConvertValue(v any) (driver.Value, error) {
	if _, ok := v.([]int64); ok {
		return v, nil
	}
	return driver.DefaultParameterConverter.ConvertValue(v)
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp),
		sqlmock.ValueConverterOption(sliceConverter{}),
	)
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func sqlmockResult(rows int64) driver.Result {
	return sqlmock.NewResult(0, rows)
}

func testLogger() logging.Logger {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 1})
	return logging.NewSlogLogger(slog.New(h))
}

// fakeSource is an in-memory SourceClient.
type fakeSource struct {
	disasters    []reliefweb.DisasterFields
	disastersErr error

	reports    map[int64][]reliefweb.ReportFields
	reportsErr error

	lastDisasterReq reliefweb.Request
	lastReportReq   reliefweb.Request
}

func (f *fakeSource) Disasters(ctx context.Context, req reliefweb.Request) ([]reliefweb.DisasterFields, error) {
	f.lastDisasterReq = req
	if f.disastersErr != nil {
		return nil, f.disastersErr
	}
	return f.disasters, nil
}

func (f *fakeSource) Reports(ctx context.Context, req reliefweb.Request) ([]reliefweb.ReportFields, error) {
	f.lastReportReq = req
	if f.reportsErr != nil {
		return nil, f.reportsErr
	}
	id, _ := req.Filter.Conditions[0].Value.(int64)
	return f.reports[id], nil
}

// recordingDispatcher notes which disasters enrichment was requested for.
type recordingDispatcher struct {
	dispatched []int64
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, disasterID int64) {
	d.dispatched = append(d.dispatched, disasterID)
}
