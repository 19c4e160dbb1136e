package extract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tablet-ingest/core/database"
	"tablet-ingest/core/serial"
	"tablet-ingest/feature/legacy"
	"tablet-ingest/feature/naming"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var migration = time.Date(2018, 3, 23, 0, 0, 0, 0, time.UTC)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	mock.ExpectQuery(`select sqlite_version\(\)`).
		WillReturnRows(sqlmock.NewRows([]string{"sqlite_version()"}).AddRow("3.45.1"))

	gormDB, err := gorm.Open(sqlite.Dialector{Conn: db}, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}
	return gormDB, mock
}

func newResolver(t *testing.T, policy legacy.Policy) legacy.Resolver {
	t.Helper()
	m, err := legacy.New([][2]string{{"80a589aef1ef", "5A29000653"}}, policy)
	require.NoError(t, err)
	return legacy.Resolver{Mapping: m, Migration: migration}
}

func writeSessionDB(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)

	db, err := database.Open(path, database.Config{})
	require.NoError(t, err)
	for _, stmt := range []string{
		"CREATE TABLE units (unitid INTEGER, config TEXT, params TEXT)",
		"CREATE TABLE unitinstances (unitid INTEGER, startTime INTEGER, endTime INTEGER)",
		"INSERT INTO units VALUES (3191, 'oc-reading/books/x-mamba', ''), (4001, 'oc-video', 'video=Kuosha mikono')",
		"INSERT INTO unitinstances VALUES (3191, 1544509669, 1544509738), (4001, 1544509800, NULL), (3191, 1544509900, 1544509950)",
	} {
		require.NoError(t, db.Exec(stmt).Error)
	}
	require.NoError(t, database.Close(db))
	return path
}

func dbSource(t *testing.T, path string, period time.Time) Source {
	t.Helper()
	a, err := naming.RuleSet{{
		Name:    "onebillion-db",
		Kind:    naming.KindRelational,
		Strict:  true,
		Legacy:  true,
		Match:   naming.Suffix(".db"),
		Segment: naming.WithoutSuffixLen(23),
	}}.Classify(path, false)
	require.NoError(t, err)
	return Source{Artifact: a, Path: path, Period: period}
}

func TestRelational_Sessions(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT unitid, startTime, endTime FROM unitinstances`).
		WillReturnRows(sqlmock.NewRows([]string{"unitid", "startTime", "endTime"}).
			AddRow(int64(3191), int64(1544509669), int64(1544509738)).
			AddRow(int64(3192), "1544509800", nil))

	r, err := NewRelational(naming.Storybooks, legacy.Resolver{}, database.Config{}, zap.NewNop())
	require.NoError(t, err)

	events, err := r.sessions(context.Background(), db, "5A29000653")
	require.NoError(t, err)
	assert.Equal(t, []Event{
		{Serial: "5A29000653", ContentID: "3191", Start: ptr(1544509669), End: ptr(1544509738)},
		{Serial: "5A29000653", ContentID: "3192", Start: ptr(1544509800)},
	}, events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRelational_SessionsQueryError(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT unitid, startTime, endTime FROM unitinstances`).
		WillReturnError(errors.New("database disk image is malformed"))

	r, err := NewRelational(naming.Videos, legacy.Resolver{}, database.Config{}, zap.NewNop())
	require.NoError(t, err)

	_, err = r.sessions(context.Background(), db, "5A29000653")
	assert.Error(t, err)
}

func TestNewRelational_UnknownContent(t *testing.T) {
	_, err := NewRelational("audio", legacy.Resolver{}, database.Config{}, zap.NewNop())
	assert.Error(t, err)
}

func TestRelational_Extract(t *testing.T) {
	path := writeSessionDB(t, t.TempDir(), "5A29000653_2018_03_19_07_12_18.db")
	period := time.Date(2019, 3, 1, 0, 0, 0, 0, time.UTC)

	books, err := NewRelational(naming.Storybooks, newResolver(t, legacy.PolicySkip), database.Config{ReadOnly: true}, zap.NewNop())
	require.NoError(t, err)
	events, err := books.Extract(context.Background(), dbSource(t, path, period))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "3191", events[0].ContentID)
	assert.Equal(t, serial.Number("5A29000653"), events[0].Serial)

	videos, err := NewRelational(naming.Videos, newResolver(t, legacy.PolicySkip), database.Config{ReadOnly: true}, zap.NewNop())
	require.NoError(t, err)
	events, err = videos.Extract(context.Background(), dbSource(t, path, period))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, Event{Serial: "5A29000653", ContentID: "4001", Start: ptr(1544509800)}, events[0])
}

func TestRelational_LegacyAddress(t *testing.T) {
	dir := t.TempDir()
	mapped := writeSessionDB(t, dir, "80a589aef1ef_2017_12_20_05_03_56.db")
	unmapped := writeSessionDB(t, dir, "80a5896b547_2018_02_28_10_25_09.db")
	before := time.Date(2018, 3, 9, 0, 0, 0, 0, time.UTC)

	t.Run("Mapped", func(t *testing.T) {
		r, err := NewRelational(naming.Storybooks, newResolver(t, legacy.PolicySkip), database.Config{ReadOnly: true}, zap.NewNop())
		require.NoError(t, err)
		events, err := r.Extract(context.Background(), dbSource(t, mapped, before))
		require.NoError(t, err)
		require.NotEmpty(t, events)
		assert.Equal(t, serial.Number("5A29000653"), events[0].Serial)
	})

	t.Run("Unmapped skip policy", func(t *testing.T) {
		r, err := NewRelational(naming.Storybooks, newResolver(t, legacy.PolicySkip), database.Config{ReadOnly: true}, zap.NewNop())
		require.NoError(t, err)
		_, err = r.Extract(context.Background(), dbSource(t, unmapped, before))
		assert.ErrorIs(t, err, ErrSkip)
	})

	t.Run("Unmapped unknown policy", func(t *testing.T) {
		r, err := NewRelational(naming.Storybooks, newResolver(t, legacy.PolicyUnknown), database.Config{ReadOnly: true}, zap.NewNop())
		require.NoError(t, err)
		events, err := r.Extract(context.Background(), dbSource(t, unmapped, before))
		require.NoError(t, err)
		require.NotEmpty(t, events)
		assert.Equal(t, serial.Number(""), events[0].Serial)
	})

	t.Run("Address after migration is fatal", func(t *testing.T) {
		r, err := NewRelational(naming.Storybooks, newResolver(t, legacy.PolicySkip), database.Config{ReadOnly: true}, zap.NewNop())
		require.NoError(t, err)
		_, err = r.Extract(context.Background(), dbSource(t, mapped, migration))
		require.Error(t, err)
		assert.True(t, naming.IsFatal(err))
		assert.ErrorIs(t, err, serial.ErrInvalid)
	})
}

func TestRelational_CorruptFileIsSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "5A29000653_2018_03_19_07_12_18.db")
	require.NoError(t, os.WriteFile(path, []byte("this is not a database file at all, just text"), 0o644))

	r, err := NewRelational(naming.Storybooks, newResolver(t, legacy.PolicySkip), database.Config{ReadOnly: true}, zap.NewNop())
	require.NoError(t, err)

	_, err = r.Extract(context.Background(), dbSource(t, path, migration))
	assert.ErrorIs(t, err, ErrSkip)
}

func TestRelational_SchemaMismatchIsSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "5A29000653_2018_03_19_07_12_18.db")
	db, err := database.Open(path, database.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE units (unitid INTEGER)").Error)
	require.NoError(t, database.Close(db))

	r, err := NewRelational(naming.Storybooks, newResolver(t, legacy.PolicySkip), database.Config{ReadOnly: true}, zap.NewNop())
	require.NoError(t, err)

	_, err = r.Extract(context.Background(), dbSource(t, path, migration))
	assert.ErrorIs(t, err, ErrSkip)
}
