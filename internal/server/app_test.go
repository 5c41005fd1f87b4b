package server

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/credvault/internal/dbx"
	"github.com/dmitrijs2005/credvault/internal/server/config"
	"github.com/dmitrijs2005/credvault/internal/server/repositories/accounts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepoManager struct {
	migrateErr error
	migrated   bool
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error {
	m.migrated = true
	return m.migrateErr
}

func (m *fakeRepoManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewPostgresRepository(db)
}

func stubOpenDB(t *testing.T, db *sql.DB, err error) {
	t.Helper()
	orig := openDB
	openDB = func(string) (*sql.DB, error) { return db, err }
	t.Cleanup(func() { openDB = orig })
}

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.LogLevel = "error"
	return c
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	return db, mock
}

func TestNewApp_OpenError(t *testing.T) {
	stubOpenDB(t, nil, errors.New("bad dsn"))

	_, err := NewApp(testConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db init error")
}

func TestNewApp_BadRounds(t *testing.T) {
	db, _ := newMockDB(t)
	stubOpenDB(t, db, nil)

	c := testConfig()
	c.PasswordRounds = 1 << 30
	_, err := NewApp(c)
	require.Error(t, err)
}

func TestRun_StopsOnCancel(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectPing()
	mock.ExpectClose()
	stubOpenDB(t, db, nil)

	app, err := NewApp(testConfig())
	require.NoError(t, err)
	rm := &fakeRepoManager{}
	app.repomanager = rm

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(150 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.True(t, rm.migrated)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_PingFails(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectPing().WillReturnError(errors.New("no db"))
	mock.ExpectClose()
	stubOpenDB(t, db, nil)

	app, err := NewApp(testConfig())
	require.NoError(t, err)
	rm := &fakeRepoManager{}
	app.repomanager = rm

	err = app.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db ping")
	assert.False(t, rm.migrated)
}

func TestRun_MigrationsFail(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectPing()
	mock.ExpectClose()
	stubOpenDB(t, db, nil)

	app, err := NewApp(testConfig())
	require.NoError(t, err)
	app.repomanager = &fakeRepoManager{migrateErr: errors.New("boom")}

	err = app.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrations")
}

func TestRun_BadAddress(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectPing()
	mock.ExpectClose()
	stubOpenDB(t, db, nil)

	c := testConfig()
	c.EndpointAddrGRPC = "127.0.0.1:99999"
	app, err := NewApp(c)
	require.NoError(t, err)
	app.repomanager = &fakeRepoManager{}

	require.Error(t, app.Run(context.Background()))
}
