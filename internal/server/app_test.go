package server

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/ledgersync/internal/logging"
	"github.com/dmitrijs2005/ledgersync/internal/server/config"
	"github.com/dmitrijs2005/ledgersync/internal/server/documents"
	"github.com/dmitrijs2005/ledgersync/internal/server/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrGRPC = "127.0.0.1:0"
	return c
}

type nopS3 struct{ documents.S3API }

func TestNewApp_MemoryBackendRunsUntilCancel(t *testing.T) {
	app, err := newApp(context.Background(), testConfig(), logging.Nop())
	require.NoError(t, err)
	defer app.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_ReturnsServerError(t *testing.T) {
	c := testConfig()
	c.EndpointAddrGRPC = "bad::address::"
	app, err := newApp(context.Background(), c, logging.Nop())
	require.NoError(t, err)

	err = app.Run(context.Background())
	assert.Error(t, err)
}

func TestNewApp_RejectsInvalidConfig(t *testing.T) {
	c := testConfig()
	c.StorageBackend = "floppy"

	_, err := newApp(context.Background(), c, logging.Nop())
	assert.ErrorContains(t, err, "config error")
}

func TestNewApp_PostgresOpenError(t *testing.T) {
	orig := openPostgres
	t.Cleanup(func() { openPostgres = orig })

	var gotDSN string
	openPostgres = func(_ context.Context, dsn string) (*sql.DB, error) {
		gotDSN = dsn
		return nil, errors.New("refused")
	}

	c := testConfig()
	c.StorageBackend = config.StoragePostgres
	c.DatabaseDSN = "postgres://x"

	_, err := newApp(context.Background(), c, logging.Nop())
	assert.ErrorContains(t, err, "db init error: refused")
	assert.Equal(t, "postgres://x", gotDSN)
}

func TestNewApp_S3BackendUsesConfig(t *testing.T) {
	orig := newS3Client
	t.Cleanup(func() { newS3Client = orig })

	var got documents.S3Config
	newS3Client = func(_ context.Context, c documents.S3Config) (documents.S3API, error) {
		got = c
		return nopS3{}, nil
	}

	c := testConfig()
	c.StorageBackend = config.StorageS3

	app, err := newApp(context.Background(), c, logging.Nop())
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, documents.S3Config{
		Region:       c.S3Region,
		AccessKey:    c.S3RootUser,
		SecretKey:    c.S3RootPassword,
		BaseEndpoint: c.S3BaseEndpoint,
		Bucket:       c.S3Bucket,
	}, got)
}

func TestNewApp_S3Error(t *testing.T) {
	orig := newS3Client
	t.Cleanup(func() { newS3Client = orig })
	newS3Client = func(context.Context, documents.S3Config) (documents.S3API, error) {
		return nil, errors.New("no creds")
	}

	c := testConfig()
	c.StorageBackend = config.StorageS3

	_, err := newApp(context.Background(), c, logging.Nop())
	assert.ErrorContains(t, err, "s3 init error: no creds")
}

func TestNewApp_RedisError(t *testing.T) {
	orig := newRedis
	t.Cleanup(func() { newRedis = orig })

	var gotAddr string
	newRedis = func(_ context.Context, addr string, _ ...notify.RedisOption) (*notify.Redis, error) {
		gotAddr = addr
		return nil, errors.New("down")
	}

	c := testConfig()
	c.RedisAddr = "redis:6379"

	_, err := newApp(context.Background(), c, logging.Nop())
	assert.ErrorContains(t, err, "redis init error: down")
	assert.Equal(t, "redis:6379", gotAddr)
}

func TestClose_NothingOpen(t *testing.T) {
	app := &App{}
	assert.NoError(t, app.Close())
}
