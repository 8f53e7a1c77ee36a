package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/moviesite/internal/config"
)

func TestServerTimeoutsCoverUploads(t *testing.T) {
	srv := newServer(&config.Config{Port: "5000"}, http.NotFoundHandler())

	assert.Equal(t, ":5000", srv.Addr)
	assert.NotZero(t, srv.ReadHeaderTimeout)
	// 写超时包含读取请求体的时间，不能短于读超时
	assert.GreaterOrEqual(t, srv.WriteTimeout, srv.ReadTimeout)
}

func TestNewStorageRejectsUnknownDriver(t *testing.T) {
	_, err := newStorage(&config.Config{StorageDriver: "ftp"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ftp")

	store, err := newStorage(&config.Config{StorageDriver: "local", UploadDir: t.TempDir()})
	require.NoError(t, err)
	assert.NotNil(t, store)
}
