package router

import (
	"os"
	"path/filepath"
	"testing"

	"http-server/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirServeReadMissing(t *testing.T) {
	dir := NewDir(t.TempDir())

	response := dir.Serve(getRequest("/files/nope.txt", nil), "nope.txt")

	assert.Equal(t, uint(404), response.Status.Code)
	assert.Empty(t, response.Body)
}

func TestDirServeWriteThenRead(t *testing.T) {
	root := t.TempDir()
	dir := NewDir(root)

	write := &http.Request{
		Method:  http.MethodPost,
		Target:  "/files/a.txt",
		Headers: http.NewHeaders(),
		Body:    []byte("xyz"),
	}
	response := dir.Serve(write, "a.txt")
	require.Equal(t, uint(201), response.Status.Code)

	content, err := os.ReadFile(filepath.Join(root, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "xyz", string(content))

	response = dir.Serve(getRequest("/files/a.txt", nil), "a.txt")
	assert.Equal(t, uint(200), response.Status.Code)
	assert.Equal(t, "application/octet-stream", response.Headers["Content-Type"])
	assert.Equal(t, "xyz", string(response.Body))
}

func TestDirServeWriteOverwrites(t *testing.T) {
	root := t.TempDir()
	dir := NewDir(root)
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("old"), 0o644))

	write := &http.Request{
		Method:  http.MethodPost,
		Target:  "/files/a.txt",
		Headers: http.NewHeaders(),
		Body:    []byte("new"),
	}
	response := dir.Serve(write, "a.txt")
	require.Equal(t, uint(201), response.Status.Code)

	content, err := os.ReadFile(filepath.Join(root, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))
}

func TestDirServeWriteFailure(t *testing.T) {
	dir := NewDir(t.TempDir())

	write := &http.Request{
		Method:  http.MethodPost,
		Target:  "/files/missing-dir/a.txt",
		Headers: http.NewHeaders(),
		Body:    []byte("xyz"),
	}
	response := dir.Serve(write, "missing-dir/a.txt")

	assert.Equal(t, uint(500), response.Status.Code)
}

func TestDirServeEmptyBodyWrite(t *testing.T) {
	root := t.TempDir()
	dir := NewDir(root)

	write := &http.Request{
		Method:  http.MethodPost,
		Target:  "/files/empty.txt",
		Headers: http.NewHeaders(),
	}
	response := dir.Serve(write, "empty.txt")
	require.Equal(t, uint(201), response.Status.Code)

	content, err := os.ReadFile(filepath.Join(root, "empty.txt"))
	require.NoError(t, err)
	assert.Empty(t, content)
}
