package coverstore

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "2024"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2024", "cover.png"), pngBytes(t), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not an image"), 0o644))

	store := NewFileStore(dir)
	ctx := context.Background()

	img, err := store.Open(ctx, "2024/cover.png")
	require.NoError(t, err)
	assert.Equal(t, "PNG", img.Type)

	_, err = store.Open(ctx, "missing.png")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Open(ctx, "notes.txt")
	assert.ErrorIs(t, err, ErrUnsupported)

	// traversal stays inside the root
	_, err = store.Open(ctx, "../../etc/passwd")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHTTPStore(t *testing.T) {
	data := pngBytes(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/covers/q1.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	store := NewHTTPStore(srv.URL+"/covers/", srv.Client())
	ctx := context.Background()

	img, err := store.Open(ctx, "q1.png")
	require.NoError(t, err)
	assert.Equal(t, data, img.Data)

	img, err = store.Open(ctx, "/2024/../q1.png")
	require.NoError(t, err)
	assert.Equal(t, "PNG", img.Type)

	_, err = store.Open(ctx, "q2.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHTTPStore_StaysOnBaseURL(t *testing.T) {
	var internalHits atomic.Int32
	internal := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		internalHits.Add(1)
		_, _ = w.Write(pngBytes(t))
	}))
	defer internal.Close()

	var (
		mu    sync.Mutex
		paths []string
	)
	covers := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		http.NotFound(w, r)
	}))
	defer covers.Close()

	store := NewHTTPStore(covers.URL+"/bucket", nil)
	ctx := context.Background()

	for _, id := range []string{
		internal.URL + "/latest/meta-data",
		"http://169.254.169.254/latest/meta-data",
		"//" + internal.Listener.Addr().String() + "/x.png",
		"file:///etc/passwd",
		"",
	} {
		_, err := store.Open(ctx, id)
		assert.ErrorIs(t, err, ErrInvalidID, id)
	}
	assert.Zero(t, internalHits.Load())

	// dot segments cannot climb above the base path
	_, err := store.Open(ctx, "../../admin.png")
	assert.ErrorIs(t, err, ErrNotFound)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"/bucket/admin.png"}, paths)
}

func TestNewStoreFromConfig(t *testing.T) {
	s, err := NewStoreFromConfig("none", "", "")
	require.NoError(t, err)
	assert.Equal(t, "none", s.Name())
	_, err = s.Open(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrDisabled)

	_, err = NewStoreFromConfig("file", "", "")
	assert.Error(t, err)
	_, err = NewStoreFromConfig("http", "", "")
	assert.Error(t, err)
	_, err = NewStoreFromConfig("s3", "", "")
	assert.Error(t, err)

	s, err = NewStoreFromConfig("http", "", "https://cdn.example.com")
	require.NoError(t, err)
	assert.Equal(t, "http", s.Name())
}
