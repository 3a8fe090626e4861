package coverstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// MaxImageSize caps how much of a cover image is read
const MaxImageSize = 10 << 20

var (
	// ErrNotFound is returned when the cover id names nothing in the store
	ErrNotFound = errors.New("coverstore: image not found")
	// ErrUnsupported is returned for images that are neither PNG nor JPEG
	ErrUnsupported = errors.New("coverstore: unsupported image type")
	// ErrInvalidID is returned for ids that do not name a path below the store root
	ErrInvalidID = errors.New("coverstore: invalid cover id")
	// ErrDisabled is returned by the none store
	ErrDisabled = errors.New("coverstore: no cover store configured")
)

// Image is a decoded-enough cover: raw bytes plus the fpdf image type
type Image struct {
	Data []byte
	Type string // "PNG" or "JPG"
}

// Store fetches cover images by opaque identifier.
type Store interface {
	// Open returns the image named by id.
	Open(ctx context.Context, id string) (*Image, error)
	// Name identifies the back end in logs.
	Name() string
}

// --- File store (reads from a directory, e.g. ./storage/covers) ---

type fileStore struct {
	root string
}

// NewFileStore creates a store reading images below root
func NewFileStore(root string) Store {
	return &fileStore{root: root}
}

func (s *fileStore) Open(ctx context.Context, id string) (*Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean := filepath.Clean("/" + id)
	if clean == "/" {
		return nil, ErrNotFound
	}
	path := filepath.Join(s.root, clean)

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("coverstore: failed to open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxImageSize))
	if err != nil {
		return nil, fmt.Errorf("coverstore: failed to read %s: %w", path, err)
	}
	return newImage(data)
}

func (s *fileStore) Name() string {
	return "file"
}

// --- HTTP store (fetches from a base URL, e.g. a public bucket) ---

type httpStore struct {
	baseURL string
	client  *http.Client
}

// NewHTTPStore creates a store fetching images relative to baseURL.
// Ids are paths below baseURL; ids carrying a scheme or host are rejected.
func NewHTTPStore(baseURL string, client *http.Client) Store {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &httpStore{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (s *httpStore) resolve(id string) (string, error) {
	u, err := url.Parse(id)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Opaque != "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	clean := path.Clean("/" + u.Path)
	if clean == "/" {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return s.baseURL + (&url.URL{Path: clean}).EscapedPath(), nil
}

func (s *httpStore) Open(ctx context.Context, id string) (*Image, error) {
	target, err := s.resolve(id)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("coverstore: bad cover url %s: %w", target, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("coverstore: failed to fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	case resp.StatusCode >= 300:
		return nil, fmt.Errorf("coverstore: fetching %s returned %s", target, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageSize))
	if err != nil {
		return nil, fmt.Errorf("coverstore: failed to read %s: %w", target, err)
	}
	return newImage(data)
}

func (s *httpStore) Name() string {
	return "http"
}

// --- None store (covers disabled) ---

type noneStore struct{}

// NewNoneStore creates a store that never has any image
func NewNoneStore() Store {
	return noneStore{}
}

func (noneStore) Open(ctx context.Context, id string) (*Image, error) {
	return nil, ErrDisabled
}

func (noneStore) Name() string {
	return "none"
}

// NewStoreFromConfig creates the appropriate Store based on type.
//
//	storeType: "file", "http", or "none"
//	path: root directory for the file store
//	baseURL: prefix for the http store
func NewStoreFromConfig(storeType, path, baseURL string) (Store, error) {
	switch storeType {
	case "file":
		if path == "" {
			return nil, fmt.Errorf("coverstore: path is required for file store type")
		}
		return NewFileStore(path), nil
	case "http":
		if baseURL == "" {
			return nil, fmt.Errorf("coverstore: base URL is required for http store type")
		}
		return NewHTTPStore(baseURL, nil), nil
	case "none", "":
		return NewNoneStore(), nil
	default:
		return nil, fmt.Errorf("coverstore: unknown store type %q (use file, http, or none)", storeType)
	}
}

func newImage(data []byte) (*Image, error) {
	switch http.DetectContentType(data) {
	case "image/png":
		return &Image{Data: data, Type: "PNG"}, nil
	case "image/jpeg":
		return &Image{Data: data, Type: "JPG"}, nil
	default:
		return nil, ErrUnsupported
	}
}
