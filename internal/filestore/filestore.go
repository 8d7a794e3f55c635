// Package filestore names, stores and serves uploaded media files on top of
// a blob backend.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/matt-dz/cookbox/internal/file"
	"github.com/oklog/ulid/v2"
)

const (
	DefaultURLPrefix = "/uploads"
)

// Backend persists blobs by name. Open reports a missing blob with an error
// wrapping fs.ErrNotExist.
type Backend interface {
	Write(ctx context.Context, name string, r io.Reader, size int64) (int64, error)
	Open(ctx context.Context, name string) (io.ReadSeekCloser, time.Time, error)
	Delete(ctx context.Context, name string) error
}

type FileStore struct {
	backend   Backend
	urlPrefix string
}

func New(backend Backend, urlPrefix string) *FileStore {
	prefix := "/" + strings.Trim(urlPrefix, "/")
	if prefix == "/" {
		prefix = DefaultURLPrefix
	}
	return &FileStore{
		backend:   backend,
		urlPrefix: prefix,
	}
}

func (f *FileStore) URLPrefix() string {
	return f.urlPrefix
}

// MediaName returns a fresh file name for an upload called originalFilename:
// a lower-cased ULID followed by the original extension.
func MediaName(originalFilename string) string {
	suffix, _ := file.ExtractSuffix(originalFilename)
	return strings.ToLower(ulid.Make().String()) + suffix
}

// WriteMedia stores r under a fresh name derived from originalFilename.
func (f *FileStore) WriteMedia(ctx context.Context, originalFilename string, r io.Reader, size int64) (name string, n int64, err error) {
	name = MediaName(originalFilename)
	n, err = f.backend.Write(ctx, name, r, size)
	if err != nil {
		return "", n, fmt.Errorf("writing %s: %w", name, err)
	}
	return name, n, nil
}

func (f *FileStore) Delete(ctx context.Context, name string) error {
	return f.backend.Delete(ctx, name)
}

// ResolveURL returns the absolute URL of the stored file name as seen by a
// client that reached the service at scheme://host. A nil name yields nil.
func (f *FileStore) ResolveURL(scheme, host string, name *string) *string {
	if name == nil {
		return nil
	}
	u := fmt.Sprintf("%s://%s%s/%s", scheme, host, f.urlPrefix, url.PathEscape(*name))
	return &u
}

// ServeFile writes the stored file named by the wildcard route parameter.
func (f *FileStore) ServeFile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(name); err == nil {
			name = unescaped
		}
	}
	if name == "" || strings.Contains(name, "/") {
		http.NotFound(w, r)
		return
	}

	rc, modTime, err := f.backend.Open(r.Context(), name)
	if errors.Is(err, fs.ErrNotExist) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	defer func() { _ = rc.Close() }()

	http.ServeContent(w, r, name, modTime, rc)
}
