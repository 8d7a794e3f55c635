package bucket

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
)

type fakeObjectAPI struct {
	exists     bool
	existsErr  error
	made       []string
	objects    map[string]string
	types      map[string]string
	getErr     error
	removeErr  error
	putErr     error
	removedKey string
}

func (f *fakeObjectAPI) BucketExists(context.Context, string) (bool, error) {
	return f.exists, f.existsErr
}

func (f *fakeObjectAPI) MakeBucket(_ context.Context, name string, _ minio.MakeBucketOptions) error {
	f.made = append(f.made, name)
	return nil
}

func (f *fakeObjectAPI) PutObject(_ context.Context, _, objectName string, reader io.Reader, _ int64,
	opts minio.PutObjectOptions,
) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.objects[objectName] = string(data)
	f.types[objectName] = opts.ContentType
	return minio.UploadInfo{Key: objectName, Size: int64(len(data))}, nil
}

func (f *fakeObjectAPI) GetObject(context.Context, string, string, minio.GetObjectOptions) (*minio.Object, error) {
	return nil, f.getErr
}

func (f *fakeObjectAPI) RemoveObject(_ context.Context, _, objectName string, _ minio.RemoveObjectOptions) error {
	f.removedKey = objectName
	return f.removeErr
}

func newFake() *fakeObjectAPI {
	return &fakeObjectAPI{objects: map[string]string{}, types: map[string]string{}}
}

func TestEnsure(t *testing.T) {
	tests := []struct {
		name     string
		fake     *fakeObjectAPI
		wantMade bool
		wantErr  bool
	}{
		{name: "bucket exists", fake: &fakeObjectAPI{exists: true}},
		{name: "bucket missing", fake: &fakeObjectAPI{}, wantMade: true},
		{name: "lookup fails", fake: &fakeObjectAPI{existsErr: errors.New("unreachable")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Bucket{client: tt.fake, name: "recipes"}
			err := b.ensure(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("ensure() error = %v, wantErr %v", err, tt.wantErr)
			}
			if made := len(tt.fake.made) == 1; made != tt.wantMade {
				t.Fatalf("bucket created = %v, want %v", made, tt.wantMade)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	fake := newFake()
	b := &Bucket{client: fake, name: "recipes"}

	n, err := b.Write(context.Background(), "01jbz6t5m1.png", strings.NewReader("pixels"), 6)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if n != 6 {
		t.Errorf("Write() n = %d, want 6", n)
	}
	if fake.objects["01jbz6t5m1.png"] != "pixels" {
		t.Errorf("object content = %q, want %q", fake.objects["01jbz6t5m1.png"], "pixels")
	}
	if fake.types["01jbz6t5m1.png"] != "image/png" {
		t.Errorf("content type = %q, want image/png", fake.types["01jbz6t5m1.png"])
	}
}

func TestWrite_Error(t *testing.T) {
	fake := newFake()
	fake.putErr = errors.New("access denied")
	b := &Bucket{client: fake, name: "recipes"}

	if _, err := b.Write(context.Background(), "a.mp3", strings.NewReader("x"), 1); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestOpen_NotFound(t *testing.T) {
	fake := newFake()
	fake.getErr = minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404}
	b := &Bucket{client: fake, name: "recipes"}

	_, _, err := b.Open(context.Background(), "missing.png")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Open() error = %v, want fs.ErrNotExist", err)
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name      string
		removeErr error
		wantErr   bool
	}{
		{name: "removed"},
		{name: "already gone", removeErr: minio.ErrorResponse{Code: "NoSuchKey"}},
		{name: "failure", removeErr: minio.ErrorResponse{Code: "AccessDenied", StatusCode: 403}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFake()
			fake.removeErr = tt.removeErr
			b := &Bucket{client: fake, name: "recipes"}

			err := b.Delete(context.Background(), "a.png")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Delete() error = %v, wantErr %v", err, tt.wantErr)
			}
			if fake.removedKey != "a.png" {
				t.Errorf("removed key = %q, want %q", fake.removedKey, "a.png")
			}
		})
	}
}

func TestContentType(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "a.png", want: "image/png"},
		{name: "a.jpg", want: "image/jpeg"},
		{name: "noext", want: "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := contentType(tt.name); got != tt.want {
				t.Errorf("contentType(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}
