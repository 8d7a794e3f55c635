package recipe

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"testing"

	"github.com/matt-dz/cookbox/internal/form"
	"github.com/matt-dz/cookbox/internal/log"
	"github.com/matt-dz/cookbox/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type upload struct {
	field    string
	filename string
	content  string
}

func buildForm(t *testing.T, uploads ...upload) *multipart.Form {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("title", "Soup"); err != nil {
		t.Fatalf("failed to write field: %v", err)
	}
	for _, u := range uploads {
		part, err := w.CreateFormFile(u.field, u.filename)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := io.WriteString(part, u.content); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	mf, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("failed to read form: %v", err)
	}
	t.Cleanup(func() { _ = mf.RemoveAll() })
	return mf
}

type fakeStore struct {
	files   map[string]string
	order   []string
	deleted []string
	failOn  string
}

func newFakeStore() *fakeStore {
	return &fakeStore{files: map[string]string{}}
}

func (s *fakeStore) WriteMedia(_ context.Context, originalFilename string, r io.Reader, _ int64) (string, int64, error) {
	if originalFilename == s.failOn {
		return "", 0, errors.New("no space left on device")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, err
	}
	name := "stored-" + originalFilename
	s.files[name] = string(data)
	s.order = append(s.order, name)
	return name, int64(len(data)), nil
}

func (s *fakeStore) Delete(_ context.Context, name string) error {
	s.deleted = append(s.deleted, name)
	delete(s.files, name)
	return nil
}

func TestIngestMedia(t *testing.T) {
	tests := []struct {
		name      string
		uploads   []upload
		wantImage string
		wantVideo string
		wantAudio string
	}{
		{
			name: "no attachments",
		},
		{
			name:      "image only",
			uploads:   []upload{{field: "image", filename: "a.png", content: "png"}},
			wantImage: "stored-a.png",
		},
		{
			name: "all slots",
			uploads: []upload{
				{field: "audio", filename: "c.mp3", content: "mp3"},
				{field: "image", filename: "a.png", content: "png"},
				{field: "video", filename: "b.mp4", content: "mp4"},
			},
			wantImage: "stored-a.png",
			wantVideo: "stored-b.mp4",
			wantAudio: "stored-c.mp3",
		},
		{
			name: "unknown fields are ignored",
			uploads: []upload{
				{field: "cover", filename: "x.png", content: "png"},
				{field: "audio", filename: "c.mp3", content: "mp3"},
			},
			wantAudio: "stored-c.mp3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			mf := buildForm(t, tt.uploads...)

			media, err := IngestMedia(context.Background(), log.NullLogger(), store, mf)
			if err != nil {
				t.Fatalf("IngestMedia() error = %v", err)
			}

			check := func(slot string, got *string, want string) {
				t.Helper()
				if want == "" {
					if got != nil {
						t.Errorf("%s = %q, want nil", slot, *got)
					}
					return
				}
				if got == nil || *got != want {
					t.Errorf("%s = %v, want %q", slot, got, want)
				}
			}
			check(SlotImage, media.Image, tt.wantImage)
			check(SlotVideo, media.Video, tt.wantVideo)
			check(SlotAudio, media.Audio, tt.wantAudio)

			if len(store.order) != len(media.Names()) {
				t.Errorf("wrote %d files, media references %d", len(store.order), len(media.Names()))
			}
		})
	}
}

func TestIngestMedia_SlotOrder(t *testing.T) {
	store := newFakeStore()
	mf := buildForm(t,
		upload{field: "audio", filename: "c.mp3", content: "mp3"},
		upload{field: "video", filename: "b.mp4", content: "mp4"},
		upload{field: "image", filename: "a.png", content: "png"},
	)

	if _, err := IngestMedia(context.Background(), log.NullLogger(), store, mf); err != nil {
		t.Fatalf("IngestMedia() error = %v", err)
	}

	want := []string{"stored-a.png", "stored-b.mp4", "stored-c.mp3"}
	for i, name := range want {
		if store.order[i] != name {
			t.Fatalf("write order = %v, want %v", store.order, want)
		}
	}
}

func TestIngestMedia_TooManyFiles(t *testing.T) {
	store := newFakeStore()
	mf := buildForm(t,
		upload{field: "image", filename: "a.png", content: "png"},
		upload{field: "video", filename: "b.mp4", content: "mp4"},
		upload{field: "video", filename: "c.mp4", content: "mp4"},
	)

	_, err := IngestMedia(context.Background(), log.NullLogger(), store, mf)
	if !errors.Is(err, form.ErrTooManyFiles) {
		t.Fatalf("IngestMedia() error = %v, want ErrTooManyFiles", err)
	}
	if len(store.order) != 0 {
		t.Fatalf("expected no writes, got %v", store.order)
	}
}

func TestIngestMedia_WriteFailure(t *testing.T) {
	store := newFakeStore()
	store.failOn = "b.mp4"
	mf := buildForm(t,
		upload{field: "image", filename: "a.png", content: "png"},
		upload{field: "video", filename: "b.mp4", content: "mp4"},
		upload{field: "audio", filename: "c.mp3", content: "mp3"},
	)

	_, err := IngestMedia(context.Background(), log.NullLogger(), store, mf)

	var ingestionErr *IngestionError
	if !errors.As(err, &ingestionErr) {
		t.Fatalf("IngestMedia() error = %v, want *IngestionError", err)
	}
	if ingestionErr.Slot != SlotVideo {
		t.Errorf("IngestionError.Slot = %q, want %q", ingestionErr.Slot, SlotVideo)
	}
	if len(store.files) != 0 {
		t.Errorf("expected written files to be discarded, still have %v", store.files)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "stored-a.png" {
		t.Errorf("deleted = %v, want [stored-a.png]", store.deleted)
	}
}

func TestIngestMedia_RecordsMetrics(t *testing.T) {
	before := testutil.ToFloat64(metrics.MediaBytesStored.WithLabelValues(SlotImage))

	mf := buildForm(t, upload{field: "image", filename: "a.png", content: "12345"})
	if _, err := IngestMedia(context.Background(), log.NullLogger(), newFakeStore(), mf); err != nil {
		t.Fatalf("IngestMedia() error = %v", err)
	}

	if got := testutil.ToFloat64(metrics.MediaBytesStored.WithLabelValues(SlotImage)); got != before+5 {
		t.Errorf("bytes counter = %v, want %v", got, before+5)
	}
}
