// Package recipe contains utilities for ingesting recipe media.
package recipe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"

	"github.com/matt-dz/cookbox/internal/form"
	"github.com/matt-dz/cookbox/internal/metrics"
)

const (
	SlotImage = "image"
	SlotVideo = "video"
	SlotAudio = "audio"
)

// Slots lists the attachment fields in the order they are written.
var Slots = []string{SlotImage, SlotVideo, SlotAudio}

// IngestionError reports a failed write of the attachment in Slot.
type IngestionError struct {
	Slot string
	Err  error
}

func (e *IngestionError) Error() string {
	return fmt.Sprintf("storing %s: %v", e.Slot, e.Err)
}

func (e *IngestionError) Unwrap() error {
	return e.Err
}

type MediaStore interface {
	WriteMedia(ctx context.Context, originalFilename string, r io.Reader, size int64) (name string, n int64, err error)
	Delete(ctx context.Context, name string) error
}

// Media holds the stored file name of each slot. Absent slots are nil.
type Media struct {
	Image *string
	Video *string
	Audio *string
}

func (m *Media) slot(name string) **string {
	switch name {
	case SlotImage:
		return &m.Image
	case SlotVideo:
		return &m.Video
	case SlotAudio:
		return &m.Audio
	}
	return nil
}

// Names returns the stored file names in slot order.
func (m Media) Names() []string {
	var names []string
	for _, s := range Slots {
		if p := *m.slot(s); p != nil {
			names = append(names, *p)
		}
	}
	return names
}

// IngestMedia writes every attachment present in mf to store. A slot holding
// more than one file fails with form.ErrTooManyFiles before anything is
// written. When a write fails, the files already written for this submission
// are removed and an *IngestionError is returned.
func IngestMedia(ctx context.Context, logger *slog.Logger, store MediaStore, mf *multipart.Form) (Media, error) {
	headers := make(map[string]*multipart.FileHeader, len(Slots))
	for _, s := range Slots {
		fh, err := form.SingleFile(mf, s)
		if errors.Is(err, form.ErrNoFile) {
			continue
		}
		if err != nil {
			return Media{}, err
		}
		headers[s] = fh
	}

	var media Media
	for _, s := range Slots {
		fh, ok := headers[s]
		if !ok {
			continue
		}

		name, n, err := writeFile(ctx, store, fh)
		if err != nil {
			discard(ctx, logger, store, media.Names())
			return Media{}, &IngestionError{Slot: s, Err: err}
		}

		logger.DebugContext(ctx, "stored media file",
			slog.String("slot", s), slog.String("name", name), slog.Int64("bytes", n))
		metrics.RecordMediaStored(s, n)
		*media.slot(s) = &name
	}

	return media, nil
}

func writeFile(ctx context.Context, store MediaStore, fh *multipart.FileHeader) (string, int64, error) {
	f, err := fh.Open()
	if err != nil {
		return "", 0, fmt.Errorf("opening upload: %w", err)
	}
	defer func() { _ = f.Close() }()

	return store.WriteMedia(ctx, fh.Filename, f, fh.Size)
}

func discard(ctx context.Context, logger *slog.Logger, store MediaStore, names []string) {
	for _, name := range names {
		if err := store.Delete(ctx, name); err != nil {
			logger.WarnContext(ctx, "failed to remove media file of failed submission",
				slog.String("name", name), slog.Any("error", err))
		}
	}
}
