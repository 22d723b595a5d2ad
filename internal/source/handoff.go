package source

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/example/annotateshot/internal/storage"
)

// ErrNoHandoff is returned when no captured image is waiting.
var ErrNoHandoff = errors.New("no captured image waiting")

// HandoffStore is the storage used by the capture handoff.
type HandoffStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Handoff is a captured image left for the editor by another process.
type Handoff struct {
	Image image.Image
	// Source describes where the capture came from, usually a page URL.
	Source string
}

// PutHandoff leaves img for the next TakeHandoff call.
func PutHandoff(ctx context.Context, st HandoffStore, img image.Image, src string) error {
	dataURL, err := EncodeDataURL(img)
	if err != nil {
		return err
	}
	if err := st.Set(ctx, storage.KeyCapturedImage, dataURL); err != nil {
		return err
	}
	return st.Set(ctx, storage.KeyImageSource, src)
}

// TakeHandoff reads and clears the captured image key pair. The keys are
// cleared even when the image fails to decode so a bad capture is not
// retried forever.
func TakeHandoff(ctx context.Context, st HandoffStore) (Handoff, error) {
	dataURL, err := st.Get(ctx, storage.KeyCapturedImage)
	if errors.Is(err, storage.ErrNotFound) {
		return Handoff{}, ErrNoHandoff
	}
	if err != nil {
		return Handoff{}, err
	}
	src, err := st.Get(ctx, storage.KeyImageSource)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return Handoff{}, err
	}
	for _, k := range []string{storage.KeyCapturedImage, storage.KeyImageSource} {
		if err := st.Delete(ctx, k); err != nil {
			return Handoff{}, fmt.Errorf("clear handoff: %w", err)
		}
	}
	img, err := DecodeDataURL(dataURL)
	if err != nil {
		return Handoff{}, fmt.Errorf("captured image: %w", err)
	}
	return Handoff{Image: img, Source: src}, nil
}
