//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"fmt"
	"image"
)

var errCGODisabled = fmt.Errorf("%w: built without cgo", ErrUnsupported)

func ensureInit() error {
	if !hasDisplay() {
		return errNoDisplay
	}
	return errCGODisabled
}

// WriteImage always fails without cgo.
func WriteImage(image.Image) error { return ensureInit() }

// ReadImage always fails without cgo.
func ReadImage() (image.Image, error) { return nil, ensureInit() }
