//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

import "image"

// WriteImage is not available on this platform.
func WriteImage(image.Image) error { return ErrUnsupported }

// ReadImage is not available on this platform.
func ReadImage() (image.Image, error) { return nil, ErrUnsupported }
