// Package clipboard copies annotated images to and pastes screenshots from the
// system clipboard.
package clipboard

import "errors"

// ErrEmpty is returned by ReadImage when the clipboard holds no image.
var ErrEmpty = errors.New("clipboard has no image")

// ErrUnsupported is returned on platforms without clipboard image support.
var ErrUnsupported = errors.New("clipboard images are not supported on this platform")
