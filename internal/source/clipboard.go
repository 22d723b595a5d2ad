package source

import (
	"image"

	"github.com/example/annotateshot/internal/clipboard"
)

// Paste returns the image currently on the system clipboard. clipboard.ErrEmpty
// signals that the clipboard holds something other than an image.
func Paste() (image.Image, error) {
	return clipboard.ReadImage()
}
