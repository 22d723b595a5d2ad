// Package platform delivers desktop notifications on each operating system.
package platform

// AppName identifies the sender to the notification service.
const AppName = "AnnotateShot"

// Options configures how a notification is displayed.
type Options struct {
	// IconPath is an image shown with the notification where supported.
	IconPath string
	// TimeoutMillis is how long the notification stays visible; zero means
	// five seconds.
	TimeoutMillis int
}

func (o Options) timeout() int {
	if o.TimeoutMillis <= 0 {
		return 5000
	}
	return o.TimeoutMillis
}

// desktopEntry names the .desktop file notification servers use to group
// messages from this tool.
const desktopEntry = "annotateshot"

// hints returns the freedesktop notification hints for o. Confirmations use
// low urgency and carry the saved image or crop preview as image-path.
func (o Options) hints() map[string]any {
	h := map[string]any{
		"desktop-entry": desktopEntry,
		"urgency":       byte(0),
	}
	if o.IconPath != "" {
		h["image-path"] = o.IconPath
	}
	return h
}
