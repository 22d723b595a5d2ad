//go:build linux

package platform

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

// Notify shows a save, copy or crop confirmation through the session bus
// org.freedesktop.Notifications service.
func Notify(title, body string, opts Options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("notify: session bus: %w", err)
	}
	defer conn.Close()

	hints := map[string]dbus.Variant{}
	for k, v := range opts.hints() {
		hints[k] = dbus.MakeVariant(v)
	}
	obj := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.Call("org.freedesktop.Notifications.Notify", 0,
		AppName, uint32(0), opts.IconPath, title, body, []string{}, hints, int32(opts.timeout()))
	if call.Err != nil {
		return fmt.Errorf("notify %q: %w", title, call.Err)
	}
	return nil
}
