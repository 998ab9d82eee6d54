// Package notification sends desktop notifications through beeep.
package notification

import (
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/zhubert/cadcopilot/internal/logger"
)

// AppName is the notification title.
const AppName = "CAD Copilot"

var (
	mu     sync.Mutex
	notify = beeep.Notify
)

// SetNotifier replaces the function that delivers notifications.
func SetNotifier(fn func(title, message string, icon any) error) {
	mu.Lock()
	defer mu.Unlock()
	notify = fn
}

// ResetNotifier restores beeep delivery.
func ResetNotifier() {
	SetNotifier(beeep.Notify)
}

// Send sends a desktop notification with the given title and message.
func Send(title, message string) error {
	mu.Lock()
	fn := notify
	mu.Unlock()

	log := logger.WithComponent("notification")
	log.Debug("sending notification", "title", title, "message", message)
	if err := fn(title, message, ""); err != nil {
		log.Warn("failed to send notification", "error", err)
		return err
	}
	return nil
}

// ExecutionFinished reports the outcome of running title in the host.
func ExecutionFinished(title string, success bool) error {
	if title == "" {
		title = "Generated code"
	}
	if success {
		return Send(AppName, title+" ran successfully")
	}
	return Send(AppName, title+" failed")
}
