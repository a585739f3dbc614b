// ABOUTME: Notification collaborator for timer events.
// ABOUTME: Dispatch is fire-and-forget; hosts without notifications get a no-op.
package timer

import (
	"fmt"

	"github.com/fatih/color"
)

// Notification is one user-facing alert. Tag deduplicates repeated alerts
// from the same timer so the host shows at most one.
type Notification struct {
	Title  string
	Body   string
	Tag    string
	Urgent bool
}

// Notifier delivers notifications to the host. Failure to deliver must
// never stop the timer that fired it.
type Notifier interface {
	Notify(n Notification) error
}

// NoopNotifier discards every notification. Used when the host cannot
// show notifications.
type NoopNotifier struct{}

func (NoopNotifier) Notify(Notification) error { return nil }

// ConsoleNotifier prints notifications to the terminal.
type ConsoleNotifier struct{}

func (ConsoleNotifier) Notify(n Notification) error {
	c := color.New(color.FgCyan, color.Bold)
	if n.Urgent {
		c = color.New(color.FgYellow, color.Bold)
	}
	c.Printf("\n🔔 %s\n", n.Title)
	fmt.Printf("   %s\n", n.Body)
	return nil
}
