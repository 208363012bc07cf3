package progress

import "log/slog"

// Priority indicates how urgently an announcement should surface to
// the user.
type Priority string

// Announcement priorities.
const (
	PriorityStatus Priority = "status"
	PriorityAlert  Priority = "alert"
)

// Announcer delivers user-facing status messages. Implementations are
// fire-and-forget: the tracker never waits on delivery and ignores
// failures.
type Announcer interface {
	Announce(message string, priority Priority)
}

// AnnouncerFunc adapts a function to the Announcer interface.
type AnnouncerFunc func(message string, priority Priority)

// Announce calls f.
func (f AnnouncerFunc) Announce(message string, priority Priority) {
	f(message, priority)
}

// NewLogAnnouncer returns an Announcer that writes announcements to the
// given logger: status messages at info level, alerts at warn.
func NewLogAnnouncer(logger *slog.Logger) Announcer {
	l := logger.With("channel", "announce")
	return AnnouncerFunc(func(message string, priority Priority) {
		switch priority {
		case PriorityAlert:
			l.Warn(message)
		default:
			l.Info(message)
		}
	})
}
