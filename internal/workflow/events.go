package workflow

// EventKind describes what changed.
type EventKind int

const (
	EventStateChanged EventKind = iota
	EventMessageAppended
	EventMessageRemoved
	EventPanelChanged
	EventSessionChanged
	EventSettingsChanged
	EventSettingsOverlay
	EventContextChanged
)

func (k EventKind) String() string {
	switch k {
	case EventStateChanged:
		return "state"
	case EventMessageAppended:
		return "message-appended"
	case EventMessageRemoved:
		return "message-removed"
	case EventPanelChanged:
		return "panel"
	case EventSessionChanged:
		return "session"
	case EventSettingsChanged:
		return "settings"
	case EventSettingsOverlay:
		return "settings-overlay"
	case EventContextChanged:
		return "context"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers after every change.
type Event struct {
	Kind  EventKind
	State State
	// Message is set for message events.
	Message *Message
}

// Subscribe registers fn to receive events. Subscribers run synchronously
// on the caller's goroutine and must not call back into the controller.
func (c *Controller) Subscribe(fn func(Event)) {
	c.subscribers = append(c.subscribers, fn)
}

func (c *Controller) emit(kind EventKind, msg *Message) {
	ev := Event{Kind: kind, State: c.state, Message: msg}
	for _, fn := range c.subscribers {
		fn(ev)
	}
}
