package dispatch

import "github.com/papercomputeco/dify/pkg/event"

// Family identifies which streaming endpoint produced a stream and, with
// it, which event kinds the stream may legitimately carry.
type Family int

const (
	FamilyChat Family = iota + 1
	FamilyChatflow
	FamilyCompletion
	FamilyWorkflow
)

func (f Family) String() string {
	switch f {
	case FamilyChat:
		return "chat"
	case FamilyChatflow:
		return "chatflow"
	case FamilyCompletion:
		return "completion"
	case FamilyWorkflow:
		return "workflow"
	default:
		return "unknown"
	}
}

// Supports reports whether streams of family f route events of kind k.
func (f Family) Supports(k event.Kind) bool {
	if k.IsControl() {
		return f >= FamilyChat && f <= FamilyWorkflow
	}

	switch f {
	case FamilyChat:
		return k.IsMessage()
	case FamilyChatflow:
		return k.IsMessage() || k.IsWorkflow()
	case FamilyCompletion:
		switch k {
		case event.KindMessage, event.KindMessageEnd, event.KindMessageReplace,
			event.KindTTSMessage, event.KindTTSMessageEnd:
			return true
		}
		return false
	case FamilyWorkflow:
		return k == event.KindTTSMessage || k == event.KindTTSMessageEnd || k.IsWorkflow()
	default:
		return false
	}
}
