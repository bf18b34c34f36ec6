package event

// Kind is the discriminant carried in the "event" field of every stream frame.
type Kind string

// Message family kinds.
const (
	KindMessage        Kind = "message"
	KindMessageEnd     Kind = "message_end"
	KindMessageFile    Kind = "message_file"
	KindTTSMessage     Kind = "tts_message"
	KindTTSMessageEnd  Kind = "tts_message_end"
	KindMessageReplace Kind = "message_replace"
	KindAgentMessage   Kind = "agent_message"
	KindAgentThought   Kind = "agent_thought"
)

// Workflow family kinds.
const (
	KindWorkflowStarted    Kind = "workflow_started"
	KindNodeStarted        Kind = "node_started"
	KindNodeFinished       Kind = "node_finished"
	KindWorkflowFinished   Kind = "workflow_finished"
	KindIterationStarted   Kind = "iteration_started"
	KindIterationNext      Kind = "iteration_next"
	KindIterationCompleted Kind = "iteration_completed"
	KindLoopStarted        Kind = "loop_started"
	KindLoopNext           Kind = "loop_next"
	KindLoopCompleted      Kind = "loop_completed"
	KindAgentLog           Kind = "agent_log"
	KindTextChunk          Kind = "text_chunk"
)

// Control kinds.
const (
	KindPing  Kind = "ping"
	KindError Kind = "error"
)

// MessageKinds lists the conversational kinds in wire order of appearance.
var MessageKinds = []Kind{
	KindMessage,
	KindMessageEnd,
	KindMessageFile,
	KindTTSMessage,
	KindTTSMessageEnd,
	KindMessageReplace,
	KindAgentMessage,
	KindAgentThought,
}

// WorkflowKinds lists the workflow execution kinds.
var WorkflowKinds = []Kind{
	KindWorkflowStarted,
	KindNodeStarted,
	KindNodeFinished,
	KindWorkflowFinished,
	KindIterationStarted,
	KindIterationNext,
	KindIterationCompleted,
	KindLoopStarted,
	KindLoopNext,
	KindLoopCompleted,
	KindAgentLog,
	KindTextChunk,
}

// ControlKinds lists the out-of-band kinds every family accepts.
var ControlKinds = []Kind{KindPing, KindError}

// knownKinds is a map for O(1) lookup of recognized kinds
var knownKinds = func() map[Kind]bool {
	m := make(map[Kind]bool, len(MessageKinds)+len(WorkflowKinds)+len(ControlKinds))
	for _, group := range [][]Kind{MessageKinds, WorkflowKinds, ControlKinds} {
		for _, k := range group {
			m[k] = true
		}
	}
	return m
}()

// ParseKind returns the Kind for a wire tag and whether it is recognized.
func ParseKind(tag string) (Kind, bool) {
	k := Kind(tag)
	return k, knownKinds[k]
}

// Known reports whether k is a recognized kind.
func (k Kind) Known() bool {
	return knownKinds[k]
}

// IsMessage reports whether k belongs to the message family.
func (k Kind) IsMessage() bool {
	return contains(MessageKinds, k)
}

// IsWorkflow reports whether k belongs to the workflow family.
func (k Kind) IsWorkflow() bool {
	return contains(WorkflowKinds, k)
}

// IsControl reports whether k is ping or error.
func (k Kind) IsControl() bool {
	return k == KindPing || k == KindError
}

func (k Kind) String() string {
	return string(k)
}

func contains(kinds []Kind, k Kind) bool {
	for _, candidate := range kinds {
		if candidate == k {
			return true
		}
	}
	return false
}
