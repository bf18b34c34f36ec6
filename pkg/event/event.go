// Package event holds the tagged data model for every frame a Dify stream
// can carry, along with the decoder that turns frame payloads into values.
package event

// Event is a single decoded stream frame. The kind is a property of the
// concrete type, so it is fixed once a value has been decoded.
type Event interface {
	Kind() Kind
}

// MessageEnvelope carries the identifiers shared by conversational events.
type MessageEnvelope struct {
	TaskID         string `json:"task_id,omitempty"`
	MessageID      string `json:"message_id,omitempty"`
	ConversationID string `json:"conversation_id,omitempty"`
	CreatedAt      int64  `json:"created_at,omitempty"`
}

func (e MessageEnvelope) envelopeTaskID() string { return e.TaskID }

// WorkflowEnvelope carries the identifiers shared by workflow execution
// events. WorkflowID may be empty here and present in the nested data
// instead; use WorkflowIDOf to resolve it.
type WorkflowEnvelope struct {
	TaskID         string `json:"task_id,omitempty"`
	WorkflowRunID  string `json:"workflow_run_id,omitempty"`
	WorkflowID     string `json:"workflow_id,omitempty"`
	ConversationID string `json:"conversation_id,omitempty"`
	MessageID      string `json:"message_id,omitempty"`
	CreatedAt      int64  `json:"created_at,omitempty"`
}

func (e WorkflowEnvelope) envelopeTaskID() string { return e.TaskID }

func (e WorkflowEnvelope) rootWorkflowID() string { return e.WorkflowID }

type taskIDer interface {
	envelopeTaskID() string
}

type rootWorkflowIDer interface {
	rootWorkflowID() string
}

type nestedWorkflowIDer interface {
	nestedWorkflowID() string
}

// TaskIDOf returns the task id carried by ev, or "" for control events.
func TaskIDOf(ev Event) string {
	if t, ok := ev.(taskIDer); ok {
		return t.envelopeTaskID()
	}
	return ""
}

// WorkflowIDOf returns the workflow id of ev. The envelope root wins; the
// nested data location is consulted only when the root is empty. Either,
// both or neither may be present on the wire.
func WorkflowIDOf(ev Event) string {
	if r, ok := ev.(rootWorkflowIDer); ok {
		if id := r.rootWorkflowID(); id != "" {
			return id
		}
	}
	if n, ok := ev.(nestedWorkflowIDer); ok {
		return n.nestedWorkflowID()
	}
	return ""
}
