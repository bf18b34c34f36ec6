package event

// Ping is a keep-alive. It carries no business payload and may arrive either
// as a heartbeat line or as a data frame tagged "ping".
type Ping struct{}

func (*Ping) Kind() Kind { return KindPing }

// Error is an in-band failure reported by the server after streaming began.
type Error struct {
	TaskID    string `json:"task_id,omitempty"`
	MessageID string `json:"message_id,omitempty"`
	Status    int    `json:"status,omitempty"`
	Code      string `json:"code,omitempty"`
	Message   string `json:"message,omitempty"`
}

func (*Error) Kind() Kind { return KindError }

func (e *Error) envelopeTaskID() string { return e.TaskID }
