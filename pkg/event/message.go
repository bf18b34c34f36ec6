package event

// Message is an incremental chunk of an answer.
type Message struct {
	MessageEnvelope
	ID                   string   `json:"id,omitempty"`
	Answer               string   `json:"answer"`
	FromVariableSelector []string `json:"from_variable_selector,omitempty"`
}

func (*Message) Kind() Kind { return KindMessage }

// MessageEnd closes a message and reports usage and retrieval sources.
type MessageEnd struct {
	MessageEnvelope
	ID       string   `json:"id,omitempty"`
	Metadata Metadata `json:"metadata"`
}

func (*MessageEnd) Kind() Kind { return KindMessageEnd }

// Metadata is attached to message_end frames.
type Metadata struct {
	Usage              *Usage              `json:"usage,omitempty"`
	RetrieverResources []RetrieverResource `json:"retriever_resources,omitempty"`
}

// Usage reports token accounting for one message. Prices are decimal strings.
type Usage struct {
	PromptTokens        int     `json:"prompt_tokens"`
	PromptUnitPrice     string  `json:"prompt_unit_price,omitempty"`
	PromptPriceUnit     string  `json:"prompt_price_unit,omitempty"`
	PromptPrice         string  `json:"prompt_price,omitempty"`
	CompletionTokens    int     `json:"completion_tokens"`
	CompletionUnitPrice string  `json:"completion_unit_price,omitempty"`
	CompletionPriceUnit string  `json:"completion_price_unit,omitempty"`
	CompletionPrice     string  `json:"completion_price,omitempty"`
	TotalTokens         int     `json:"total_tokens"`
	TotalPrice          string  `json:"total_price,omitempty"`
	Currency            string  `json:"currency,omitempty"`
	Latency             float64 `json:"latency,omitempty"`
}

// RetrieverResource is a knowledge-base segment that contributed to an answer.
type RetrieverResource struct {
	Position     int     `json:"position"`
	DatasetID    string  `json:"dataset_id,omitempty"`
	DatasetName  string  `json:"dataset_name,omitempty"`
	DocumentID   string  `json:"document_id,omitempty"`
	DocumentName string  `json:"document_name,omitempty"`
	SegmentID    string  `json:"segment_id,omitempty"`
	Score        float64 `json:"score,omitempty"`
	Content      string  `json:"content,omitempty"`
}

// MessageFile announces a file produced while answering, usually an image
// from a tool call.
type MessageFile struct {
	MessageEnvelope
	ID        string `json:"id,omitempty"`
	Type      string `json:"type,omitempty"`
	BelongsTo string `json:"belongs_to,omitempty"`
	URL       string `json:"url,omitempty"`
}

func (*MessageFile) Kind() Kind { return KindMessageFile }

// TTSMessage carries a base64 encoded chunk of synthesized speech.
type TTSMessage struct {
	MessageEnvelope
	Audio string `json:"audio,omitempty"`
}

func (*TTSMessage) Kind() Kind { return KindTTSMessage }

// TTSMessageEnd marks the end of synthesized speech for a message.
type TTSMessageEnd struct {
	MessageEnvelope
	Audio string `json:"audio,omitempty"`
}

func (*TTSMessageEnd) Kind() Kind { return KindTTSMessageEnd }

// MessageReplace replaces the answer streamed so far, typically after
// content moderation.
type MessageReplace struct {
	MessageEnvelope
	Answer string `json:"answer"`
}

func (*MessageReplace) Kind() Kind { return KindMessageReplace }

// AgentMessage is an answer chunk produced in agent mode.
type AgentMessage struct {
	MessageEnvelope
	ID     string `json:"id,omitempty"`
	Answer string `json:"answer"`
}

func (*AgentMessage) Kind() Kind { return KindAgentMessage }

// AgentThought is one reasoning step of an agent, including any tool call.
type AgentThought struct {
	MessageEnvelope
	ID           string   `json:"id,omitempty"`
	Position     int      `json:"position"`
	Thought      string   `json:"thought,omitempty"`
	Observation  string   `json:"observation,omitempty"`
	Tool         string   `json:"tool,omitempty"`
	ToolInput    string   `json:"tool_input,omitempty"`
	MessageFiles []string `json:"message_files,omitempty"`
}

func (*AgentThought) Kind() Kind { return KindAgentThought }
