package event

// WorkflowStarted opens a workflow run.
type WorkflowStarted struct {
	WorkflowEnvelope
	Data WorkflowStartedData `json:"data"`
}

func (*WorkflowStarted) Kind() Kind { return KindWorkflowStarted }

func (e *WorkflowStarted) nestedWorkflowID() string { return e.Data.WorkflowID }

type WorkflowStartedData struct {
	ID             string         `json:"id,omitempty"`
	WorkflowID     string         `json:"workflow_id,omitempty"`
	SequenceNumber int            `json:"sequence_number,omitempty"`
	Inputs         map[string]any `json:"inputs,omitempty"`
	CreatedAt      int64          `json:"created_at,omitempty"`
}

// NodeStarted reports that a node began executing.
type NodeStarted struct {
	WorkflowEnvelope
	Data NodeStartedData `json:"data"`
}

func (*NodeStarted) Kind() Kind { return KindNodeStarted }

type NodeStartedData struct {
	ID                  string         `json:"id,omitempty"`
	NodeID              string         `json:"node_id,omitempty"`
	NodeType            string         `json:"node_type,omitempty"`
	Title               string         `json:"title,omitempty"`
	Index               int            `json:"index,omitempty"`
	PredecessorNodeID   string         `json:"predecessor_node_id,omitempty"`
	Inputs              map[string]any `json:"inputs,omitempty"`
	CreatedAt           int64          `json:"created_at,omitempty"`
	ParallelID          string         `json:"parallel_id,omitempty"`
	ParallelStartNodeID string         `json:"parallel_start_node_id,omitempty"`
	IterationID         string         `json:"iteration_id,omitempty"`
	LoopID              string         `json:"loop_id,omitempty"`
}

// NodeFinished reports the outcome of a node.
type NodeFinished struct {
	WorkflowEnvelope
	Data NodeFinishedData `json:"data"`
}

func (*NodeFinished) Kind() Kind { return KindNodeFinished }

type NodeFinishedData struct {
	ID                  string         `json:"id,omitempty"`
	NodeID              string         `json:"node_id,omitempty"`
	NodeType            string         `json:"node_type,omitempty"`
	Title               string         `json:"title,omitempty"`
	Index               int            `json:"index,omitempty"`
	PredecessorNodeID   string         `json:"predecessor_node_id,omitempty"`
	Inputs              map[string]any `json:"inputs,omitempty"`
	ProcessData         map[string]any `json:"process_data,omitempty"`
	Outputs             map[string]any `json:"outputs,omitempty"`
	Status              string         `json:"status,omitempty"`
	Error               string         `json:"error,omitempty"`
	ElapsedTime         float64        `json:"elapsed_time,omitempty"`
	ExecutionMetadata   map[string]any `json:"execution_metadata,omitempty"`
	CreatedAt           int64          `json:"created_at,omitempty"`
	FinishedAt          int64          `json:"finished_at,omitempty"`
	ParallelID          string         `json:"parallel_id,omitempty"`
	ParallelStartNodeID string         `json:"parallel_start_node_id,omitempty"`
	IterationID         string         `json:"iteration_id,omitempty"`
	LoopID              string         `json:"loop_id,omitempty"`
}

// WorkflowFinished closes a workflow run with its outputs or error.
type WorkflowFinished struct {
	WorkflowEnvelope
	Data WorkflowFinishedData `json:"data"`
}

func (*WorkflowFinished) Kind() Kind { return KindWorkflowFinished }

func (e *WorkflowFinished) nestedWorkflowID() string { return e.Data.WorkflowID }

type WorkflowFinishedData struct {
	ID          string         `json:"id,omitempty"`
	WorkflowID  string         `json:"workflow_id,omitempty"`
	Status      string         `json:"status,omitempty"`
	Outputs     map[string]any `json:"outputs,omitempty"`
	Error       string         `json:"error,omitempty"`
	ElapsedTime float64        `json:"elapsed_time,omitempty"`
	TotalTokens int            `json:"total_tokens,omitempty"`
	TotalSteps  int            `json:"total_steps,omitempty"`
	CreatedAt   int64          `json:"created_at,omitempty"`
	FinishedAt  int64          `json:"finished_at,omitempty"`
}

// IterationStarted opens an iteration node.
type IterationStarted struct {
	WorkflowEnvelope
	Data IterationStartedData `json:"data"`
}

func (*IterationStarted) Kind() Kind { return KindIterationStarted }

type IterationStartedData struct {
	ID                  string         `json:"id,omitempty"`
	NodeID              string         `json:"node_id,omitempty"`
	NodeType            string         `json:"node_type,omitempty"`
	Title               string         `json:"title,omitempty"`
	CreatedAt           int64          `json:"created_at,omitempty"`
	Extras              map[string]any `json:"extras,omitempty"`
	Metadata            map[string]any `json:"metadata,omitempty"`
	Inputs              map[string]any `json:"inputs,omitempty"`
	ParallelID          string         `json:"parallel_id,omitempty"`
	ParallelStartNodeID string         `json:"parallel_start_node_id,omitempty"`
}

// IterationNext advances an iteration node to its next element.
type IterationNext struct {
	WorkflowEnvelope
	Data IterationNextData `json:"data"`
}

func (*IterationNext) Kind() Kind { return KindIterationNext }

type IterationNextData struct {
	ID                  string         `json:"id,omitempty"`
	NodeID              string         `json:"node_id,omitempty"`
	NodeType            string         `json:"node_type,omitempty"`
	Title               string         `json:"title,omitempty"`
	Index               int            `json:"index"`
	CreatedAt           int64          `json:"created_at,omitempty"`
	PreIterationOutput  any            `json:"pre_iteration_output,omitempty"`
	Extras              map[string]any `json:"extras,omitempty"`
	ParallelID          string         `json:"parallel_id,omitempty"`
	ParallelStartNodeID string         `json:"parallel_start_node_id,omitempty"`
	ParallelModeRunID   string         `json:"parallel_mode_run_id,omitempty"`
	Duration            float64        `json:"duration,omitempty"`
}

// IterationCompleted closes an iteration node.
type IterationCompleted struct {
	WorkflowEnvelope
	Data IterationCompletedData `json:"data"`
}

func (*IterationCompleted) Kind() Kind { return KindIterationCompleted }

type IterationCompletedData struct {
	ID                  string         `json:"id,omitempty"`
	NodeID              string         `json:"node_id,omitempty"`
	NodeType            string         `json:"node_type,omitempty"`
	Title               string         `json:"title,omitempty"`
	Outputs             map[string]any `json:"outputs,omitempty"`
	CreatedAt           int64          `json:"created_at,omitempty"`
	Extras              map[string]any `json:"extras,omitempty"`
	Inputs              map[string]any `json:"inputs,omitempty"`
	Status              string         `json:"status,omitempty"`
	Error               string         `json:"error,omitempty"`
	ElapsedTime         float64        `json:"elapsed_time,omitempty"`
	TotalTokens         int            `json:"total_tokens,omitempty"`
	ExecutionMetadata   map[string]any `json:"execution_metadata,omitempty"`
	FinishedAt          int64          `json:"finished_at,omitempty"`
	Steps               int            `json:"steps,omitempty"`
	ParallelID          string         `json:"parallel_id,omitempty"`
	ParallelStartNodeID string         `json:"parallel_start_node_id,omitempty"`
}

// LoopStarted opens a loop node.
type LoopStarted struct {
	WorkflowEnvelope
	Data LoopStartedData `json:"data"`
}

func (*LoopStarted) Kind() Kind { return KindLoopStarted }

type LoopStartedData struct {
	ID                  string         `json:"id,omitempty"`
	NodeID              string         `json:"node_id,omitempty"`
	NodeType            string         `json:"node_type,omitempty"`
	Title               string         `json:"title,omitempty"`
	CreatedAt           int64          `json:"created_at,omitempty"`
	Extras              map[string]any `json:"extras,omitempty"`
	Metadata            map[string]any `json:"metadata,omitempty"`
	Inputs              map[string]any `json:"inputs,omitempty"`
	ParallelID          string         `json:"parallel_id,omitempty"`
	ParallelStartNodeID string         `json:"parallel_start_node_id,omitempty"`
}

// LoopNext advances a loop node to its next round.
type LoopNext struct {
	WorkflowEnvelope
	Data LoopNextData `json:"data"`
}

func (*LoopNext) Kind() Kind { return KindLoopNext }

type LoopNextData struct {
	ID                  string         `json:"id,omitempty"`
	NodeID              string         `json:"node_id,omitempty"`
	NodeType            string         `json:"node_type,omitempty"`
	Title               string         `json:"title,omitempty"`
	Index               int            `json:"index"`
	CreatedAt           int64          `json:"created_at,omitempty"`
	PreLoopOutput       any            `json:"pre_iteration_output,omitempty"`
	Extras              map[string]any `json:"extras,omitempty"`
	ParallelID          string         `json:"parallel_id,omitempty"`
	ParallelStartNodeID string         `json:"parallel_start_node_id,omitempty"`
	ParallelModeRunID   string         `json:"parallel_mode_run_id,omitempty"`
	Duration            float64        `json:"duration,omitempty"`
}

// LoopCompleted closes a loop node.
type LoopCompleted struct {
	WorkflowEnvelope
	Data LoopCompletedData `json:"data"`
}

func (*LoopCompleted) Kind() Kind { return KindLoopCompleted }

type LoopCompletedData struct {
	ID                  string         `json:"id,omitempty"`
	NodeID              string         `json:"node_id,omitempty"`
	NodeType            string         `json:"node_type,omitempty"`
	Title               string         `json:"title,omitempty"`
	Outputs             map[string]any `json:"outputs,omitempty"`
	CreatedAt           int64          `json:"created_at,omitempty"`
	Extras              map[string]any `json:"extras,omitempty"`
	Inputs              map[string]any `json:"inputs,omitempty"`
	Status              string         `json:"status,omitempty"`
	Error               string         `json:"error,omitempty"`
	ElapsedTime         float64        `json:"elapsed_time,omitempty"`
	TotalTokens         int            `json:"total_tokens,omitempty"`
	ExecutionMetadata   map[string]any `json:"execution_metadata,omitempty"`
	FinishedAt          int64          `json:"finished_at,omitempty"`
	Steps               int            `json:"steps,omitempty"`
	ParallelID          string         `json:"parallel_id,omitempty"`
	ParallelStartNodeID string         `json:"parallel_start_node_id,omitempty"`
}

// AgentLog reports a step taken by an agent node inside a workflow.
type AgentLog struct {
	WorkflowEnvelope
	Data AgentLogData `json:"data"`
}

func (*AgentLog) Kind() Kind { return KindAgentLog }

type AgentLogData struct {
	NodeExecutionID string         `json:"node_execution_id,omitempty"`
	ID              string         `json:"id,omitempty"`
	Label           string         `json:"label,omitempty"`
	ParentID        string         `json:"parent_id,omitempty"`
	Error           string         `json:"error,omitempty"`
	Status          string         `json:"status,omitempty"`
	Data            map[string]any `json:"data,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	NodeID          string         `json:"node_id,omitempty"`
}

// TextChunk streams LLM output produced inside a workflow run.
type TextChunk struct {
	WorkflowEnvelope
	Data TextChunkData `json:"data"`
}

func (*TextChunk) Kind() Kind { return KindTextChunk }

type TextChunkData struct {
	Text                 string   `json:"text"`
	FromVariableSelector []string `json:"from_variable_selector,omitempty"`
}
