package client

import (
	"encoding/json"

	"github.com/papercomputeco/dify/pkg/event"
)

// FileInfo references a file attached to a request, either by remote URL or
// by the id returned from UploadFile.
type FileInfo struct {
	Type           string `json:"type"`
	TransferMethod string `json:"transfer_method"`
	URL            string `json:"url,omitempty"`
	UploadFileID   string `json:"upload_file_id,omitempty"`
}

// File transfer methods.
const (
	TransferRemoteURL = "remote_url"
	TransferLocalFile = "local_file"
)

// ChatRequest is the body of /chat-messages.
type ChatRequest struct {
	Query            string         `json:"query"`
	Inputs           map[string]any `json:"inputs"`
	ResponseMode     string         `json:"response_mode"`
	User             string         `json:"user"`
	ConversationID   string         `json:"conversation_id,omitempty"`
	Files            []FileInfo     `json:"files,omitempty"`
	AutoGenerateName *bool          `json:"auto_generate_name,omitempty"`
}

// ChatResponse is the blocking /chat-messages response.
type ChatResponse struct {
	Event          string         `json:"event"`
	TaskID         string         `json:"task_id"`
	ID             string         `json:"id"`
	MessageID      string         `json:"message_id"`
	ConversationID string         `json:"conversation_id"`
	Mode           string         `json:"mode"`
	Answer         string         `json:"answer"`
	Metadata       event.Metadata `json:"metadata"`
	CreatedAt      int64          `json:"created_at"`
}

// CompletionRequest is the body of /completion-messages.
type CompletionRequest struct {
	Inputs       map[string]any `json:"inputs"`
	ResponseMode string         `json:"response_mode"`
	User         string         `json:"user"`
	Files        []FileInfo     `json:"files,omitempty"`
}

// CompletionResponse is the blocking /completion-messages response.
type CompletionResponse struct {
	Event     string         `json:"event"`
	TaskID    string         `json:"task_id"`
	ID        string         `json:"id"`
	MessageID string         `json:"message_id"`
	Mode      string         `json:"mode"`
	Answer    string         `json:"answer"`
	Metadata  event.Metadata `json:"metadata"`
	CreatedAt int64          `json:"created_at"`
}

// WorkflowRunRequest is the body of /workflows/run.
type WorkflowRunRequest struct {
	Inputs       map[string]any `json:"inputs"`
	ResponseMode string         `json:"response_mode"`
	User         string         `json:"user"`
	Files        []FileInfo     `json:"files,omitempty"`
}

// WorkflowRunResponse is the blocking /workflows/run response.
type WorkflowRunResponse struct {
	TaskID        string          `json:"task_id"`
	WorkflowRunID string          `json:"workflow_run_id"`
	Data          WorkflowRunData `json:"data"`
}

// WorkflowRunData describes one workflow execution.
type WorkflowRunData struct {
	ID          string         `json:"id"`
	WorkflowID  string         `json:"workflow_id"`
	Status      string         `json:"status"`
	Outputs     map[string]any `json:"outputs"`
	Error       string         `json:"error"`
	ElapsedTime float64        `json:"elapsed_time"`
	TotalTokens int            `json:"total_tokens"`
	TotalSteps  int            `json:"total_steps"`
	CreatedAt   int64          `json:"created_at"`
	FinishedAt  int64          `json:"finished_at"`
}

// WorkflowRunStatus is the /workflows/run/{id} response. Inputs and outputs
// are kept raw since the platform sends either objects or JSON strings.
type WorkflowRunStatus struct {
	ID          string          `json:"id"`
	WorkflowID  string          `json:"workflow_id"`
	Status      string          `json:"status"`
	Inputs      json.RawMessage `json:"inputs"`
	Outputs     json.RawMessage `json:"outputs"`
	Error       string          `json:"error"`
	TotalSteps  int             `json:"total_steps"`
	TotalTokens int             `json:"total_tokens"`
	ElapsedTime float64         `json:"elapsed_time"`
	CreatedAt   int64           `json:"created_at"`
	FinishedAt  int64           `json:"finished_at"`
}

// WorkflowLogsParams filters /workflows/logs.
type WorkflowLogsParams struct {
	Keyword string
	Status  string
	Page    int
	Limit   int
}

// WorkflowLogList is a page of workflow logs.
type WorkflowLogList struct {
	Page    int           `json:"page"`
	Limit   int           `json:"limit"`
	Total   int           `json:"total"`
	HasMore bool          `json:"has_more"`
	Data    []WorkflowLog `json:"data"`
}

// WorkflowLog is one entry of the workflow log.
type WorkflowLog struct {
	ID            string          `json:"id"`
	WorkflowRun   WorkflowRunData `json:"workflow_run"`
	CreatedFrom   string          `json:"created_from"`
	CreatedByRole string          `json:"created_by_role"`
	CreatedAt     int64           `json:"created_at"`
}

// SimpleResponse is the {"result": "success"} body of mutating endpoints.
type SimpleResponse struct {
	Result string `json:"result"`
}

// FeedbackRequest is the body of /messages/{id}/feedbacks. Rating is "like",
// "dislike" or empty to revoke.
type FeedbackRequest struct {
	Rating  string `json:"rating"`
	User    string `json:"user"`
	Content string `json:"content,omitempty"`
}

// MessagesParams selects a page of conversation history.
type MessagesParams struct {
	ConversationID string
	User           string
	FirstID        string
	Limit          int
}

// MessageList is a page of conversation history.
type MessageList struct {
	Limit   int              `json:"limit"`
	HasMore bool             `json:"has_more"`
	Data    []HistoryMessage `json:"data"`
}

// HistoryMessage is one question/answer pair of a conversation.
type HistoryMessage struct {
	ID                 string                    `json:"id"`
	ConversationID     string                    `json:"conversation_id"`
	ParentMessageID    string                    `json:"parent_message_id"`
	Inputs             map[string]any            `json:"inputs"`
	Query              string                    `json:"query"`
	Answer             string                    `json:"answer"`
	MessageFiles       []HistoryFile             `json:"message_files"`
	Feedback           *Feedback                 `json:"feedback"`
	RetrieverResources []event.RetrieverResource `json:"retriever_resources"`
	AgentThoughts      []event.AgentThought      `json:"agent_thoughts"`
	CreatedAt          int64                     `json:"created_at"`
	Status             string                    `json:"status"`
	Error              string                    `json:"error"`
}

// HistoryFile is a file attached to a history message.
type HistoryFile struct {
	ID             string `json:"id"`
	Filename       string `json:"filename"`
	Type           string `json:"type"`
	MimeType       string `json:"mime_type"`
	TransferMethod string `json:"transfer_method"`
	Size           int64  `json:"size"`
	URL            string `json:"url"`
	BelongsTo      string `json:"belongs_to"`
}

// Feedback is the rating left on a message.
type Feedback struct {
	Rating string `json:"rating"`
}

// ConversationsParams selects a page of conversations.
type ConversationsParams struct {
	User   string
	LastID string
	Limit  int
	SortBy string
}

// ConversationList is a page of conversations.
type ConversationList struct {
	Limit   int            `json:"limit"`
	HasMore bool           `json:"has_more"`
	Data    []Conversation `json:"data"`
}

// Conversation is a chat session.
type Conversation struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Inputs       map[string]any `json:"inputs"`
	Status       string         `json:"status"`
	Introduction string         `json:"introduction"`
	CreatedAt    int64          `json:"created_at"`
	UpdatedAt    int64          `json:"updated_at"`
}

// RenameRequest is the body of /conversations/{id}/name. With AutoGenerate
// the platform picks the name and Name is ignored.
type RenameRequest struct {
	Name         string `json:"name,omitempty"`
	AutoGenerate bool   `json:"auto_generate"`
	User         string `json:"user"`
}

// TextToAudioRequest is the body of /text-to-audio. One of MessageID or Text
// is required.
type TextToAudioRequest struct {
	MessageID string `json:"message_id,omitempty"`
	Text      string `json:"text,omitempty"`
	User      string `json:"user"`
}

// UploadedFile is the /files/upload response.
type UploadedFile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Size      int64  `json:"size"`
	Extension string `json:"extension"`
	MimeType  string `json:"mime_type"`
	CreatedBy string `json:"created_by"`
	CreatedAt int64  `json:"created_at"`
}

// AppInfo is the /info response.
type AppInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Mode        string   `json:"mode"`
	AuthorName  string   `json:"author_name"`
}

// AppMeta is the /meta response.
type AppMeta struct {
	ToolIcons map[string]any `json:"tool_icons"`
}

// AppParameters is the /parameters response. Form and feature blocks vary
// by app and are left as generic JSON.
type AppParameters struct {
	OpeningStatement              string           `json:"opening_statement"`
	SuggestedQuestions            []string         `json:"suggested_questions"`
	SuggestedQuestionsAfterAnswer map[string]any   `json:"suggested_questions_after_answer"`
	SpeechToText                  map[string]any   `json:"speech_to_text"`
	TextToSpeech                  map[string]any   `json:"text_to_speech"`
	RetrieverResource             map[string]any   `json:"retriever_resource"`
	AnnotationReply               map[string]any   `json:"annotation_reply"`
	UserInputForm                 []map[string]any `json:"user_input_form"`
	FileUpload                    map[string]any   `json:"file_upload"`
	SystemParameters              map[string]any   `json:"system_parameters"`
}

// AppSite is the /site response: the web app settings.
type AppSite struct {
	Title                  string `json:"title"`
	ChatColorTheme         string `json:"chat_color_theme"`
	ChatColorThemeInverted bool   `json:"chat_color_theme_inverted"`
	IconType               string `json:"icon_type"`
	Icon                   string `json:"icon"`
	IconBackground         string `json:"icon_background"`
	IconURL                string `json:"icon_url"`
	Description            string `json:"description"`
	Copyright              string `json:"copyright"`
	PrivacyPolicy          string `json:"privacy_policy"`
	CustomDisclaimer       string `json:"custom_disclaimer"`
	DefaultLanguage        string `json:"default_language"`
	ShowWorkflowSteps      bool   `json:"show_workflow_steps"`
	UseIconAsAnswerIcon    bool   `json:"use_icon_as_answer_icon"`
}

// Annotation is a curated question/answer pair.
type Annotation struct {
	ID        string `json:"id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	HitCount  int    `json:"hit_count"`
	CreatedAt int64  `json:"created_at"`
}

// AnnotationList is a page of annotations.
type AnnotationList struct {
	Page    int          `json:"page"`
	Limit   int          `json:"limit"`
	Total   int          `json:"total"`
	HasMore bool         `json:"has_more"`
	Data    []Annotation `json:"data"`
}

// Annotation reply actions.
const (
	AnnotationReplyEnable  = "enable"
	AnnotationReplyDisable = "disable"
)

// AnnotationReplyRequest configures annotation replies.
type AnnotationReplyRequest struct {
	EmbeddingProviderName string  `json:"embedding_provider_name"`
	EmbeddingModelName    string  `json:"embedding_model_name"`
	ScoreThreshold        float64 `json:"score_threshold"`
}

// AnnotationJob tracks an asynchronous annotation reply setting change.
type AnnotationJob struct {
	JobID     string `json:"job_id"`
	JobStatus string `json:"job_status"`
	ErrorMsg  string `json:"error_msg"`
}

// emptyInputs returns in, or an empty map so the platform receives {}.
func emptyInputs(in map[string]any) map[string]any {
	if in == nil {
		return map[string]any{}
	}
	return in
}
