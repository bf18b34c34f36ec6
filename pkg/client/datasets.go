package client

import (
	"context"
	"net/http"
	"net/url"
)

const datasetsPath = "/datasets"

// DatasetClient talks to the knowledge base API. It authenticates with a
// dataset API key, not an app key.
type DatasetClient struct {
	api *api
}

// NewDatasetClient creates a DatasetClient. Stream options are ignored.
func NewDatasetClient(c Config, opts ...Option) (*DatasetClient, error) {
	o := newOptions(opts)

	a, err := newAPI(c, o)
	if err != nil {
		return nil, err
	}

	return &DatasetClient{api: a}, nil
}

// Dataset is a knowledge base.
type Dataset struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	Description            string `json:"description"`
	Provider               string `json:"provider"`
	Permission             string `json:"permission"`
	DataSourceType         string `json:"data_source_type"`
	IndexingTechnique      string `json:"indexing_technique"`
	AppCount               int    `json:"app_count"`
	DocumentCount          int    `json:"document_count"`
	WordCount              int    `json:"word_count"`
	CreatedBy              string `json:"created_by"`
	CreatedAt              int64  `json:"created_at"`
	UpdatedBy              string `json:"updated_by"`
	UpdatedAt              int64  `json:"updated_at"`
	EmbeddingModel         string `json:"embedding_model"`
	EmbeddingModelProvider string `json:"embedding_model_provider"`
	EmbeddingAvailable     bool   `json:"embedding_available"`
	Tags                   []Tag  `json:"tags"`
}

// CreateDatasetRequest is the body of POST /datasets.
type CreateDatasetRequest struct {
	Name                   string          `json:"name"`
	Description            string          `json:"description,omitempty"`
	IndexingTechnique      string          `json:"indexing_technique,omitempty"`
	Permission             string          `json:"permission,omitempty"`
	Provider               string          `json:"provider,omitempty"`
	ExternalKnowledgeAPIID string          `json:"external_knowledge_api_id,omitempty"`
	ExternalKnowledgeID    string          `json:"external_knowledge_id,omitempty"`
	EmbeddingModel         string          `json:"embedding_model,omitempty"`
	EmbeddingModelProvider string          `json:"embedding_model_provider,omitempty"`
	RetrievalModel         *RetrievalModel `json:"retrieval_model,omitempty"`
}

// DatasetsParams selects a page of knowledge bases.
type DatasetsParams struct {
	Keyword string
	TagIDs  []string
	Page    int
	Limit   int
}

// DatasetList is a page of knowledge bases.
type DatasetList struct {
	Data    []Dataset `json:"data"`
	HasMore bool      `json:"has_more"`
	Limit   int       `json:"limit"`
	Total   int       `json:"total"`
	Page    int       `json:"page"`
}

// ProcessRule controls how a document is split into segments. Rules is
// only read in custom mode.
type ProcessRule struct {
	Mode  string         `json:"mode"`
	Rules map[string]any `json:"rules,omitempty"`
}

// RetrievalModel configures search over a knowledge base.
type RetrievalModel struct {
	SearchMethod          string         `json:"search_method"`
	RerankingEnable       bool           `json:"reranking_enable"`
	RerankingMode         map[string]any `json:"reranking_mode,omitempty"`
	Weights               float64        `json:"weights,omitempty"`
	TopK                  int            `json:"top_k,omitempty"`
	ScoreThresholdEnabled bool           `json:"score_threshold_enabled"`
	ScoreThreshold        *float64       `json:"score_threshold,omitempty"`
	MetadataFilter        map[string]any `json:"metadata_filtering_conditions,omitempty"`
}

// CreateDocumentByTextRequest is the body of document/create-by-text.
type CreateDocumentByTextRequest struct {
	Name              string          `json:"name"`
	Text              string          `json:"text"`
	IndexingTechnique string          `json:"indexing_technique,omitempty"`
	DocForm           string          `json:"doc_form,omitempty"`
	DocLanguage       string          `json:"doc_language,omitempty"`
	ProcessRule       *ProcessRule    `json:"process_rule,omitempty"`
	RetrievalModel    *RetrievalModel `json:"retrieval_model,omitempty"`
}

// UpdateDocumentByTextRequest is the body of update-by-text.
type UpdateDocumentByTextRequest struct {
	Name        string       `json:"name,omitempty"`
	Text        string       `json:"text,omitempty"`
	ProcessRule *ProcessRule `json:"process_rule,omitempty"`
}

// Document is a knowledge base document.
type Document struct {
	ID                   string `json:"id"`
	Position             int    `json:"position"`
	DataSourceType       string `json:"data_source_type"`
	Batch                string `json:"batch"`
	Name                 string `json:"name"`
	CreatedFrom          string `json:"created_from"`
	CreatedBy            string `json:"created_by"`
	CreatedAt            int64  `json:"created_at"`
	Tokens               int    `json:"tokens"`
	IndexingStatus       string `json:"indexing_status"`
	Error                string `json:"error"`
	Enabled              bool   `json:"enabled"`
	Archived             bool   `json:"archived"`
	DisplayStatus        string `json:"display_status"`
	WordCount            int    `json:"word_count"`
	HitCount             int    `json:"hit_count"`
	DocForm              string `json:"doc_form"`
	DocumentProcessRules any    `json:"dataset_process_rule,omitempty"`
}

// DocumentResult is returned when a document is created or updated. Batch
// identifies the indexing job.
type DocumentResult struct {
	Document Document `json:"document"`
	Batch    string   `json:"batch"`
}

// DocumentsParams selects a page of documents.
type DocumentsParams struct {
	Keyword string
	Page    int
	Limit   int
}

// DocumentList is a page of documents.
type DocumentList struct {
	Data    []Document `json:"data"`
	HasMore bool       `json:"has_more"`
	Limit   int        `json:"limit"`
	Total   int        `json:"total"`
	Page    int        `json:"page"`
}

// IndexingStatus reports embedding progress of one document.
type IndexingStatus struct {
	ID                   string  `json:"id"`
	IndexingStatus       string  `json:"indexing_status"`
	ProcessingStartedAt  float64 `json:"processing_started_at"`
	ParsingCompletedAt   float64 `json:"parsing_completed_at"`
	CleaningCompletedAt  float64 `json:"cleaning_completed_at"`
	SplittingCompletedAt float64 `json:"splitting_completed_at"`
	CompletedAt          float64 `json:"completed_at"`
	PausedAt             float64 `json:"paused_at"`
	Error                string  `json:"error"`
	StoppedAt            float64 `json:"stopped_at"`
	CompletedSegments    int     `json:"completed_segments"`
	TotalSegments        int     `json:"total_segments"`
}

// RetrieveRequest is the body of /datasets/{id}/retrieve.
type RetrieveRequest struct {
	Query          string          `json:"query"`
	RetrievalModel *RetrievalModel `json:"retrieval_model,omitempty"`
}

// RetrieveResult lists the segments that matched a query.
type RetrieveResult struct {
	Query struct {
		Content string `json:"content"`
	} `json:"query"`
	Records []RetrieveRecord `json:"records"`
}

// RetrieveRecord is one matched segment.
type RetrieveRecord struct {
	Segment Segment `json:"segment"`
	Score   float64 `json:"score"`
}

// Segment is a chunk of a document.
type Segment struct {
	ID            string   `json:"id"`
	Position      int      `json:"position"`
	DocumentID    string   `json:"document_id"`
	Content       string   `json:"content"`
	Answer        string   `json:"answer"`
	WordCount     int      `json:"word_count"`
	Tokens        int      `json:"tokens"`
	Keywords      []string `json:"keywords"`
	HitCount      int      `json:"hit_count"`
	Enabled       bool     `json:"enabled"`
	Status        string   `json:"status"`
	CreatedAt     int64    `json:"created_at"`
	IndexNodeHash string   `json:"index_node_hash"`
	Document      struct {
		ID             string `json:"id"`
		DataSourceType string `json:"data_source_type"`
		Name           string `json:"name"`
	} `json:"document"`
}

// Tag labels knowledge bases.
type Tag struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	BindingCount int    `json:"binding_count"`
}

// CreateDataset creates an empty knowledge base.
func (d *DatasetClient) CreateDataset(ctx context.Context, req CreateDatasetRequest) (*Dataset, error) {
	out := &Dataset{}
	if err := d.api.doJSON(ctx, http.MethodPost, datasetsPath, nil, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Datasets returns a page of knowledge bases. Tag ids are sent as repeated
// tag_ids parameters.
func (d *DatasetClient) Datasets(ctx context.Context, p DatasetsParams) (*DatasetList, error) {
	query := url.Values{}
	setString(query, "keyword", p.Keyword)
	setInt(query, "page", p.Page)
	setInt(query, "limit", p.Limit)
	for _, id := range p.TagIDs {
		query.Add("tag_ids", id)
	}

	out := &DatasetList{}
	if err := d.api.doJSON(ctx, http.MethodGet, datasetsPath, query, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Dataset returns one knowledge base.
func (d *DatasetClient) Dataset(ctx context.Context, datasetID string) (*Dataset, error) {
	out := &Dataset{}
	if err := d.api.doJSON(ctx, http.MethodGet, datasetsPath+segment(datasetID), nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteDataset deletes a knowledge base and its documents.
func (d *DatasetClient) DeleteDataset(ctx context.Context, datasetID string) error {
	return d.api.doJSON(ctx, http.MethodDelete, datasetsPath+segment(datasetID), nil, nil, nil)
}

// CreateDocumentByText adds a document from raw text.
func (d *DatasetClient) CreateDocumentByText(ctx context.Context, datasetID string, req CreateDocumentByTextRequest) (*DocumentResult, error) {
	out := &DocumentResult{}
	path := datasetsPath + segment(datasetID) + "/document/create-by-text"
	if err := d.api.doJSON(ctx, http.MethodPost, path, nil, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateDocumentByText replaces a document's name, text or process rule.
func (d *DatasetClient) UpdateDocumentByText(ctx context.Context, datasetID, documentID string, req UpdateDocumentByTextRequest) (*DocumentResult, error) {
	out := &DocumentResult{}
	path := datasetsPath + segment(datasetID) + "/documents" + segment(documentID) + "/update-by-text"
	if err := d.api.doJSON(ctx, http.MethodPost, path, nil, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Documents returns a page of a knowledge base's documents.
func (d *DatasetClient) Documents(ctx context.Context, datasetID string, p DocumentsParams) (*DocumentList, error) {
	query := url.Values{}
	setString(query, "keyword", p.Keyword)
	setInt(query, "page", p.Page)
	setInt(query, "limit", p.Limit)

	out := &DocumentList{}
	if err := d.api.doJSON(ctx, http.MethodGet, datasetsPath+segment(datasetID)+"/documents", query, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteDocument removes a document.
func (d *DatasetClient) DeleteDocument(ctx context.Context, datasetID, documentID string) error {
	path := datasetsPath + segment(datasetID) + "/documents" + segment(documentID)
	return d.api.doJSON(ctx, http.MethodDelete, path, nil, nil, nil)
}

// IndexingStatus reports progress of the indexing job batch.
func (d *DatasetClient) IndexingStatus(ctx context.Context, datasetID, batch string) ([]IndexingStatus, error) {
	var out struct {
		Data []IndexingStatus `json:"data"`
	}
	path := datasetsPath + segment(datasetID) + "/documents" + segment(batch) + "/indexing-status"
	if err := d.api.doJSON(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Retrieve searches a knowledge base.
func (d *DatasetClient) Retrieve(ctx context.Context, datasetID string, req RetrieveRequest) (*RetrieveResult, error) {
	out := &RetrieveResult{}
	if err := d.api.doJSON(ctx, http.MethodPost, datasetsPath+segment(datasetID)+"/retrieve", nil, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

const tagsPath = datasetsPath + "/tags"

// Tags lists knowledge base tags.
func (d *DatasetClient) Tags(ctx context.Context) ([]Tag, error) {
	var out []Tag
	if err := d.api.doJSON(ctx, http.MethodGet, tagsPath, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTag creates a knowledge base tag.
func (d *DatasetClient) CreateTag(ctx context.Context, name string) (*Tag, error) {
	body := struct {
		Name string `json:"name"`
	}{name}

	out := &Tag{}
	if err := d.api.doJSON(ctx, http.MethodPost, tagsPath, nil, body, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteTag deletes a tag and its bindings.
func (d *DatasetClient) DeleteTag(ctx context.Context, tagID string) error {
	body := struct {
		TagID string `json:"tag_id"`
	}{tagID}
	return d.api.doJSON(ctx, http.MethodDelete, tagsPath, nil, body, nil)
}

// BindTags attaches tags to a knowledge base.
func (d *DatasetClient) BindTags(ctx context.Context, datasetID string, tagIDs []string) error {
	body := struct {
		TagIDs   []string `json:"tag_ids"`
		TargetID string   `json:"target_id"`
	}{tagIDs, datasetID}
	return d.api.doJSON(ctx, http.MethodPost, tagsPath+"/binding", nil, body, nil)
}

// UnbindTag detaches a tag from a knowledge base.
func (d *DatasetClient) UnbindTag(ctx context.Context, datasetID, tagID string) error {
	body := struct {
		TagID    string `json:"tag_id"`
		TargetID string `json:"target_id"`
	}{tagID, datasetID}
	return d.api.doJSON(ctx, http.MethodPost, tagsPath+"/unbinding", nil, body, nil)
}
