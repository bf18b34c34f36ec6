package client

import (
	"context"
	"net/http"
	"net/url"
)

const (
	annotationsPath      = "/apps/annotations"
	annotationsReplyPath = "/apps/annotations-reply"
)

// Annotations returns a page of the app's annotations.
func (c *Client) Annotations(ctx context.Context, page, limit int) (*AnnotationList, error) {
	query := url.Values{}
	setInt(query, "page", page)
	setInt(query, "limit", limit)

	out := &AnnotationList{}
	if err := c.api.doJSON(ctx, http.MethodGet, annotationsPath, query, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

type annotationBody struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// CreateAnnotation adds an annotation.
func (c *Client) CreateAnnotation(ctx context.Context, question, answer string) (*Annotation, error) {
	out := &Annotation{}
	if err := c.api.doJSON(ctx, http.MethodPost, annotationsPath, nil, annotationBody{question, answer}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateAnnotation replaces an annotation's question and answer.
func (c *Client) UpdateAnnotation(ctx context.Context, annotationID, question, answer string) (*Annotation, error) {
	out := &Annotation{}
	err := c.api.doJSON(ctx, http.MethodPut, annotationsPath+segment(annotationID), nil, annotationBody{question, answer}, out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteAnnotation removes an annotation.
func (c *Client) DeleteAnnotation(ctx context.Context, annotationID string) error {
	return c.api.doJSON(ctx, http.MethodDelete, annotationsPath+segment(annotationID), nil, nil, nil)
}

// AnnotationReply enables or disables annotation replies. The change runs as
// a job; poll it with AnnotationReplyStatus.
func (c *Client) AnnotationReply(ctx context.Context, action string, req AnnotationReplyRequest) (*AnnotationJob, error) {
	out := &AnnotationJob{}
	if err := c.api.doJSON(ctx, http.MethodPost, annotationsReplyPath+segment(action), nil, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// AnnotationReplyStatus returns the state of an annotation reply job.
func (c *Client) AnnotationReplyStatus(ctx context.Context, action, jobID string) (*AnnotationJob, error) {
	out := &AnnotationJob{}
	path := annotationsReplyPath + segment(action) + "/status" + segment(jobID)
	if err := c.api.doJSON(ctx, http.MethodGet, path, nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}
