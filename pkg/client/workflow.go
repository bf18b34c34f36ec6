package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/papercomputeco/dify/pkg/dispatch"
)

const (
	workflowsRunPath   = "/workflows/run"
	workflowsTasksPath = "/workflows/tasks"
	workflowsLogsPath  = "/workflows/logs"
)

// RunWorkflow executes a workflow app and waits for its outputs.
func (c *Client) RunWorkflow(ctx context.Context, req WorkflowRunRequest) (*WorkflowRunResponse, error) {
	req.ResponseMode = ResponseModeBlocking
	req.Inputs = emptyInputs(req.Inputs)

	out := &WorkflowRunResponse{}
	if err := c.api.doJSON(ctx, http.MethodPost, workflowsRunPath, nil, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// StreamWorkflow executes a workflow app and routes its progress events to h.
func (c *Client) StreamWorkflow(ctx context.Context, req WorkflowRunRequest, h dispatch.WorkflowHandler) error {
	req.ResponseMode = ResponseModeStreaming
	req.Inputs = emptyInputs(req.Inputs)
	return c.runStream(ctx, workflowsRunPath, req, dispatch.NewWorkflowRouter(h, c.routerOptions(workflowsRunPath)...))
}

// StopWorkflow stops the streaming workflow task taskID.
func (c *Client) StopWorkflow(ctx context.Context, taskID, user string) (*SimpleResponse, error) {
	out := &SimpleResponse{}
	err := c.api.doJSON(ctx, http.MethodPost, workflowsTasksPath+segment(taskID)+"/stop", nil, userBody{User: user}, out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// WorkflowRun returns the status of the workflow run workflowRunID.
func (c *Client) WorkflowRun(ctx context.Context, workflowRunID string) (*WorkflowRunStatus, error) {
	out := &WorkflowRunStatus{}
	if err := c.api.doJSON(ctx, http.MethodGet, workflowsRunPath+segment(workflowRunID), nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// WorkflowLogs returns a page of the app's workflow logs.
func (c *Client) WorkflowLogs(ctx context.Context, p WorkflowLogsParams) (*WorkflowLogList, error) {
	query := url.Values{}
	setString(query, "keyword", p.Keyword)
	setString(query, "status", p.Status)
	setInt(query, "page", p.Page)
	setInt(query, "limit", p.Limit)

	out := &WorkflowLogList{}
	if err := c.api.doJSON(ctx, http.MethodGet, workflowsLogsPath, query, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}
