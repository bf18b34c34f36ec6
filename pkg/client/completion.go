package client

import (
	"context"
	"net/http"

	"github.com/papercomputeco/dify/pkg/dispatch"
)

const completionMessagesPath = "/completion-messages"

// SendCompletionMessage runs a text generation app and waits for the result.
func (c *Client) SendCompletionMessage(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	req.ResponseMode = ResponseModeBlocking
	req.Inputs = emptyInputs(req.Inputs)

	out := &CompletionResponse{}
	if err := c.api.doJSON(ctx, http.MethodPost, completionMessagesPath, nil, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// StreamCompletion runs a text generation app and routes the streamed text to
// h. Frames with a missing or unknown kind are delivered as messages.
func (c *Client) StreamCompletion(ctx context.Context, req CompletionRequest, h dispatch.CompletionHandler) error {
	req.ResponseMode = ResponseModeStreaming
	req.Inputs = emptyInputs(req.Inputs)
	return c.runStream(ctx, completionMessagesPath, req, dispatch.NewCompletionRouter(h, c.routerOptions(completionMessagesPath)...))
}

// StopCompletion stops the streaming task taskID.
func (c *Client) StopCompletion(ctx context.Context, taskID, user string) (*SimpleResponse, error) {
	out := &SimpleResponse{}
	err := c.api.doJSON(ctx, http.MethodPost, completionMessagesPath+segment(taskID)+"/stop", nil, userBody{User: user}, out)
	if err != nil {
		return nil, err
	}
	return out, nil
}
