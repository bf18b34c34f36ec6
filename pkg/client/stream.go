package client

import (
	"context"
	"net/http"

	"github.com/papercomputeco/dify/pkg/dispatch"
	"github.com/papercomputeco/dify/pkg/sse"
	"github.com/papercomputeco/dify/pkg/stream"
)

// routerOptions returns the dispatch options for a streaming call to endpoint.
func (c *Client) routerOptions(endpoint string) []dispatch.Option {
	opts := []dispatch.Option{dispatch.WithLogger(c.logger)}
	if c.observer != nil {
		if obs := c.observer(endpoint); obs != nil {
			opts = append(opts, dispatch.WithObserver(obs))
		}
	}
	return opts
}

// runStream posts body to path and drives a session over the response until
// it terminates. Errors are returned only when no session was started: the
// request could not be built or sent, or the platform answered non-2xx.
// Everything after that reaches the router's hooks.
func (c *Client) runStream(ctx context.Context, path string, body any, router *dispatch.Router) error {
	req, err := c.api.newJSONRequest(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.api.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var src stream.LineSource
	if c.rawDump != nil {
		src = sse.NewTeeLineReader(resp.Body, c.rawDump)
	} else {
		src = sse.NewLineReader(resp.Body)
	}

	opts := []stream.Option{stream.WithLogger(c.logger.With("endpoint", path))}
	if c.silentEOF {
		opts = append(opts, stream.WithSilentEOF())
	}

	return stream.NewSession(src, router, opts...).Run(ctx)
}
