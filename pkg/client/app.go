package client

import (
	"context"
	"net/http"
)

// AppInfo returns the app's name, description, tags and mode.
func (c *Client) AppInfo(ctx context.Context) (*AppInfo, error) {
	out := &AppInfo{}
	if err := c.api.doJSON(ctx, http.MethodGet, "/info", nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// AppMeta returns the app's tool icons.
func (c *Client) AppMeta(ctx context.Context) (*AppMeta, error) {
	out := &AppMeta{}
	if err := c.api.doJSON(ctx, http.MethodGet, "/meta", nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// AppParameters returns the app's input form and feature switches.
func (c *Client) AppParameters(ctx context.Context) (*AppParameters, error) {
	out := &AppParameters{}
	if err := c.api.doJSON(ctx, http.MethodGet, "/parameters", nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// AppSite returns the app's web app settings.
func (c *Client) AppSite(ctx context.Context) (*AppSite, error) {
	out := &AppSite{}
	if err := c.api.doJSON(ctx, http.MethodGet, "/site", nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// UploadFile uploads a file for use in a later message, returning its id.
func (c *Client) UploadFile(ctx context.Context, file Upload, user string) (*UploadedFile, error) {
	out := &UploadedFile{}
	if err := c.api.doMultipart(ctx, "/files/upload", map[string]string{"user": user}, file, out); err != nil {
		return nil, err
	}
	return out, nil
}

// AudioToText transcribes an audio file.
func (c *Client) AudioToText(ctx context.Context, file Upload, user string) (string, error) {
	var out struct {
		Text string `json:"text"`
	}
	if err := c.api.doMultipart(ctx, "/audio-to-text", map[string]string{"user": user}, file, &out); err != nil {
		return "", err
	}
	return out.Text, nil
}

// TextToAudio synthesizes speech and returns the encoded audio.
func (c *Client) TextToAudio(ctx context.Context, req TextToAudioRequest) ([]byte, error) {
	return c.api.doBytes(ctx, http.MethodPost, "/text-to-audio", req)
}
