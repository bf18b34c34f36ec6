package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/papercomputeco/dify/pkg/dispatch"
)

const (
	chatMessagesPath  = "/chat-messages"
	messagesPath      = "/messages"
	conversationsPath = "/conversations"
)

// SendChatMessage sends a chat message and waits for the whole answer.
func (c *Client) SendChatMessage(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	req.ResponseMode = ResponseModeBlocking
	req.Inputs = emptyInputs(req.Inputs)

	out := &ChatResponse{}
	if err := c.api.doJSON(ctx, http.MethodPost, chatMessagesPath, nil, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// StreamChat sends a chat message to a chat or agent app and routes the
// streamed answer to h. It blocks until the stream terminates.
func (c *Client) StreamChat(ctx context.Context, req ChatRequest, h dispatch.ChatHandler) error {
	req.ResponseMode = ResponseModeStreaming
	req.Inputs = emptyInputs(req.Inputs)
	return c.runStream(ctx, chatMessagesPath, req, dispatch.NewChatRouter(h, c.routerOptions(chatMessagesPath)...))
}

// StreamChatflow is StreamChat for advanced chat apps, whose streams also
// carry workflow progress.
func (c *Client) StreamChatflow(ctx context.Context, req ChatRequest, h dispatch.ChatflowHandler) error {
	req.ResponseMode = ResponseModeStreaming
	req.Inputs = emptyInputs(req.Inputs)
	return c.runStream(ctx, chatMessagesPath, req, dispatch.NewChatflowRouter(h, c.routerOptions(chatMessagesPath)...))
}

// StopChatMessage stops the streaming task taskID.
func (c *Client) StopChatMessage(ctx context.Context, taskID, user string) (*SimpleResponse, error) {
	out := &SimpleResponse{}
	err := c.api.doJSON(ctx, http.MethodPost, chatMessagesPath+segment(taskID)+"/stop", nil, userBody{User: user}, out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FeedbackMessage rates a message.
func (c *Client) FeedbackMessage(ctx context.Context, messageID string, req FeedbackRequest) (*SimpleResponse, error) {
	out := &SimpleResponse{}
	if err := c.api.doJSON(ctx, http.MethodPost, messagesPath+segment(messageID)+"/feedbacks", nil, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// SuggestedQuestions returns the follow-up questions suggested for a message.
func (c *Client) SuggestedQuestions(ctx context.Context, messageID, user string) ([]string, error) {
	var out struct {
		Result string   `json:"result"`
		Data   []string `json:"data"`
	}
	query := url.Values{"user": {user}}
	if err := c.api.doJSON(ctx, http.MethodGet, messagesPath+segment(messageID)+"/suggested", query, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Messages returns a page of a conversation's history, newest first.
func (c *Client) Messages(ctx context.Context, p MessagesParams) (*MessageList, error) {
	query := url.Values{}
	setString(query, "conversation_id", p.ConversationID)
	setString(query, "user", p.User)
	setString(query, "first_id", p.FirstID)
	setInt(query, "limit", p.Limit)

	out := &MessageList{}
	if err := c.api.doJSON(ctx, http.MethodGet, messagesPath, query, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Conversations returns a page of the user's conversations.
func (c *Client) Conversations(ctx context.Context, p ConversationsParams) (*ConversationList, error) {
	query := url.Values{}
	setString(query, "user", p.User)
	setString(query, "last_id", p.LastID)
	setInt(query, "limit", p.Limit)
	setString(query, "sort_by", p.SortBy)

	out := &ConversationList{}
	if err := c.api.doJSON(ctx, http.MethodGet, conversationsPath, query, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteConversation deletes a conversation.
func (c *Client) DeleteConversation(ctx context.Context, conversationID, user string) error {
	return c.api.doJSON(ctx, http.MethodDelete, conversationsPath+segment(conversationID), nil, userBody{User: user}, nil)
}

// RenameConversation renames a conversation and returns it.
func (c *Client) RenameConversation(ctx context.Context, conversationID string, req RenameRequest) (*Conversation, error) {
	out := &Conversation{}
	if err := c.api.doJSON(ctx, http.MethodPost, conversationsPath+segment(conversationID)+"/name", nil, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func setString(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

func setInt(q url.Values, key string, value int) {
	if value > 0 {
		q.Set(key, strconv.Itoa(value))
	}
}
