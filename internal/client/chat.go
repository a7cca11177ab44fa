package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Test199T/vita-wise-ai-sub001/internal/domain"
)

// Chat routes are stable across deployments and are not subject to discovery.
const chatSessionsPath = "/api/chat/sessions"

// replyFields are the response fields that may carry the assistant's reply,
// in lookup order. The shape has varied across backend versions.
var replyFields = []string{"reply", "response", "message", "answer", "content", "text"}

// ListSessions fetches all chat sessions, newest first
func (c *Client) ListSessions(ctx context.Context) ([]domain.Session, error) {
	status, body, err := c.do(ctx, c.httpClient, http.MethodGet, chatSessionsPath, nil, "")
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized {
		return nil, authError(body)
	}
	if !success(status) {
		return nil, &domain.ServerError{StatusCode: status, Message: extractMessage(body)}
	}

	var sessions []domain.Session
	if err := decodeList(body, &sessions); err != nil {
		return nil, fmt.Errorf("failed to decode sessions: %w", err)
	}
	return sessions, nil
}

// CreateSession creates a new chat session on the backend
func (c *Client) CreateSession(ctx context.Context, title string) (*domain.Session, error) {
	payload, err := json.Marshal(map[string]string{"title": title})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}

	status, body, err := c.do(ctx, c.httpClient, http.MethodPost, chatSessionsPath, payload, jsonContentType)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized {
		return nil, authError(body)
	}
	if !success(status) {
		return nil, &domain.ServerError{StatusCode: status, Message: extractMessage(body)}
	}

	var session domain.Session
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session, nil
}

// DeleteSession deletes a chat session on the backend
func (c *Client) DeleteSession(ctx context.Context, id uuid.UUID) error {
	path := chatSessionsPath + "/" + id.String()
	status, body, err := c.do(ctx, c.httpClient, http.MethodDelete, path, nil, "")
	if err != nil {
		return err
	}
	if status == http.StatusUnauthorized {
		return authError(body)
	}
	// Chat routes are fixed, so a 404 here means the session itself is gone.
	if status == http.StatusNotFound {
		return fmt.Errorf("session %s: %w", id, domain.ErrSessionNotFound)
	}
	if !success(status) {
		return &domain.ServerError{StatusCode: status, Message: extractMessage(body)}
	}
	return nil
}

// ListMessages fetches the messages of a session in send order
func (c *Client) ListMessages(ctx context.Context, id uuid.UUID) ([]domain.Message, error) {
	path := chatSessionsPath + "/" + id.String() + "/messages"
	status, body, err := c.do(ctx, c.httpClient, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized {
		return nil, authError(body)
	}
	if status == http.StatusNotFound {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrSessionNotFound)
	}
	if !success(status) {
		return nil, &domain.ServerError{StatusCode: status, Message: extractMessage(body)}
	}

	var messages []domain.Message
	if err := decodeList(body, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}
	return messages, nil
}

// SendMessage posts a text message to a session and returns the assistant's
// reply. A backend-reported failure comes back as a *domain.ServerError;
// everything else is a network-level failure.
func (c *Client) SendMessage(ctx context.Context, id uuid.UUID, content string) (*domain.Message, error) {
	payload, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	path := chatSessionsPath + "/" + id.String() + "/messages"
	status, body, err := c.do(ctx, c.chatClient, http.MethodPost, path, payload, jsonContentType)
	if err != nil {
		return nil, err
	}
	return c.assistantReply(id, status, body)
}

// SendMessageImage posts a message with an attached image as multipart form
// data to the session's multipart endpoint.
func (c *Client) SendMessageImage(ctx context.Context, id uuid.UUID, content, filename string, image io.Reader) (*domain.Message, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("content", content); err != nil {
		return nil, fmt.Errorf("failed to write form field: %w", err)
	}
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("failed to copy image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	path := chatSessionsPath + "/" + id.String() + "/messages/multipart"
	status, body, err := c.do(ctx, c.chatClient, http.MethodPost, path, buf.Bytes(), writer.FormDataContentType())
	if err != nil {
		return nil, err
	}
	return c.assistantReply(id, status, body)
}

// assistantReply turns a send response into an assistant message
func (c *Client) assistantReply(sessionID uuid.UUID, status int, body []byte) (*domain.Message, error) {
	if status == http.StatusUnauthorized {
		return nil, authError(body)
	}
	if !success(status) {
		return nil, &domain.ServerError{StatusCode: status, Message: extractMessage(body)}
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode chat response: %w", err)
	}

	reply, ok := ExtractReply(payload)
	if !ok {
		// 2xx without a recognizable reply is still a backend failure.
		return nil, &domain.ServerError{StatusCode: status, Message: extractMessage(body)}
	}

	return &domain.Message{
		ID:        replyID(payload),
		SessionID: sessionID,
		Sender:    domain.SenderAssistant,
		Content:   reply,
		CreatedAt: time.Now(),
	}, nil
}

// ExtractReply looks up the assistant's reply text across the known response
// shapes, in order. Some deployments nest the payload under "data", and the
// "message" field has been both a string and an object.
func ExtractReply(payload map[string]any) (string, bool) {
	if nested, ok := payload["data"].(map[string]any); ok {
		if reply, ok := ExtractReply(nested); ok {
			return reply, true
		}
	}
	for _, field := range replyFields {
		switch v := payload[field].(type) {
		case string:
			if v != "" {
				return v, true
			}
		case map[string]any:
			if s, ok := v["content"].(string); ok && s != "" {
				return s, true
			}
		}
	}
	return "", false
}

// replyID extracts the server-assigned message id, falling back to a
// client-generated one.
func replyID(payload map[string]any) string {
	for _, field := range []string{"id", "message_id"} {
		switch v := payload[field].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return uuid.NewString()
}
