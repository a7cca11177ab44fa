package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Test199T/vita-wise-ai-sub001/internal/domain"
)

// Error notices are appended to the conversation as assistant messages so a
// failed send never breaks conversational flow.
const (
	noticeConnectivity = "⚠️ ไม่สามารถเชื่อมต่อกับเซิร์ฟเวอร์ได้ กรุณาลองใหม่อีกครั้ง"
	noticeGeneric      = "⚠️ ขออภัย เกิดข้อผิดพลาด กรุณาลองใหม่อีกครั้ง"

	autoTitleLimit = 40
)

// ChatAPI is the backend surface the chat service depends on
type ChatAPI interface {
	ListSessions(ctx context.Context) ([]domain.Session, error)
	CreateSession(ctx context.Context, title string) (*domain.Session, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
	ListMessages(ctx context.Context, id uuid.UUID) ([]domain.Message, error)
	SendMessage(ctx context.Context, id uuid.UUID, content string) (*domain.Message, error)
	SendMessageImage(ctx context.Context, id uuid.UUID, content, filename string, image io.Reader) (*domain.Message, error)
}

// ChatService owns the in-memory model of chat sessions and the active
// conversation, and orchestrates message sends with optimistic feedback.
// UI layers only read its state and dispatch actions.
type ChatService struct {
	api ChatAPI

	mu       sync.Mutex
	sessions []domain.Session
	activeID uuid.UUID
	messages []domain.Message
	sending  bool
}

// NewChatService creates a new chat service
func NewChatService(api ChatAPI) *ChatService {
	return &ChatService{api: api}
}

// LoadSessions fetches the session list from the backend
func (s *ChatService) LoadSessions(ctx context.Context) error {
	sessions, err := s.api.ListSessions(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.sessions = sessions
	s.mu.Unlock()
	return nil
}

// Sessions returns a copy of the session list, newest first
func (s *ChatService) Sessions() []domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Session(nil), s.sessions...)
}

// Messages returns a copy of the active conversation
func (s *ChatService) Messages() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Message(nil), s.messages...)
}

// ActiveSession returns the active session id, if any
func (s *ChatService) ActiveSession() (uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID, s.activeID != uuid.Nil
}

// Sending reports whether a send is in flight
func (s *ChatService) Sending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sending
}

// NewChat clears the active conversation back to the welcome state
func (s *ChatService) NewChat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeID = uuid.Nil
	s.messages = nil
}

// Select makes a session active and loads its messages. The fetch is skipped
// when the session is already active with messages loaded, or while a send is
// in flight, so in-progress state is never discarded. A malformed identifier
// is rejected before any network call and resets to the welcome state.
func (s *ChatService) Select(ctx context.Context, rawID string) error {
	id, err := domain.ParseSessionID(rawID)
	if err != nil {
		s.NewChat()
		return err
	}

	s.mu.Lock()
	if s.sending || (s.activeID == id && len(s.messages) > 0) {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	messages, err := s.api.ListMessages(ctx, id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.activeID = id
	s.messages = messages
	s.mu.Unlock()
	return nil
}

// CreateSession creates a session, places it at the head of the list and
// makes it active without a further fetch.
func (s *ChatService) CreateSession(ctx context.Context, title string) (*domain.Session, error) {
	if title == "" {
		title = "New Chat"
	}
	session, err := s.api.CreateSession(ctx, title)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions = append([]domain.Session{*session}, s.sessions...)
	s.activeID = session.ID
	s.messages = nil
	s.mu.Unlock()
	return session, nil
}

// Delete removes a session. Local state only changes after the backend
// confirms; deleting the active session clears the conversation.
func (s *ChatService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.api.DeleteSession(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, session := range s.sessions {
		if session.ID == id {
			s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
			break
		}
	}
	if s.activeID == id {
		s.activeID = uuid.Nil
		s.messages = nil
	}
	return nil
}

// Send submits user input to the active conversation, creating a session
// first if none is selected. The user message is appended optimistically
// before any network call, session creation included; exactly one terminal
// message follows -- the assistant's reply or an error notice -- and the
// sending flag is cleared on every path. The returned message is the
// terminal one.
func (s *ChatService) Send(ctx context.Context, content, imageName string, image io.Reader) (*domain.Message, error) {
	s.mu.Lock()
	sessionID := s.activeID
	local := domain.NewLocalMessage(sessionID, content, imageName)
	s.messages = append(s.messages, local)
	s.sending = true
	s.mu.Unlock()

	var reply *domain.Message
	var err error
	if sessionID == uuid.Nil {
		var session *domain.Session
		session, err = s.api.CreateSession(ctx, autoTitle(content))
		if err == nil {
			sessionID = session.ID
			s.mu.Lock()
			s.sessions = append([]domain.Session{*session}, s.sessions...)
			s.activeID = sessionID
			for i := range s.messages {
				if s.messages[i].ID == local.ID {
					s.messages[i].SessionID = sessionID
				}
			}
			s.mu.Unlock()
		}
	}

	if err == nil {
		if image != nil {
			reply, err = s.api.SendMessageImage(ctx, sessionID, content, imageName, image)
		} else {
			reply, err = s.api.SendMessage(ctx, sessionID, content)
		}
	}

	terminal := s.terminalMessage(sessionID, reply, err)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sending = false
	// A send started on a session that is no longer active must not leak its
	// reply into the newly active conversation.
	if s.activeID == sessionID {
		s.messages = append(s.messages, *terminal)
		if sessionID != uuid.Nil {
			s.touchSession(sessionID, terminal.Content)
		}
	} else {
		log.Debug().
			Str("session_id", sessionID.String()).
			Msg("Dropping reply for inactive session")
	}
	return terminal, nil
}

// terminalMessage converts a send outcome into the single message appended
// after the optimistic one.
func (s *ChatService) terminalMessage(sessionID uuid.UUID, reply *domain.Message, err error) *domain.Message {
	if err == nil {
		return reply
	}

	log.Warn().Err(err).Str("session_id", sessionID.String()).Msg("Chat send failed")

	content := noticeConnectivity
	var serverErr *domain.ServerError
	if errors.As(err, &serverErr) {
		content = noticeGeneric
		if serverErr.Message != "" {
			content = "⚠️ " + serverErr.Message
		}
	} else if errors.Is(err, domain.ErrAuthentication) {
		content = noticeGeneric
	}

	return &domain.Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Sender:    domain.SenderAssistant,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// touchSession refreshes a session's preview and bumps it to the head.
// Callers must hold the mutex.
func (s *ChatService) touchSession(id uuid.UUID, preview string) {
	for i, session := range s.sessions {
		if session.ID == id {
			session.LastMessage = preview
			session.UpdatedAt = time.Now()
			s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
			s.sessions = append([]domain.Session{session}, s.sessions...)
			return
		}
	}
}

func autoTitle(content string) string {
	title := strings.TrimSpace(content)
	if runes := []rune(title); len(runes) > autoTitleLimit {
		title = string(runes[:autoTitleLimit])
	}
	if title == "" {
		title = "New Chat"
	}
	return title
}
