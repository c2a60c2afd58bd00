package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zhouzirui/campaign-concierge/backend/internal/model/chat"
	"github.com/zhouzirui/campaign-concierge/backend/internal/service/agent"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrEmptyMessage    = errors.New("message is empty")
)

// Responder produces the agent's answer for one turn.
type Responder interface {
	Run(ctx context.Context, turn agent.Turn) (agent.Result, error)
}

// Exchange is the outcome of a submitted visitor message. Reply is pending
// until Deliver appends it to the transcript.
type Exchange struct {
	UserMessage chat.Message
	Reply       agent.Result
}

type conversation struct {
	session  chat.Session
	messages []chat.Message
	context  chat.AgentContext
}

// Service encapsulates conversation state management.
type Service struct {
	responder Responder
	now       func() time.Time

	mu       sync.RWMutex
	sessions map[string]*conversation
}

// NewService bootstraps the in-memory chat service.
func NewService(responder Responder) *Service {
	return &Service{
		responder: responder,
		now:       time.Now,
		sessions:  make(map[string]*conversation),
	}
}

// CreateSession provisions an anonymous session with an empty context.
func (s *Service) CreateSession(_ context.Context) (chat.Session, error) {
	session := chat.Session{
		ID:        uuid.NewString(),
		CreatedAt: s.now().UTC(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = &conversation{
		session:  session,
		messages: make([]chat.Message, 0, 16),
		context:  chat.NewContext(),
	}
	s.mu.Unlock()

	slog.Debug("session created", "session", session.ID)
	return session, nil
}

// GetSession retrieves a session by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (chat.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.sessions[sessionID]
	if !ok {
		return chat.Session{}, ErrSessionNotFound
	}
	return conv.session, nil
}

// EndSession drops the session and everything accumulated in it.
func (s *Service) EndSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	slog.Debug("session ended", "session", sessionID)
	return nil
}

// Submit records a visitor message, runs the responder and stores the updated
// context. Submissions to one session are applied one at a time, in order.
func (s *Service) Submit(ctx context.Context, sessionID, text string) (Exchange, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Exchange{}, ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.sessions[sessionID]
	if !ok {
		return Exchange{}, ErrSessionNotFound
	}

	history := append([]chat.Message(nil), conv.messages...)
	result, err := s.responder.Run(ctx, agent.Turn{
		Message: text,
		History: history,
		Context: conv.context,
	})
	if err != nil {
		return Exchange{}, fmt.Errorf("failed to respond in session %s: %w", sessionID, err)
	}

	userMsg := chat.Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Sender:    chat.SenderUser,
		Text:      text,
		Timestamp: s.now().UnixMilli(),
	}
	conv.messages = append(conv.messages, userMsg)
	conv.context = result.Context

	slog.Info("message routed", "session", sessionID, "intent", result.Intent, "tags", result.Tags)
	return Exchange{UserMessage: userMsg, Reply: result}, nil
}

// Deliver appends the agent reply to the transcript.
func (s *Service) Deliver(_ context.Context, sessionID string, reply agent.Result) (chat.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.sessions[sessionID]
	if !ok {
		return chat.Message{}, ErrSessionNotFound
	}

	msg := chat.Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Sender:    chat.SenderAgent,
		Text:      reply.Reply,
		Timestamp: s.now().UnixMilli(),
		Tags:      append([]string(nil), reply.Tags...),
	}
	conv.messages = append(conv.messages, msg)
	return msg, nil
}

// LoadTranscript returns stored messages for the provided session.
func (s *Service) LoadTranscript(_ context.Context, sessionID string) ([]chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	copied := make([]chat.Message, len(conv.messages))
	copy(copied, conv.messages)
	return copied, nil
}

// Context returns the signals accumulated in a session.
func (s *Service) Context(_ context.Context, sessionID string) (chat.AgentContext, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.sessions[sessionID]
	if !ok {
		return chat.AgentContext{}, ErrSessionNotFound
	}
	return conv.context.Clone(), nil
}

// Momentum returns the side-panel snapshot for a session.
func (s *Service) Momentum(ctx context.Context, sessionID string) ([]string, error) {
	agentCtx, err := s.Context(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return agent.Summarize(agentCtx), nil
}
