package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"team-files-api/internal/application/ports"
	domain "team-files-api/internal/domain/message"
	"team-files-api/internal/domain/user"
)

// Matches the chat input cap of the web client.
const maxMessageLen = 2000

var (
	ErrMessageEmpty   = errors.New("message content is empty")
	ErrMessageTooLong = errors.New("message content exceeds the maximum length")
)

// MessageService keeps a live window of recent chat messages, fed by
// the repository subscription the same way FileService tracks files.
type MessageService struct {
	messageRepository domain.Repository
	mCounter          *prometheus.CounterVec
	logger            *zap.Logger

	mu        sync.RWMutex
	messages  domain.Messages
	subErr    error
	cancelSub context.CancelFunc
}

func NewMessageService(
	messageRepository domain.Repository,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
) ports.MessageService {
	return &MessageService{
		messageRepository: messageRepository,
		mCounter:          mCounter,
		logger:            logger,
	}
}

// Run establishes the live subscription and blocks until ctx is done.
func (ms *MessageService) Run(ctx context.Context) error {
	if err := ms.Refresh(ctx); err != nil {
		return err
	}

	<-ctx.Done()

	ms.mu.Lock()
	if ms.cancelSub != nil {
		ms.cancelSub()
	}
	ms.mu.Unlock()

	return nil
}

// Refresh (re-)subscribes. As with files, the subscription lifetime is
// detached from the caller's context; an HTTP-triggered refresh must
// not die with the request.
func (ms *MessageService) Refresh(ctx context.Context) error {
	subCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	windows, errs, err := ms.messageRepository.Subscribe(subCtx)
	if err != nil {
		cancel()
		ms.mu.Lock()
		ms.subErr = err
		ms.mu.Unlock()
		return err
	}

	ms.mu.Lock()
	if ms.cancelSub != nil {
		ms.cancelSub()
	}
	ms.cancelSub = cancel
	ms.subErr = nil
	ms.mu.Unlock()

	go ms.consume(windows, errs)

	return nil
}

func (ms *MessageService) consume(windows <-chan domain.Messages, errs <-chan error) {
	for windows != nil || errs != nil {
		select {
		case win, ok := <-windows:
			if !ok {
				windows = nil
				continue
			}
			ms.mu.Lock()
			ms.messages = win
			ms.mu.Unlock()
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if err != nil {
				ms.logger.Error("messages subscription failed", zap.Error(err))
				ms.mu.Lock()
				ms.subErr = err
				ms.mu.Unlock()
			}
		}
	}
}

// Messages returns the current window and the terminal subscription
// error, if any.
func (ms *MessageService) Messages() (domain.Messages, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	out := make(domain.Messages, len(ms.messages))
	copy(out, ms.messages)
	return out, ms.subErr
}

// SendMessage validates and persists one chat entry. The new message
// reaches the local window through the subscription push, not by a
// local merge.
func (ms *MessageService) SendMessage(ctx context.Context, actor *user.User, content string) (*domain.Message, error) {
	if actor == nil {
		return nil, ErrNotAuthenticated
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrMessageEmpty
	}
	if utf8.RuneCountInString(content) > maxMessageLen {
		return nil, ErrMessageTooLong
	}

	m, err := ms.messageRepository.CreateMessage(ctx, &domain.Message{
		SenderUUID: actor.UUID,
		SenderName: actor.Name,
		Content:    content,
	})
	if err != nil {
		return nil, err
	}

	ms.mCounter.WithLabelValues("messages_sent_total").Inc()

	return m, nil
}

// SearchMessages queries the full history, not just the live window.
func (ms *MessageService) SearchMessages(ctx context.Context, term string) (domain.Messages, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}

	return ms.messageRepository.SearchMessages(ctx, term)
}
