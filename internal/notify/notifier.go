// Package notify delivers the one-way notices the dashboard surfaces as
// toasts: every credential operation publishes exactly one success or
// failure notice. Delivery is fire-and-forget; sink errors are logged and
// never reach the operation that published.
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Level is the toast severity.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is a single user-facing notification.
type Notice struct {
	ID      string    `json:"id"`
	SID     string    `json:"sid,omitempty"`
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Success builds a success notice for the given session.
func Success(sid, message string) Notice {
	return newNotice(sid, LevelSuccess, message)
}

// Failure builds a failure notice for the given session.
func Failure(sid, message string) Notice {
	return newNotice(sid, LevelError, message)
}

func newNotice(sid string, level Level, message string) Notice {
	return Notice{
		ID:      uuid.NewString(),
		SID:     sid,
		Level:   level,
		Message: message,
		At:      time.Now().UTC(),
	}
}

// Publisher accepts notices for delivery. The session service depends on
// this; the dispatcher is the production implementation.
type Publisher interface {
	Publish(n Notice)
}

// Sink is one delivery backend.
type Sink interface {
	Deliver(ctx context.Context, n Notice) error
	Name() string
}

// LogSink writes notices to the structured log. It is always configured so
// no notice is ever silently dropped.
type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Deliver(_ context.Context, n Notice) error {
	evt := s.log.Info()
	if n.Level == LevelError {
		evt = s.log.Warn()
	}
	evt.
		Str("notice_id", n.ID).
		Str("sid", n.SID).
		Str("level", string(n.Level)).
		Msg(n.Message)
	return nil
}
