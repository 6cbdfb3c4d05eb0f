// Package notify carries transient user-visible notifications, the server-side
// counterpart of a toast.
package notify

import (
	"sync"

	"go.uber.org/zap"

	"grocery.GO/core/apperr"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
	// ID deduplicates: a later notification with the same ID replaces the earlier one.
	ID string `json:"id,omitempty"`
}

type Notifier interface {
	Notify(n Notification)
}

func Success(id, message string) Notification {
	return Notification{Level: LevelSuccess, Message: message, ID: id}
}

func Error(id, message string) Notification {
	return Notification{Level: LevelError, Message: message, ID: id}
}

func Info(id, message string) Notification {
	return Notification{Level: LevelInfo, Message: message, ID: id}
}

// FromError builds an error notification using err's user-facing message, or
// fallback when it has none.
func FromError(id string, err error, fallback string) Notification {
	return Error(id, apperr.MessageOf(err, fallback))
}

// Recorder collects notifications for one request.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
	log   *zap.Logger
}

func NewRecorder(log *zap.Logger) *Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Recorder{log: log}
}

func (r *Recorder) Notify(n Notification) {
	r.log.Debug("notification", zap.String("level", string(n.Level)), zap.String("id", n.ID), zap.String("message", n.Message))
	r.mu.Lock()
	defer r.mu.Unlock()
	if n.ID != "" {
		for i := range r.items {
			if r.items[i].ID == n.ID {
				r.items[i] = n
				return
			}
		}
	}
	r.items = append(r.items, n)
}

// All returns the collected notifications, never nil.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

// Log writes notifications to a logger. Used by background views that have no
// user attached.
type Log struct {
	L *zap.Logger
}

func (l Log) Notify(n Notification) {
	fields := []zap.Field{zap.String("id", n.ID), zap.String("message", n.Message)}
	if n.Level == LevelError {
		l.L.Warn("notification", fields...)
		return
	}
	l.L.Info("notification", fields...)
}

// Discard drops notifications.
type Discard struct{}

func (Discard) Notify(Notification) {}
