package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/rideshare-client/internal/events"
)

// Notifier surfaces client events as user-visible notices.
type Notifier struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotifier creates the notifier.
func NewNotifier(dispatcher events.Dispatcher, logger *zap.Logger) *Notifier {
	return &Notifier{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (n *Notifier) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventSessionChanged, n.handleSessionChanged)
	n.dispatcher.Subscribe(events.EventDeleteRequested, n.handleDeleteRequested)
	n.dispatcher.Subscribe(events.EventDeleteConfirmed, n.handleDeleteConfirmed)
	n.dispatcher.Subscribe(events.EventBannerShown, n.handleBanner)
}

func (n *Notifier) handleSessionChanged(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.SessionChangedPayload)
	if !ok {
		return nil
	}
	if payload.Identity == nil {
		n.logger.Info("session ended")
		return nil
	}
	n.logger.Info("session established",
		zap.String("email", payload.Identity.Email),
		zap.String("role", string(payload.Identity.Role)))
	return nil
}

func (n *Notifier) handleDeleteRequested(_ context.Context, event events.Event) error {
	if payload, ok := event.Payload.(events.DeleteRequestedPayload); ok {
		n.logger.Info("delete awaiting confirmation", zap.Int64("user_id", payload.UserID))
	}
	return nil
}

func (n *Notifier) handleDeleteConfirmed(_ context.Context, event events.Event) error {
	if payload, ok := event.Payload.(events.DeleteConfirmedPayload); ok {
		n.logger.Info("delete confirmed", zap.Int64("user_id", payload.UserID))
	}
	return nil
}

func (n *Notifier) handleBanner(_ context.Context, event events.Event) error {
	if payload, ok := event.Payload.(events.BannerPayload); ok {
		n.logger.Info("notice", zap.String("message", payload.Message))
	}
	return nil
}
