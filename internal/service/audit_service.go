package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/invenpulse/internal/events"
)

// AuditService turns security-relevant events into structured log records.
// Failed logins and token rejections are routine at Info/Warn; nothing here
// ever logs a credential.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventUserRegistered, a.handleRegistered)
	a.dispatcher.Subscribe(events.EventLoginSucceeded, a.handleLoginSucceeded)
	a.dispatcher.Subscribe(events.EventLoginFailed, a.handleLoginFailed)
	a.dispatcher.Subscribe(events.EventTokenRejected, a.handleTokenRejected)
	a.dispatcher.Subscribe(events.EventRoleChanged, a.handleRoleChanged)
	a.dispatcher.Subscribe(events.EventSaleRecorded, a.handleSaleRecorded)
}

func (a *AuditService) handleRegistered(_ context.Context, event events.Event) error {
	a.logger.Info("UserRegistered", zap.String("subject", event.Subject))
	return nil
}

func (a *AuditService) handleLoginSucceeded(_ context.Context, event events.Event) error {
	a.logger.Info("LoginSucceeded", zap.String("subject", event.Subject))
	return nil
}

func (a *AuditService) handleLoginFailed(_ context.Context, event events.Event) error {
	a.logger.Warn("LoginFailed", zap.String("subject", event.Subject), zap.Any("payload", event.Payload))
	return nil
}

func (a *AuditService) handleTokenRejected(_ context.Context, event events.Event) error {
	a.logger.Warn("TokenRejected", zap.Any("payload", event.Payload))
	return nil
}

func (a *AuditService) handleRoleChanged(_ context.Context, event events.Event) error {
	a.logger.Info("RoleChanged", zap.String("subject", event.Subject), zap.Any("payload", event.Payload))
	return nil
}

func (a *AuditService) handleSaleRecorded(_ context.Context, event events.Event) error {
	a.logger.Info("SaleRecorded", zap.String("subject", event.Subject), zap.Any("payload", event.Payload))
	return nil
}
