package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/freight-ops/internal/config"
	"github.com/spec-kit/freight-ops/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventShipmentCreated, n.handleShipmentCreated)
	n.dispatcher.Subscribe(events.EventStageChanged, n.handleStageChanged)
	n.dispatcher.Subscribe(events.EventStageReverted, n.handleStageReverted)
	n.dispatcher.Subscribe(events.EventPaymentCollected, n.handlePaymentCollected)
	n.dispatcher.Subscribe(events.EventAgentPaid, n.handleAgentPaid)
}

func (n *NotificationService) handleShipmentCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("ShipmentCreated", zap.String("shipment_id", event.ShipmentID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleStageChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("StageChanged", zap.String("shipment_id", event.ShipmentID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleStageReverted(ctx context.Context, event events.Event) error {
	n.logger.Info("StageReverted", zap.String("shipment_id", event.ShipmentID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handlePaymentCollected(ctx context.Context, event events.Event) error {
	n.logger.Info("PaymentCollected", zap.String("shipment_id", event.ShipmentID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleAgentPaid(ctx context.Context, event events.Event) error {
	n.logger.Info("AgentPaid", zap.String("shipment_id", event.ShipmentID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("shipment_id", event.ShipmentID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("shipment_id", event.ShipmentID),
		zap.String("event_type", string(event.Type)))
}
