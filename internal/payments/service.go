package payments

import (
	"context"

	apperrors "github.com/coursemaster/client-service/internal/errors"
	"github.com/coursemaster/client-service/internal/events"
	"github.com/coursemaster/client-service/internal/models"
	"github.com/coursemaster/client-service/internal/utils"
)

// PaymentAPI is the slice of the API client the payment flows need.
type PaymentAPI interface {
	CreatePaymentSession(ctx context.Context, courseID string) (*models.PaymentSession, error)
	ValidatePayment(ctx context.Context, transactionID string) (*models.PaymentValidation, error)
	MyOrders(ctx context.Context) ([]models.Order, error)
}

// Service wraps the checkout flow. Session creation and validation live on
// the server; this layer only initiates, redirects and confirms.
type Service struct {
	api       PaymentAPI
	publisher events.EventPublisher
	logger    utils.Logger
}

func NewService(api PaymentAPI, publisher events.EventPublisher, logger utils.Logger) *Service {
	return &Service{
		api:       api,
		publisher: publisher,
		logger:    logger,
	}
}

// BeginCheckout opens a gateway session for a course. The caller sends the
// user to the returned URL.
func (s *Service) BeginCheckout(ctx context.Context, courseID string) (*models.PaymentSession, error) {
	if courseID == "" {
		return nil, apperrors.NewValidationError("courseId", "is required", courseID)
	}
	session, err := s.api.CreatePaymentSession(ctx, courseID)
	if err != nil {
		s.logger.LogError(err, "failed to begin checkout", "course_id", courseID)
		return nil, err
	}
	s.logger.Info("checkout session created",
		"course_id", courseID,
		"session_id", session.SessionID)
	return session, nil
}

// Confirm validates a transaction after the gateway redirects back and
// publishes the outcome.
func (s *Service) Confirm(ctx context.Context, transactionID string) (*models.PaymentValidation, error) {
	if transactionID == "" {
		return nil, apperrors.NewValidationError("tran_id", "is required", transactionID)
	}
	validation, err := s.api.ValidatePayment(ctx, transactionID)
	if err != nil {
		s.logger.LogError(err, "payment validation failed", "transaction_id", transactionID)
		return nil, err
	}

	s.logger.Info("payment validated",
		"transaction_id", transactionID,
		"success", validation.Success,
		"order_id", validation.Order.ID)

	if s.publisher != nil {
		event := events.NewUIEvent(events.EventPaymentValidated, events.PaymentValidatedEvent{
			TransactionID: transactionID,
			OrderID:       validation.Order.ID,
			Status:        validation.Order.Status,
			Success:       validation.Success,
		})
		if err := s.publisher.PublishUIEvent(ctx, event); err != nil {
			s.logger.Warn("failed to publish payment event", "error", err)
		}
	}
	return validation, nil
}

// Orders lists the current user's orders.
func (s *Service) Orders(ctx context.Context) ([]models.Order, error) {
	return s.api.MyOrders(ctx)
}
