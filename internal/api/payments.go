package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/coursemaster/client-service/internal/models"
)

type createSessionRequest struct {
	CourseID string `json:"courseId"`
}

// CreatePaymentSession asks the server to open a gateway checkout session for
// a course. The caller redirects the user to the returned URL; session
// creation itself is a server concern.
func (c *Client) CreatePaymentSession(ctx context.Context, courseID string) (*models.PaymentSession, error) {
	var session models.PaymentSession
	body := createSessionRequest{CourseID: courseID}
	if err := c.post(ctx, "/payments/create-session", body, &session); err != nil {
		return nil, fmt.Errorf("failed to create payment session for course %s: %w", courseID, err)
	}
	return &session, nil
}

// ValidatePayment confirms a transaction after the gateway redirects back.
func (c *Client) ValidatePayment(ctx context.Context, transactionID string) (*models.PaymentValidation, error) {
	query := url.Values{"tran_id": {transactionID}}
	var validation models.PaymentValidation
	if err := c.get(ctx, "/payments/validate", query, &validation); err != nil {
		return nil, fmt.Errorf("failed to validate payment %s: %w", transactionID, err)
	}
	return &validation, nil
}

// MyOrders lists the current user's orders.
func (c *Client) MyOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.get(ctx, "/payments/orders", nil, &orders); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
