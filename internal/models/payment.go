package models

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderFailed    OrderStatus = "failed"
	OrderCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID            string      `json:"id"`
	CourseID      string      `json:"courseId"`
	CourseName    string      `json:"courseName"`
	Amount        float64     `json:"amount"`
	Status        OrderStatus `json:"status"`
	PaymentMethod string      `json:"paymentMethod"`
	TransactionID string      `json:"transactionId"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// PaymentSession is the gateway checkout handle returned by the server. The
// client only redirects to URL; session creation and validation are server
// concerns.
type PaymentSession struct {
	URL       string `json:"url"`
	SessionID string `json:"sessionId"`
}

type PaymentValidation struct {
	Success bool  `json:"success"`
	Order   Order `json:"order"`
}
