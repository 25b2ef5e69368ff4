package queue

import (
	"encoding/json"

	"github.com/tokogitar/tokogitar/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderStatusEmail notifies the buyer about an order transition.
	TaskOrderStatusEmail = constants.TaskOrderStatusEmail
	// TaskResetCodeEmail delivers a password reset OTP.
	TaskResetCodeEmail = constants.TaskResetCodeEmail
)

// OrderStatusEmailPayload is the order status mail task payload.
type OrderStatusEmailPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// ResetCodeEmailPayload is the OTP mail task payload.
type ResetCodeEmailPayload struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// NewOrderStatusEmailTask creates an order status mail task.
func NewOrderStatusEmailTask(payload OrderStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusEmail, body), nil
}

// NewResetCodeEmailTask creates an OTP mail task.
func NewResetCodeEmailTask(payload ResetCodeEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskResetCodeEmail, body), nil
}
