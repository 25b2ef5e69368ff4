package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/tokogitar/tokogitar/internal/logger"
	"github.com/tokogitar/tokogitar/internal/provider"
	"github.com/tokogitar/tokogitar/internal/queue"
	"github.com/tokogitar/tokogitar/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer handles async mail tasks.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates the consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register wires the task handlers.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderStatusEmail, c.handleOrderStatusEmail)
	mux.HandleFunc(queue.TaskResetCodeEmail, c.handleResetCodeEmail)
}

func (c *Consumer) handleOrderStatusEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_status_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_status_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_status_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_status_email_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_status_email_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	receiverEmail, err := c.OrderRepo.ResolveReceiverEmailByOrderID(order.ID)
	if err != nil {
		logger.Warnw("worker_order_status_email_resolve_receiver_failed", "order_id", order.ID, "error", err)
		return err
	}
	receiverEmail = strings.TrimSpace(receiverEmail)
	if receiverEmail == "" {
		logger.Debugw("worker_order_status_email_skip_empty_receiver", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_order_status_email_skip_email_service_nil", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}
	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = order.Status
	}
	input := service.OrderStatusEmailInput{
		OrderNo:     order.OrderNo,
		Status:      status,
		TotalAmount: order.TotalAmount,
	}
	if order.Shipment != nil {
		input.Resi = order.Shipment.Resi
	}
	if err := c.EmailService.SendOrderStatusEmail(receiverEmail, input); err != nil {
		if errors.Is(err, service.ErrEmailServiceDisabled) {
			logger.Debugw("worker_order_status_email_skip_disabled", "order_id", order.ID)
			return nil
		}
		logger.Warnw("worker_order_status_email_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"receiver_email", receiverEmail,
			"status", status,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleResetCodeEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_reset_code_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.ResetCodeEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_reset_code_email_unmarshal_failed", "error", err)
		return err
	}
	email := strings.TrimSpace(payload.Email)
	if email == "" || payload.Code == "" {
		logger.Debugw("worker_reset_code_email_skip_invalid_payload", "email", email)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_reset_code_email_skip_email_service_nil", "email", email)
		return nil
	}
	if err := c.EmailService.SendResetCode(email, payload.Code); err != nil {
		if errors.Is(err, service.ErrEmailServiceDisabled) {
			logger.Debugw("worker_reset_code_email_skip_disabled", "email", email)
			return nil
		}
		logger.Warnw("worker_reset_code_email_send_failed", "email", email, "error", err)
		return err
	}
	return nil
}
