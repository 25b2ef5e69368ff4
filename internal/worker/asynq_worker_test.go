package worker

import (
	"context"
	"testing"

	"github.com/hibiken/asynq"

	"github.com/tokogitar/tokogitar/internal/provider"
	"github.com/tokogitar/tokogitar/internal/queue"
)

func TestRegisterNilSafe(t *testing.T) {
	var consumer *Consumer
	consumer.Register(nil)

	NewConsumer(nil).Register(asynq.NewServeMux())
}

func TestHandleResetCodeEmailBadPayload(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	task := asynq.NewTask(queue.TaskResetCodeEmail, []byte("{not json"))
	if err := consumer.handleResetCodeEmail(context.Background(), task); err == nil {
		t.Fatalf("expected unmarshal error")
	}
}

func TestHandleResetCodeEmailSkipsEmptyEmail(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	task := asynq.NewTask(queue.TaskResetCodeEmail, []byte(`{"email":"  ","code":"123456"}`))
	if err := consumer.handleResetCodeEmail(context.Background(), task); err != nil {
		t.Fatalf("empty receiver should be skipped, got %v", err)
	}
}

func TestHandleOrderStatusEmailSkipsZeroOrderID(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	task := asynq.NewTask(queue.TaskOrderStatusEmail, []byte(`{"order_id":0,"status":"DIKEMAS"}`))
	if err := consumer.handleOrderStatusEmail(context.Background(), task); err != nil {
		t.Fatalf("zero order id should be skipped, got %v", err)
	}
}
