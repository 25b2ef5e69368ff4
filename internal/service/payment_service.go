package service

import (
	"context"
	"time"

	"github.com/tokogitar/tokogitar/internal/config"
	"github.com/tokogitar/tokogitar/internal/constants"
	"github.com/tokogitar/tokogitar/internal/logger"
	"github.com/tokogitar/tokogitar/internal/models"
	"github.com/tokogitar/tokogitar/internal/payment/midtrans"
	"github.com/tokogitar/tokogitar/internal/queue"
	"github.com/tokogitar/tokogitar/internal/repository"

	"gorm.io/gorm"
)

// PaymentService issues gateway tokens and reconciles webhook notifications.
type PaymentService struct {
	cfg         *config.Config
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
	userRepo    repository.UserRepository
	queueClient *queue.Client
}

// NewPaymentService creates the payment service.
func NewPaymentService(
	cfg *config.Config,
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	userRepo repository.UserRepository,
	queueClient *queue.Client,
) *PaymentService {
	return &PaymentService{
		cfg:         cfg,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		queueClient: queueClient,
	}
}

func (s *PaymentService) gatewayConfig() *midtrans.Config {
	return &midtrans.Config{
		ServerKey: s.cfg.Midtrans.ServerKey,
		ClientKey: s.cfg.Midtrans.ClientKey,
		BaseURL:   s.cfg.Midtrans.BaseURL,
		TimeoutMS: s.cfg.Midtrans.TimeoutMS,
	}
}

// TokenResult is the payment token response for the storefront.
type TokenResult struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url,omitempty"`
	OrderNo     string `json:"order_no"`
}

// IssueToken returns the hosted payment page token for a PENDING order.
// The token is cached on the order so a page reload reuses the same
// gateway session instead of opening a new one.
func (s *PaymentService) IssueToken(ctx context.Context, orderID, userID uint) (*TokenResult, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPending {
		return nil, ErrOrderStatusInvalid
	}
	if order.SnapToken != "" {
		return &TokenResult{Token: order.SnapToken, OrderNo: order.OrderNo}, nil
	}

	user, err := s.userRepo.GetByID(order.UserID)
	if err != nil {
		return nil, err
	}

	input := midtrans.SnapInput{
		OrderNo:     order.OrderNo,
		GrossAmount: order.TotalAmount,
	}
	if user != nil {
		input.CustomerName = user.Name
		input.CustomerEmail = user.Email
		input.CustomerPhone = user.Phone
	}
	for _, item := range order.Items {
		input.ItemNames = append(input.ItemNames, item.ProductName)
	}

	result, err := midtrans.CreateSnapToken(ctx, s.gatewayConfig(), input)
	if err != nil {
		logger.Warnw("payment_token_request_failed", "order_no", order.OrderNo, "error", err)
		return nil, ErrPaymentTokenUnavailable
	}

	if err := models.DB.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("snap_token", result.Token).Error; err != nil {
		return nil, err
	}

	return &TokenResult{
		Token:       result.Token,
		RedirectURL: result.RedirectURL,
		OrderNo:     order.OrderNo,
	}, nil
}

// HandleNotification reconciles one webhook delivery. The flow is strictly
// verify signature, resolve order, then apply: a bad signature must be
// rejected before any database read reveals whether the order exists.
// Replays land on the same payment row and repeat the same transition, so
// delivery retries are harmless.
func (s *PaymentService) HandleNotification(body []byte) error {
	// Without a server key every signature would verify against the empty
	// string, so an unconfigured gateway must refuse the delivery outright.
	gatewayCfg := s.gatewayConfig()
	if err := midtrans.ValidateConfig(gatewayCfg); err != nil {
		logger.Errorw("payment_webhook_config_invalid", "error", err)
		return err
	}

	data, err := midtrans.ParseNotification(body)
	if err != nil {
		return err
	}
	if err := midtrans.VerifyNotification(gatewayCfg, data); err != nil {
		logger.Warnw("payment_webhook_signature_rejected", "order_no", data.OrderID)
		return ErrWebhookSignature
	}

	order, err := s.orderRepo.GetByOrderNo(data.OrderID)
	if err != nil {
		return err
	}
	if order == nil {
		logger.Warnw("payment_webhook_order_unknown", "order_no", data.OrderID)
		return ErrWebhookOrderUnknown
	}

	gross, err := midtrans.ParseGrossAmount(data.GrossAmount)
	if err != nil {
		return err
	}

	nextStatus := midtrans.ToOrderStatus(data.TransactionStatus, data.FraudStatus)
	settled := midtrans.IsSettled(data.TransactionStatus, data.FraudStatus)
	now := time.Now()

	var payload models.JSON
	_ = payload.Scan(body)

	statusChanged := false
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		paymentRepo := s.paymentRepo.WithTx(tx)

		// Explicit read-then-branch upsert keyed by order id.
		payment, err := paymentRepo.GetByOrderID(order.ID)
		if err != nil {
			return err
		}
		if payment == nil {
			payment = &models.Payment{OrderID: order.ID}
		}
		payment.TransactionID = data.TransactionID
		payment.TransactionStatus = data.TransactionStatus
		payment.FraudStatus = data.FraudStatus
		payment.PaymentType = data.PaymentType
		payment.GrossAmount = gross
		payment.GatewayPayload = payload
		payment.NotifiedAt = &now
		if settled && payment.SettledAt == nil {
			payment.SettledAt = &now
		}
		if payment.ID == 0 {
			if err := paymentRepo.Create(payment); err != nil {
				return err
			}
		} else {
			if err := paymentRepo.Update(payment); err != nil {
				return err
			}
		}

		if nextStatus == "" || nextStatus == order.Status {
			return nil
		}
		// Never regress an order that has already moved past payment.
		if order.Status != constants.OrderStatusPending && nextStatus == constants.OrderStatusPending {
			return nil
		}
		if order.Status == constants.OrderStatusDikirim || order.Status == constants.OrderStatusSelesai {
			return nil
		}

		updates := map[string]interface{}{}
		if settled && order.PaidAt == nil {
			updates["paid_at"] = now
		}
		if nextStatus == constants.OrderStatusDibatalkan {
			updates["canceled_at"] = now
			// Checkout already took the stock, so a gateway-side
			// cancel/deny/expire has to give it back.
			for _, item := range order.Items {
				if err := tx.Model(&models.Product{}).
					Where("id = ?", item.ProductID).
					Update("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
					return err
				}
			}
		}
		if err := s.orderRepo.WithTx(tx).UpdateStatus(order.ID, nextStatus, updates); err != nil {
			return err
		}
		statusChanged = true
		return nil
	})
	if err != nil {
		return err
	}

	if statusChanged {
		if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
			OrderID: order.ID,
			Status:  nextStatus,
		}); err != nil {
			logger.Warnw("order_status_email_enqueue_failed", "order_id", order.ID, "status", nextStatus, "error", err)
		}
	}
	return nil
}
