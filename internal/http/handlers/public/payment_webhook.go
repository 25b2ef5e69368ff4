package public

import (
	"errors"
	"io"
	"net/http"

	"github.com/tokogitar/tokogitar/internal/payment/midtrans"
	"github.com/tokogitar/tokogitar/internal/service"

	"github.com/gin-gonic/gin"
)

// PaymentNotification receives the gateway's webhook. Unlike the rest of
// the API this endpoint answers the gateway directly with plain HTTP
// status codes, because the gateway retries on anything but 200.
func (h *Handler) PaymentNotification(c *gin.Context) {
	log := requestLog(c)
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Warnw("payment_webhook_body_read_failed", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
		return
	}
	log.Infow("payment_webhook_received",
		"client_ip", c.ClientIP(),
		"body_size", len(body),
	)

	if err := h.PaymentService.HandleNotification(body); err != nil {
		switch {
		case errors.Is(err, midtrans.ErrConfigInvalid):
			log.Errorw("payment_webhook_config_invalid", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "server configuration error"})
		case errors.Is(err, service.ErrWebhookSignature):
			c.JSON(http.StatusForbidden, gin.H{"message": "invalid signature"})
		case errors.Is(err, service.ErrWebhookOrderUnknown):
			c.JSON(http.StatusNotFound, gin.H{"message": "order not found"})
		case errors.Is(err, midtrans.ErrResponseInvalid), errors.Is(err, midtrans.ErrAmountInvalid):
			log.Warnw("payment_webhook_payload_invalid", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload"})
		default:
			log.Errorw("payment_webhook_handle_failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OK"})
}
