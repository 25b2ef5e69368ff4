package midtrans

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tokogitar/tokogitar/internal/constants"
)

var (
	ErrConfigInvalid    = errors.New("midtrans config invalid")
	ErrRequestFailed    = errors.New("midtrans request failed")
	ErrResponseInvalid  = errors.New("midtrans response invalid")
	ErrSignatureInvalid = errors.New("midtrans signature invalid")
	ErrAmountInvalid    = errors.New("midtrans gross amount invalid")
)

// Config holds the gateway credentials for one merchant account.
type Config struct {
	ServerKey string `json:"server_key"`
	ClientKey string `json:"client_key"`
	BaseURL   string `json:"base_url"` // e.g. https://app.sandbox.midtrans.com
	TimeoutMS int    `json:"timeout_ms"`
}

// ValidateConfig checks required credentials.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.ServerKey) == "" {
		return fmt.Errorf("%w: server_key is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return fmt.Errorf("%w: base_url is required", ErrConfigInvalid)
	}
	return nil
}

func (c *Config) normalize() {
	c.ServerKey = strings.TrimSpace(c.ServerKey)
	c.ClientKey = strings.TrimSpace(c.ClientKey)
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.TimeoutMS <= 0 {
		c.TimeoutMS = 15000
	}
}

// SnapInput describes one Snap token request.
type SnapInput struct {
	OrderNo       string
	GrossAmount   int64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	ItemNames     []string
}

// SnapResult is the token handed back to the storefront.
type SnapResult struct {
	Token       string
	RedirectURL string
	Raw         map[string]interface{}
}

// CreateSnapToken requests a hosted payment page token for an order.
func CreateSnapToken(ctx context.Context, cfg *Config, input SnapInput) (*SnapResult, error) {
	if cfg == nil {
		return nil, ErrConfigInvalid
	}
	cfg.normalize()
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if input.OrderNo == "" || input.GrossAmount <= 0 {
		return nil, fmt.Errorf("%w: order_no and gross_amount are required", ErrConfigInvalid)
	}

	params := map[string]interface{}{
		"transaction_details": map[string]interface{}{
			"order_id":     input.OrderNo,
			"gross_amount": input.GrossAmount,
		},
		"customer_details": map[string]interface{}{
			"first_name": input.CustomerName,
			"email":      input.CustomerEmail,
			"phone":      input.CustomerPhone,
		},
	}

	endpoint := cfg.BaseURL + "/snap/v1/transactions"
	respBytes, err := postJSON(ctx, cfg, endpoint, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	var resp struct {
		Token       string   `json:"token"`
		RedirectURL string   `json:"redirect_url"`
		Errors      []string `json:"error_messages"`
	}
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrResponseInvalid, strings.Join(resp.Errors, "; "))
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrResponseInvalid)
	}

	var raw map[string]interface{}
	_ = json.Unmarshal(respBytes, &raw)

	return &SnapResult{
		Token:       resp.Token,
		RedirectURL: resp.RedirectURL,
		Raw:         raw,
	}, nil
}

// Notification is the webhook payload posted by the gateway.
type Notification struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionID     string `json:"transaction_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
	TransactionTime   string `json:"transaction_time"`
}

// ParseNotification decodes a webhook body.
func ParseNotification(body []byte) (*Notification, error) {
	if len(body) == 0 {
		return nil, ErrResponseInvalid
	}
	var data Notification
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if data.OrderID == "" || data.TransactionStatus == "" {
		return nil, fmt.Errorf("%w: missing order_id or transaction_status", ErrResponseInvalid)
	}
	return &data, nil
}

// Sign computes the notification signature:
// SHA-512 hex of order_id + status_code + gross_amount + server key.
func Sign(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

// VerifyNotification checks the webhook signature in constant time.
func VerifyNotification(cfg *Config, data *Notification) error {
	if cfg == nil || data == nil {
		return ErrConfigInvalid
	}
	expected := Sign(data.OrderID, data.StatusCode, data.GrossAmount, strings.TrimSpace(cfg.ServerKey))
	provided := strings.ToLower(strings.TrimSpace(data.SignatureKey))
	if subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) != 1 {
		return ErrSignatureInvalid
	}
	return nil
}

// ParseGrossAmount converts the gateway's decimal string ("2015000.00")
// to whole rupiah. Fractional parts other than .00 are rejected.
func ParseGrossAmount(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrAmountInvalid
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrAmountInvalid, err)
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("%w: fractional rupiah %s", ErrAmountInvalid, raw)
	}
	if !d.IsPositive() {
		return 0, fmt.Errorf("%w: non-positive amount %s", ErrAmountInvalid, raw)
	}
	return d.IntPart(), nil
}

// ToOrderStatus maps a gateway transaction state onto the order lifecycle.
// Unknown statuses map to empty, meaning the order is left untouched.
func ToOrderStatus(transactionStatus, fraudStatus string) string {
	switch strings.ToLower(strings.TrimSpace(transactionStatus)) {
	case constants.PaymentStatusCapture:
		if strings.EqualFold(strings.TrimSpace(fraudStatus), constants.FraudStatusChallenge) {
			return constants.OrderStatusPending
		}
		return constants.OrderStatusDikemas
	case constants.PaymentStatusSettlement:
		return constants.OrderStatusDikemas
	case constants.PaymentStatusCancel, constants.PaymentStatusDeny, constants.PaymentStatusExpire:
		return constants.OrderStatusDibatalkan
	case constants.PaymentStatusPending:
		return constants.OrderStatusPending
	default:
		return ""
	}
}

// IsSettled reports whether the notification represents captured money.
func IsSettled(transactionStatus, fraudStatus string) bool {
	status := strings.ToLower(strings.TrimSpace(transactionStatus))
	if status == constants.PaymentStatusSettlement {
		return true
	}
	return status == constants.PaymentStatusCapture &&
		strings.EqualFold(strings.TrimSpace(fraudStatus), constants.FraudStatusAccept)
}

func postJSON(ctx context.Context, cfg *Config, endpoint string, params map[string]interface{}) ([]byte, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(cfg.ServerKey+":")))

	client := &http.Client{Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("http status %d: %s", resp.StatusCode, truncate(payload, 300))
	}
	return payload, nil
}

func truncate(b []byte, limit int) string {
	if len(b) <= limit {
		return string(b)
	}
	return string(b[:limit]) + "..."
}
