package biteship

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	ErrConfigInvalid   = errors.New("biteship config invalid")
	ErrRequestFailed   = errors.New("biteship request failed")
	ErrResponseInvalid = errors.New("biteship response invalid")
)

// Config holds the aggregator credentials.
type Config struct {
	APIKey    string `json:"api_key"`
	BaseURL   string `json:"base_url"` // e.g. https://api.biteship.com
	TimeoutMS int    `json:"timeout_ms"`
}

// ValidateConfig checks required credentials.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return fmt.Errorf("%w: api_key is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return fmt.Errorf("%w: base_url is required", ErrConfigInvalid)
	}
	return nil
}

func (c *Config) normalize() {
	c.APIKey = strings.TrimSpace(c.APIKey)
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.TimeoutMS <= 0 {
		c.TimeoutMS = 15000
	}
}

// RateItem is one parcel line for a quote.
type RateItem struct {
	Name     string `json:"name"`
	Value    int64  `json:"value"`
	Weight   int    `json:"weight"`
	Quantity int    `json:"quantity"`
}

// RateInput describes one courier rate lookup.
type RateInput struct {
	OriginAreaID      string
	DestinationAreaID string
	Couriers          string // comma separated courier codes
	Items             []RateItem
}

// Rate is one courier service offer.
type Rate struct {
	CourierCode    string `json:"courier_code"`
	CourierName    string `json:"courier_name"`
	ServiceCode    string `json:"courier_service_code"`
	ServiceName    string `json:"courier_service_name"`
	Description    string `json:"description"`
	Duration       string `json:"duration"`
	Price          int64  `json:"price"`
}

// GetRates asks the aggregator for courier offers between two areas.
func GetRates(ctx context.Context, cfg *Config, input RateInput) ([]Rate, error) {
	if cfg == nil {
		return nil, ErrConfigInvalid
	}
	cfg.normalize()
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if input.OriginAreaID == "" || input.DestinationAreaID == "" {
		return nil, fmt.Errorf("%w: origin and destination area ids are required", ErrConfigInvalid)
	}
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", ErrConfigInvalid)
	}

	params := map[string]interface{}{
		"origin_area_id":      input.OriginAreaID,
		"destination_area_id": input.DestinationAreaID,
		"couriers":            input.Couriers,
		"items":               input.Items,
	}

	endpoint := cfg.BaseURL + "/v1/rates/couriers"
	respBytes, err := postJSON(ctx, cfg, endpoint, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
		Pricing []Rate `json:"pricing"`
	}
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("%w: %s", ErrResponseInvalid, resp.Error)
	}
	return resp.Pricing, nil
}

// Contact is one end of a shipment order.
type Contact struct {
	Name       string
	Phone      string
	Address    string
	AreaID     string
	PostalCode string
}

// OrderInput describes one label issuance request.
type OrderInput struct {
	Origin         Contact
	Destination    Contact
	CourierCode    string
	CourierService string
	ReferenceNo    string
	Items          []RateItem
}

// OrderResult carries the issued waybill.
type OrderResult struct {
	CarrierOrderID string
	WaybillID      string
	Raw            map[string]interface{}
}

// CreateOrder books a courier pickup and returns the waybill number.
func CreateOrder(ctx context.Context, cfg *Config, input OrderInput) (*OrderResult, error) {
	if cfg == nil {
		return nil, ErrConfigInvalid
	}
	cfg.normalize()
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if input.CourierCode == "" || input.CourierService == "" {
		return nil, fmt.Errorf("%w: courier code and service are required", ErrConfigInvalid)
	}
	if input.Destination.AreaID == "" {
		return nil, fmt.Errorf("%w: destination area id is required", ErrConfigInvalid)
	}

	params := map[string]interface{}{
		"origin_contact_name":       input.Origin.Name,
		"origin_contact_phone":      input.Origin.Phone,
		"origin_address":            input.Origin.Address,
		"origin_area_id":            input.Origin.AreaID,
		"origin_postal_code":        input.Origin.PostalCode,
		"destination_contact_name":  input.Destination.Name,
		"destination_contact_phone": input.Destination.Phone,
		"destination_address":       input.Destination.Address,
		"destination_area_id":       input.Destination.AreaID,
		"destination_postal_code":   input.Destination.PostalCode,
		"courier_company":           input.CourierCode,
		"courier_type":              input.CourierService,
		"reference_id":              input.ReferenceNo,
		"delivery_type":             "now",
		"items":                     input.Items,
	}

	endpoint := cfg.BaseURL + "/v1/orders"
	respBytes, err := postJSON(ctx, cfg, endpoint, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
		ID      string `json:"id"`
		Courier struct {
			WaybillID string `json:"waybill_id"`
		} `json:"courier"`
	}
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("%w: %s", ErrResponseInvalid, resp.Error)
	}
	if resp.Courier.WaybillID == "" {
		return nil, fmt.Errorf("%w: empty waybill id", ErrResponseInvalid)
	}

	var raw map[string]interface{}
	_ = json.Unmarshal(respBytes, &raw)

	return &OrderResult{
		CarrierOrderID: resp.ID,
		WaybillID:      resp.Courier.WaybillID,
		Raw:            raw,
	}, nil
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
	req.Header.Set("Authorization", cfg.APIKey)

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
