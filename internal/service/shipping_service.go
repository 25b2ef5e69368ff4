package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tokogitar/tokogitar/internal/cache"
	"github.com/tokogitar/tokogitar/internal/config"
	"github.com/tokogitar/tokogitar/internal/logger"
	"github.com/tokogitar/tokogitar/internal/shipping/biteship"
)

const rateCacheTTL = 5 * time.Minute

// ShippingService quotes courier rates for the open cart.
type ShippingService struct {
	cfg  *config.Config
	cart *CartService
}

// NewShippingService creates the shipping service.
func NewShippingService(cfg *config.Config, cart *CartService) *ShippingService {
	return &ShippingService{
		cfg:  cfg,
		cart: cart,
	}
}

// RateOption is one quoted courier service.
type RateOption struct {
	CourierCode string `json:"courier_code"`
	CourierName string `json:"courier_name"`
	ServiceCode string `json:"service_code"`
	ServiceName string `json:"service_name"`
	Duration    string `json:"duration"`
	Price       int64  `json:"price"`
}

// GetRates quotes courier options for the customer's cart to one area.
// Quotes are cached briefly per destination and weight, since repeated
// checkout page loads would otherwise hammer the aggregator.
func (s *ShippingService) GetRates(ctx context.Context, userID uint, destinationAreaID string) ([]RateOption, error) {
	destinationAreaID = strings.TrimSpace(destinationAreaID)
	if destinationAreaID == "" {
		return nil, ErrDestinationIncomplete
	}
	if strings.TrimSpace(s.cfg.Warehouse.AreaID) == "" {
		return nil, ErrWarehouseNotConfigured
	}

	view, err := s.cart.GetCart(userID)
	if err != nil {
		return nil, err
	}
	if len(view.Lines) == 0 {
		return nil, ErrCartEmpty
	}

	cacheKey := fmt.Sprintf("shipping:rates:%s:%s:%d", s.cfg.Warehouse.AreaID, destinationAreaID, view.TotalWeightGrams)
	var cached []RateOption
	if hit, err := cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	items := make([]biteship.RateItem, 0, len(view.Lines))
	for _, line := range view.Lines {
		items = append(items, biteship.RateItem{
			Name:     line.Name,
			Value:    line.UnitPrice,
			Weight:   line.WeightGrams,
			Quantity: line.Quantity,
		})
	}

	bsCfg := &biteship.Config{
		APIKey:    s.cfg.Biteship.APIKey,
		BaseURL:   s.cfg.Biteship.BaseURL,
		TimeoutMS: s.cfg.Biteship.TimeoutMS,
	}
	rates, err := biteship.GetRates(ctx, bsCfg, biteship.RateInput{
		OriginAreaID:      s.cfg.Warehouse.AreaID,
		DestinationAreaID: destinationAreaID,
		Couriers:          s.cfg.Biteship.Couriers,
		Items:             items,
	})
	if err != nil {
		return nil, err
	}

	options := make([]RateOption, 0, len(rates))
	for _, rate := range rates {
		if rate.Price <= 0 {
			continue
		}
		options = append(options, RateOption{
			CourierCode: rate.CourierCode,
			CourierName: rate.CourierName,
			ServiceCode: rate.ServiceCode,
			ServiceName: rate.ServiceName,
			Duration:    rate.Duration,
			Price:       rate.Price,
		})
	}

	if err := cache.SetJSON(ctx, cacheKey, options, rateCacheTTL); err != nil {
		logger.Warnw("shipping_rate_cache_write_failed", "error", err)
	}
	return options, nil
}
