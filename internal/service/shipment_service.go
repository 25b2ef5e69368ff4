package service

import (
	"context"
	"strings"
	"time"

	"github.com/tokogitar/tokogitar/internal/config"
	"github.com/tokogitar/tokogitar/internal/constants"
	"github.com/tokogitar/tokogitar/internal/logger"
	"github.com/tokogitar/tokogitar/internal/models"
	"github.com/tokogitar/tokogitar/internal/queue"
	"github.com/tokogitar/tokogitar/internal/repository"
	"github.com/tokogitar/tokogitar/internal/shipping/biteship"

	"gorm.io/gorm"
)

// ShipmentService issues courier labels for paid orders.
type ShipmentService struct {
	cfg          *config.Config
	orderRepo    repository.OrderRepository
	shipmentRepo repository.ShipmentRepository
	queueClient  *queue.Client
}

// NewShipmentService creates the shipment service.
func NewShipmentService(
	cfg *config.Config,
	orderRepo repository.OrderRepository,
	shipmentRepo repository.ShipmentRepository,
	queueClient *queue.Client,
) *ShipmentService {
	return &ShipmentService{
		cfg:          cfg,
		orderRepo:    orderRepo,
		shipmentRepo: shipmentRepo,
		queueClient:  queueClient,
	}
}

func (s *ShipmentService) carrierConfig() *biteship.Config {
	return &biteship.Config{
		APIKey:    s.cfg.Biteship.APIKey,
		BaseURL:   s.cfg.Biteship.BaseURL,
		TimeoutMS: s.cfg.Biteship.TimeoutMS,
	}
}

// IssueLabel books a courier pickup for a packed order and records the
// waybill number. Only DIKEMAS orders qualify, and a shipment that already
// carries a resi is never booked twice.
func (s *ShipmentService) IssueLabel(ctx context.Context, orderID uint) (*models.Shipment, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusDikemas {
		return nil, ErrOrderStatusInvalid
	}

	shipment, err := s.shipmentRepo.GetByOrderID(order.ID)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, ErrShipmentNotFound
	}
	if shipment.Resi != "" {
		return nil, ErrResiAlreadyIssued
	}
	if strings.TrimSpace(shipment.AreaID) == "" {
		return nil, ErrDestinationIncomplete
	}

	warehouse := s.cfg.Warehouse
	if strings.TrimSpace(warehouse.AreaID) == "" {
		return nil, ErrWarehouseNotConfigured
	}

	input := biteship.OrderInput{
		Origin: biteship.Contact{
			Name:       warehouse.ContactName,
			Phone:      warehouse.ContactPhone,
			Address:    warehouse.Address,
			AreaID:     warehouse.AreaID,
			PostalCode: warehouse.PostalCode,
		},
		Destination: biteship.Contact{
			Name:       shipment.RecipientName,
			Phone:      shipment.RecipientPhone,
			Address:    shipment.Address,
			AreaID:     shipment.AreaID,
			PostalCode: shipment.PostalCode,
		},
		CourierCode:    shipment.CourierCode,
		CourierService: shipment.CourierService,
		ReferenceNo:    order.OrderNo,
	}
	for _, item := range order.Items {
		input.Items = append(input.Items, biteship.RateItem{
			Name:     item.ProductName,
			Value:    item.UnitPrice,
			Weight:   item.WeightGrams,
			Quantity: item.Quantity,
		})
	}

	result, err := biteship.CreateOrder(ctx, s.carrierConfig(), input)
	if err != nil {
		logger.Warnw("shipment_label_request_failed", "order_no", order.OrderNo, "error", err)
		return nil, ErrLabelIssueFailed
	}

	now := time.Now()
	shipment.Resi = result.WaybillID
	shipment.CarrierOrderID = result.CarrierOrderID
	shipment.Status = constants.ShipmentStatusConfirmed
	shipment.LabelIssuedAt = &now

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.shipmentRepo.WithTx(tx).Update(shipment); err != nil {
			return err
		}
		return s.orderRepo.WithTx(tx).UpdateStatus(order.ID, constants.OrderStatusDikirim, nil)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("shipment_label_issued",
		"order_no", order.OrderNo,
		"courier", shipment.CourierCode,
		"resi", shipment.Resi,
	)

	if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: order.ID,
		Status:  constants.OrderStatusDikirim,
	}); err != nil {
		logger.Warnw("order_status_email_enqueue_failed", "order_id", order.ID, "error", err)
	}

	return shipment, nil
}

// LabelView is the data rendered on a printable shipping label.
type LabelView struct {
	OrderNo        string `json:"order_no"`
	Resi           string `json:"resi"`
	CourierCode    string `json:"courier_code"`
	CourierService string `json:"courier_service"`
	RecipientName  string `json:"recipient_name"`
	RecipientPhone string `json:"recipient_phone"`
	Address        string `json:"address"`
	PostalCode     string `json:"postal_code"`
	SenderName     string `json:"sender_name"`
	SenderPhone    string `json:"sender_phone"`
	SenderAddress  string `json:"sender_address"`
	WeightGrams    int    `json:"weight_grams"`
}

// GetLabel returns the printable label data for an order whose resi exists.
func (s *ShipmentService) GetLabel(orderID uint) (*LabelView, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	shipment, err := s.shipmentRepo.GetByOrderID(order.ID)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, ErrShipmentNotFound
	}
	if shipment.Resi == "" {
		return nil, ErrShipmentNotFound
	}

	warehouse := s.cfg.Warehouse
	return &LabelView{
		OrderNo:        order.OrderNo,
		Resi:           shipment.Resi,
		CourierCode:    shipment.CourierCode,
		CourierService: shipment.CourierService,
		RecipientName:  shipment.RecipientName,
		RecipientPhone: shipment.RecipientPhone,
		Address:        shipment.Address,
		PostalCode:     shipment.PostalCode,
		SenderName:     warehouse.ContactName,
		SenderPhone:    warehouse.ContactPhone,
		SenderAddress:  warehouse.Address,
		WeightGrams:    shipment.TotalWeightGrams,
	}, nil
}
