package biteship

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetRates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/rates/couriers" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "biteship-test-key" {
			t.Fatalf("unexpected auth header %s", r.Header.Get("Authorization"))
		}
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request failed: %v", err)
		}
		if body["destination_area_id"] != "IDNP6IDNC148" {
			t.Fatalf("unexpected destination %v", body["destination_area_id"])
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"pricing": [
				{"courier_code":"jne","courier_name":"JNE","courier_service_code":"reg","courier_service_name":"REG","duration":"2-3 days","price":15000},
				{"courier_code":"sicepat","courier_name":"SiCepat","courier_service_code":"best","courier_service_name":"BEST","duration":"1-2 days","price":21000}
			]
		}`))
	}))
	defer server.Close()

	cfg := &Config{APIKey: "biteship-test-key", BaseURL: server.URL}
	rates, err := GetRates(context.Background(), cfg, RateInput{
		OriginAreaID:      "IDNP6IDNC147",
		DestinationAreaID: "IDNP6IDNC148",
		Couriers:          "jne,sicepat",
		Items: []RateItem{
			{Name: "Gitar Akustik", Value: 2000000, Weight: 3500, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("get rates failed: %v", err)
	}
	if len(rates) != 2 {
		t.Fatalf("expected 2 rates, got %d", len(rates))
	}
	if rates[0].CourierCode != "jne" || rates[0].Price != 15000 {
		t.Fatalf("unexpected first rate %+v", rates[0])
	}
}

func TestGetRatesFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":false,"error":"destination not covered"}`))
	}))
	defer server.Close()

	cfg := &Config{APIKey: "biteship-test-key", BaseURL: server.URL}
	_, err := GetRates(context.Background(), cfg, RateInput{
		OriginAreaID:      "a",
		DestinationAreaID: "b",
		Items:             []RateItem{{Name: "x", Weight: 100, Quantity: 1}},
	})
	if !errors.Is(err, ErrResponseInvalid) {
		t.Fatalf("expected ErrResponseInvalid, got %v", err)
	}
}

func TestCreateOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/orders" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request failed: %v", err)
		}
		if body["courier_company"] != "jne" {
			t.Fatalf("unexpected courier %v", body["courier_company"])
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"id":"bs-order-1","courier":{"waybill_id":"JNE123456789"}}`))
	}))
	defer server.Close()

	cfg := &Config{APIKey: "biteship-test-key", BaseURL: server.URL}
	result, err := CreateOrder(context.Background(), cfg, OrderInput{
		Origin:         Contact{Name: "Gudang", Phone: "0812", Address: "Jl. Gudang 1", AreaID: "IDNP6IDNC147"},
		Destination:    Contact{Name: "Budi", Phone: "0813", Address: "Jl. Rumah 2", AreaID: "IDNP6IDNC148"},
		CourierCode:    "jne",
		CourierService: "reg",
		ReferenceNo:    "INV-1",
		Items:          []RateItem{{Name: "Gitar", Weight: 3500, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if result.WaybillID != "JNE123456789" {
		t.Fatalf("unexpected waybill %s", result.WaybillID)
	}
	if result.CarrierOrderID != "bs-order-1" {
		t.Fatalf("unexpected carrier order id %s", result.CarrierOrderID)
	}
}

func TestCreateOrderMissingCourier(t *testing.T) {
	cfg := &Config{APIKey: "k", BaseURL: "https://example.test"}
	_, err := CreateOrder(context.Background(), cfg, OrderInput{})
	if !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid, got %v", err)
	}
}
