package events

import (
	"encoding/json"
	"fmt"
	"time"

	"mercurio/internal/shared/money"
)

// One strongly-typed payload struct exists per event type. Consumers decode
// the full body into the payload for the dispatched type only; unknown event
// types never reach payload decoding.

// OrderItem is one line of a created order.
type OrderItem struct {
	ProductID string       `json:"product_id"`
	Quantity  int          `json:"quantity"`
	UnitPrice money.Amount `json:"unit_price"`
}

// OrderCreated is the fact emitted when the order service commits an order.
// SellerID is empty for orders placed directly by customers.
type OrderCreated struct {
	Head
	OrderID         string       `json:"order_id"`
	CustomerID      string       `json:"customer_id"`
	SellerID        string       `json:"seller_id,omitempty"`
	TotalAmount     money.Amount `json:"total_amount"`
	CreationMethod  string       `json:"creation_method,omitempty"`
	DeliveryAddress string       `json:"delivery_address,omitempty"`
	DeliveryCity    string       `json:"delivery_city,omitempty"`
	DeliveryCountry string       `json:"delivery_country,omitempty"`
	OrderedAt       time.Time    `json:"ordered_at"`
	Items           []OrderItem  `json:"items,omitempty"`
}

// DecodeOrderCreated decodes an order_created body after dispatch.
func DecodeOrderCreated(body []byte) (OrderCreated, error) {
	var payload OrderCreated
	if err := json.Unmarshal(body, &payload); err != nil {
		return OrderCreated{}, fmt.Errorf("decode order_created payload: %w", err)
	}
	if payload.OrderID == "" {
		return OrderCreated{}, fmt.Errorf("order_created payload missing order_id")
	}
	return payload, nil
}

// RouteSummary describes one generated route inside the fact.
type RouteSummary struct {
	RouteID       string `json:"route_id"`
	VehiclePlate  string `json:"vehicle_plate"`
	StopCount     int    `json:"stop_count"`
	TotalKM       string `json:"total_km"`
	EstimatedMins int    `json:"estimated_minutes"`
}

// DeliveryRoutesGenerated is the fact emitted after a route planning run.
type DeliveryRoutesGenerated struct {
	Head
	GeneratedAt time.Time      `json:"generated_at"`
	Routes      []RouteSummary `json:"routes"`
}

// DecodeDeliveryRoutesGenerated decodes a delivery_routes_generated body.
func DecodeDeliveryRoutesGenerated(body []byte) (DeliveryRoutesGenerated, error) {
	var payload DeliveryRoutesGenerated
	if err := json.Unmarshal(body, &payload); err != nil {
		return DeliveryRoutesGenerated{}, fmt.Errorf("decode delivery_routes_generated payload: %w", err)
	}
	return payload, nil
}
