package http

import "time"

type GenerateRoutesRequest struct {
	VehicleIDs []string `json:"vehicle_ids,omitempty"`
}

type RouteResponse struct {
	RouteID          string              `json:"route_id"`
	VehicleID        string              `json:"vehicle_id"`
	VehiclePlate     string              `json:"vehicle_plate"`
	Status           string              `json:"status"`
	Stops            []RouteStopResponse `json:"stops"`
	TotalKM          float64             `json:"total_km"`
	EstimatedMinutes int                 `json:"estimated_minutes"`
	GeneratedAt      time.Time           `json:"generated_at"`
}

type RouteStopResponse struct {
	ShipmentID string `json:"shipment_id"`
	Sequence   int    `json:"sequence"`
}

type GenerateRoutesResponse struct {
	Routes []RouteResponse `json:"routes"`
}

type ShipmentResponse struct {
	ShipmentID        string    `json:"shipment_id"`
	OrderID           string    `json:"order_id"`
	CustomerID        string    `json:"customer_id"`
	DeliveryAddress   string    `json:"delivery_address"`
	DeliveryCity      string    `json:"delivery_city"`
	DeliveryCountry   string    `json:"delivery_country"`
	OrderedAt         time.Time `json:"ordered_at"`
	EstimatedDelivery time.Time `json:"estimated_delivery"`
	Latitude          float64   `json:"latitude,omitempty"`
	Longitude         float64   `json:"longitude,omitempty"`
	GeocodingStatus   string    `json:"geocoding_status"`
	RouteID           string    `json:"route_id,omitempty"`
	SequenceInRoute   int       `json:"sequence_in_route,omitempty"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
