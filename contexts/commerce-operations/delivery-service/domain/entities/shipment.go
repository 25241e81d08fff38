package entities

import "time"

// GeocodingStatus tracks the detached geocoding task's outcome on the
// shipment record itself.
type GeocodingStatus string

const (
	GeocodingPending  GeocodingStatus = "pending"
	GeocodingComplete GeocodingStatus = "complete"
	GeocodingFailed   GeocodingStatus = "failed"
)

// Shipment is created from an order_created fact. Coordinates arrive later
// from the geocoding worker; a shipment only joins route planning once
// geocoding completed.
type Shipment struct {
	ShipmentID        string
	OrderID           string
	CustomerID        string
	Address           string
	City              string
	Country           string
	OrderedAt         time.Time
	EstimatedDelivery time.Time
	Latitude          float64
	Longitude         float64
	GeocodingStatus   GeocodingStatus
	RouteID           string
	SequenceInRoute   int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsGeocoded reports whether the shipment has usable coordinates.
func (s Shipment) IsGeocoded() bool {
	return s.GeocodingStatus == GeocodingComplete
}

// EstimateDelivery computes the promised delivery date from the order date.
func EstimateDelivery(orderedAt time.Time, leadTimeDays int) time.Time {
	if leadTimeDays <= 0 {
		leadTimeDays = 3
	}
	return orderedAt.UTC().AddDate(0, 0, leadTimeDays)
}
