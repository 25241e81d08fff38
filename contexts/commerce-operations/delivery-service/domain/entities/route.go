package entities

import "time"

type RouteStatus string

// RoutePlanned is the status every generated route starts in; progressing a
// route is out of this service's write path.
const RoutePlanned RouteStatus = "planned"

// Vehicle is a delivery vehicle available for route planning.
type Vehicle struct {
	VehicleID string
	Plate     string
	Capacity  int
}

// RouteStop is one ordered delivery on a route.
type RouteStop struct {
	ShipmentID string
	Sequence   int
}

// Route is one vehicle's planned delivery run.
type Route struct {
	RouteID          string
	VehicleID        string
	VehiclePlate     string
	Status           RouteStatus
	Stops            []RouteStop
	TotalKM          float64
	EstimatedMinutes int
	GeneratedAt      time.Time
}
