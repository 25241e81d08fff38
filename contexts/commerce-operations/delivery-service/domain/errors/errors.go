package errors

import "errors"

var (
	ErrShipmentNotFound  = errors.New("shipment not found")
	ErrDuplicateShipment = errors.New("shipment already exists for order")
	ErrGeocodingFailed   = errors.New("address could not be geocoded")
	ErrNoVehicles        = errors.New("no vehicles available for planning")
	ErrNothingToPlan     = errors.New("no geocoded shipments to plan")
)
