// Package deliveryservice turns order facts into shipments and plans
// delivery routes. Geocoding runs as a detached worker after the shipment
// commits; its outcome is a status field on the shipment, never an unobserved
// background failure.
package deliveryservice
