package httpadapter

import (
	"context"
	"log/slog"

	"mercurio/contexts/commerce-operations/delivery-service/application/commands"
	"mercurio/contexts/commerce-operations/delivery-service/domain/entities"
	"mercurio/contexts/commerce-operations/delivery-service/ports"
	httptransport "mercurio/contexts/commerce-operations/delivery-service/transport/http"
)

type Handler struct {
	GenerateRoutes commands.GenerateRoutesUseCase
	Shipments      ports.ShipmentRepository
	Logger         *slog.Logger
}

// GenerateRoutesHandler godoc
// @Summary Plan delivery routes
// @Description Plans routes over the geocoded unassigned shipments and the requested vehicles. Omitting vehicle_ids uses every vehicle.
// @Tags delivery
// @Accept json
// @Produce json
// @Param request body httptransport.GenerateRoutesRequest true "Planning input"
// @Success 202 {object} httptransport.GenerateRoutesResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /delivery/routes/generate [post]
func (h Handler) GenerateRoutesHandler(ctx context.Context, req httptransport.GenerateRoutesRequest) (httptransport.GenerateRoutesResponse, error) {
	routes, err := h.GenerateRoutes.Execute(ctx, req.VehicleIDs)
	if err != nil {
		return httptransport.GenerateRoutesResponse{}, err
	}
	resp := httptransport.GenerateRoutesResponse{Routes: make([]httptransport.RouteResponse, 0, len(routes))}
	for _, route := range routes {
		resp.Routes = append(resp.Routes, toRouteResponse(route))
	}
	return resp, nil
}

// GetShipmentHandler godoc
// @Summary Get a shipment by order id
// @Description Returns the shipment created for an order, including its geocoding status.
// @Tags delivery
// @Produce json
// @Param order_id path string true "Order id"
// @Success 200 {object} httptransport.ShipmentResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /delivery/shipments/{order_id} [get]
func (h Handler) GetShipmentHandler(ctx context.Context, orderID string) (httptransport.ShipmentResponse, error) {
	shipment, err := h.Shipments.FindByOrderID(ctx, orderID)
	if err != nil {
		return httptransport.ShipmentResponse{}, err
	}
	return httptransport.ShipmentResponse{
		ShipmentID:        shipment.ShipmentID,
		OrderID:           shipment.OrderID,
		CustomerID:        shipment.CustomerID,
		DeliveryAddress:   shipment.Address,
		DeliveryCity:      shipment.City,
		DeliveryCountry:   shipment.Country,
		OrderedAt:         shipment.OrderedAt,
		EstimatedDelivery: shipment.EstimatedDelivery,
		Latitude:          shipment.Latitude,
		Longitude:         shipment.Longitude,
		GeocodingStatus:   string(shipment.GeocodingStatus),
		RouteID:           shipment.RouteID,
		SequenceInRoute:   shipment.SequenceInRoute,
	}, nil
}

func toRouteResponse(route entities.Route) httptransport.RouteResponse {
	stops := make([]httptransport.RouteStopResponse, 0, len(route.Stops))
	for _, stop := range route.Stops {
		stops = append(stops, httptransport.RouteStopResponse{
			ShipmentID: stop.ShipmentID,
			Sequence:   stop.Sequence,
		})
	}
	return httptransport.RouteResponse{
		RouteID:          route.RouteID,
		VehicleID:        route.VehicleID,
		VehiclePlate:     route.VehiclePlate,
		Status:           string(route.Status),
		Stops:            stops,
		TotalKM:          route.TotalKM,
		EstimatedMinutes: route.EstimatedMinutes,
		GeneratedAt:      route.GeneratedAt,
	}
}
