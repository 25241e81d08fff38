package services

import (
	"context"
	"log/slog"
	"math"

	"mercurio/contexts/commerce-operations/delivery-service/domain/entities"
	domainerrors "mercurio/contexts/commerce-operations/delivery-service/domain/errors"
	"mercurio/contexts/commerce-operations/delivery-service/ports"
)

const (
	avgSpeedKMH    = 30
	minutesPerStop = 5
	earthRadiusKM  = 6371.0
)

// GreedyPlanner groups shipments into one cluster per vehicle and orders
// each cluster with a nearest-neighbor walk. Distances are haversine
// great-circle kilometers.
type GreedyPlanner struct {
	Logger *slog.Logger
}

func NewGreedyPlanner(logger *slog.Logger) *GreedyPlanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &GreedyPlanner{Logger: logger}
}

func (p *GreedyPlanner) Plan(ctx context.Context, shipments []entities.Shipment, vehicles []entities.Vehicle) ([]ports.PlannedRoute, error) {
	if len(vehicles) == 0 {
		return nil, domainerrors.ErrNoVehicles
	}

	geocoded := make([]entities.Shipment, 0, len(shipments))
	for _, s := range shipments {
		if s.IsGeocoded() {
			geocoded = append(geocoded, s)
		}
	}
	if excluded := len(shipments) - len(geocoded); excluded > 0 {
		p.Logger.Warn("excluding shipments without coordinates",
			"event", "route_planning_shipments_excluded",
			"module", "delivery",
			"excluded", excluded,
		)
	}
	if len(geocoded) == 0 {
		return nil, domainerrors.ErrNothingToPlan
	}

	clusters := clusterShipments(geocoded, len(vehicles))

	routes := make([]ports.PlannedRoute, 0, len(vehicles))
	for i, cluster := range clusters {
		if len(cluster) == 0 {
			continue
		}
		ordered := nearestNeighborOrder(cluster)
		distance := totalDistanceKM(ordered)
		routes = append(routes, ports.PlannedRoute{
			Vehicle:          vehicles[i],
			Shipments:        ordered,
			TotalKM:          math.Round(distance*100) / 100,
			EstimatedMinutes: estimateMinutes(len(ordered), distance),
		})
	}
	return routes, nil
}

// clusterShipments partitions shipments into up to k spatial groups using a
// few Lloyd iterations seeded with evenly spaced shipments. Deterministic
// for a given input order.
func clusterShipments(shipments []entities.Shipment, k int) [][]entities.Shipment {
	if len(shipments) <= k {
		clusters := make([][]entities.Shipment, k)
		for i, s := range shipments {
			clusters[i] = []entities.Shipment{s}
		}
		return clusters
	}

	type point struct{ lat, lon float64 }
	centroids := make([]point, k)
	for i := range centroids {
		seed := shipments[i*len(shipments)/k]
		centroids[i] = point{seed.Latitude, seed.Longitude}
	}

	assignment := make([]int, len(shipments))
	for iter := 0; iter < 10; iter++ {
		changed := false
		for i, s := range shipments {
			best := 0
			bestDist := math.MaxFloat64
			for c, centroid := range centroids {
				d := haversineKM(s.Latitude, s.Longitude, centroid.lat, centroid.lon)
				if d < bestDist {
					bestDist = d
					best = c
				}
			}
			if assignment[i] != best {
				assignment[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}
		sums := make([]point, k)
		counts := make([]int, k)
		for i, s := range shipments {
			c := assignment[i]
			sums[c].lat += s.Latitude
			sums[c].lon += s.Longitude
			counts[c]++
		}
		for c := range centroids {
			if counts[c] > 0 {
				centroids[c] = point{sums[c].lat / float64(counts[c]), sums[c].lon / float64(counts[c])}
			}
		}
	}

	clusters := make([][]entities.Shipment, k)
	for i, s := range shipments {
		clusters[assignment[i]] = append(clusters[assignment[i]], s)
	}
	return clusters
}

// nearestNeighborOrder starts at the first shipment and always moves to the
// nearest unvisited one.
func nearestNeighborOrder(shipments []entities.Shipment) []entities.Shipment {
	if len(shipments) <= 1 {
		return shipments
	}
	ordered := make([]entities.Shipment, 0, len(shipments))
	ordered = append(ordered, shipments[0])
	remaining := make(map[int]struct{}, len(shipments)-1)
	for i := 1; i < len(shipments); i++ {
		remaining[i] = struct{}{}
	}
	for len(remaining) > 0 {
		current := ordered[len(ordered)-1]
		nearest := -1
		nearestDist := math.MaxFloat64
		for idx := range remaining {
			d := haversineKM(current.Latitude, current.Longitude, shipments[idx].Latitude, shipments[idx].Longitude)
			if d < nearestDist || (d == nearestDist && (nearest == -1 || idx < nearest)) {
				nearestDist = d
				nearest = idx
			}
		}
		ordered = append(ordered, shipments[nearest])
		delete(remaining, nearest)
	}
	return ordered
}

func totalDistanceKM(shipments []entities.Shipment) float64 {
	total := 0.0
	for i := 0; i+1 < len(shipments); i++ {
		total += haversineKM(
			shipments[i].Latitude, shipments[i].Longitude,
			shipments[i+1].Latitude, shipments[i+1].Longitude,
		)
	}
	return total
}

func estimateMinutes(stops int, distanceKM float64) int {
	driving := distanceKM / avgSpeedKMH * 60
	return int(driving) + stops*minutesPerStop
}

func haversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKM * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
