package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"mercurio/contexts/commerce-operations/delivery-service/domain/entities"
	domainerrors "mercurio/contexts/commerce-operations/delivery-service/domain/errors"
	"mercurio/internal/shared/ledger"
)

// LedgerTable is this context's processed-events ledger, separate from the
// sales context's table so both can record the same event_id.
const LedgerTable = "delivery_processed_events"

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

// CreateShipment stores the shipment and marks the event processed in one
// transaction. A concurrent delivery of the same event loses the ledger's
// unique index and rolls the shipment back. The order_id unique index guards
// the other replay shape: the same order arriving under a fresh event_id.
func (r *Repository) CreateShipment(ctx context.Context, shipment entities.Shipment, record ledger.ProcessedEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(shipmentModelFrom(shipment)).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrDuplicateShipment
			}
			return err
		}
		return ledger.NewStoreFor(tx, LedgerTable).MarkAsProcessed(ctx, record)
	})
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *Repository) SetCoordinates(ctx context.Context, shipmentID string, latitude, longitude float64) error {
	return r.updateShipment(ctx, shipmentID, map[string]any{
		"latitude":         latitude,
		"longitude":        longitude,
		"geocoding_status": string(entities.GeocodingComplete),
		"updated_at":       time.Now().UTC(),
	})
}

func (r *Repository) MarkGeocodingFailed(ctx context.Context, shipmentID string) error {
	return r.updateShipment(ctx, shipmentID, map[string]any{
		"geocoding_status": string(entities.GeocodingFailed),
		"updated_at":       time.Now().UTC(),
	})
}

func (r *Repository) updateShipment(ctx context.Context, shipmentID string, fields map[string]any) error {
	result := r.db.WithContext(ctx).
		Model(&shipmentModel{}).
		Where("shipment_id = ?", shipmentID).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrShipmentNotFound
	}
	return nil
}

func (r *Repository) FindByOrderID(ctx context.Context, orderID string) (entities.Shipment, error) {
	var model shipmentModel
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Shipment{}, domainerrors.ErrShipmentNotFound
		}
		return entities.Shipment{}, err
	}
	return model.toEntity(), nil
}

// FindPlannable returns geocoded shipments not yet assigned to a route,
// oldest order first.
func (r *Repository) FindPlannable(ctx context.Context) ([]entities.Shipment, error) {
	var models []shipmentModel
	err := r.db.WithContext(ctx).
		Where("geocoding_status = ? AND route_id = ''", string(entities.GeocodingComplete)).
		Order("ordered_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	shipments := make([]entities.Shipment, 0, len(models))
	for _, model := range models {
		shipments = append(shipments, model.toEntity())
	}
	return shipments, nil
}

func (r *Repository) AssignToRoute(ctx context.Context, routeID string, stops []entities.RouteStop) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		for _, stop := range stops {
			result := tx.Model(&shipmentModel{}).
				Where("shipment_id = ?", stop.ShipmentID).
				Updates(map[string]any{
					"route_id":          routeID,
					"sequence_in_route": stop.Sequence,
					"updated_at":        now,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return domainerrors.ErrShipmentNotFound
			}
		}
		return nil
	})
}

func (r *Repository) SaveRoute(ctx context.Context, route entities.Route) error {
	return r.db.WithContext(ctx).Create(routeModelFrom(route)).Error
}

func (r *Repository) FindByIDs(ctx context.Context, vehicleIDs []string) ([]entities.Vehicle, error) {
	var models []vehicleModel
	err := r.db.WithContext(ctx).
		Where("vehicle_id IN ?", vehicleIDs).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return vehiclesFrom(models), nil
}

func (r *Repository) FindAll(ctx context.Context) ([]entities.Vehicle, error) {
	var models []vehicleModel
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, err
	}
	return vehiclesFrom(models), nil
}

func vehiclesFrom(models []vehicleModel) []entities.Vehicle {
	vehicles := make([]entities.Vehicle, 0, len(models))
	for _, model := range models {
		vehicles = append(vehicles, entities.Vehicle{
			VehicleID: model.VehicleID,
			Plate:     model.Plate,
			Capacity:  model.Capacity,
		})
	}
	return vehicles
}

type shipmentModel struct {
	ShipmentID        string    `gorm:"column:shipment_id;primaryKey"`
	OrderID           string    `gorm:"column:order_id;uniqueIndex"`
	CustomerID        string    `gorm:"column:customer_id;index"`
	Address           string    `gorm:"column:delivery_address"`
	City              string    `gorm:"column:delivery_city"`
	Country           string    `gorm:"column:delivery_country"`
	OrderedAt         time.Time `gorm:"column:ordered_at"`
	EstimatedDelivery time.Time `gorm:"column:estimated_delivery"`
	Latitude          float64   `gorm:"column:latitude"`
	Longitude         float64   `gorm:"column:longitude"`
	GeocodingStatus   string    `gorm:"column:geocoding_status;index"`
	RouteID           string    `gorm:"column:route_id;index"`
	SequenceInRoute   int       `gorm:"column:sequence_in_route"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (shipmentModel) TableName() string {
	return "shipments"
}

func shipmentModelFrom(s entities.Shipment) *shipmentModel {
	return &shipmentModel{
		ShipmentID:        s.ShipmentID,
		OrderID:           s.OrderID,
		CustomerID:        s.CustomerID,
		Address:           s.Address,
		City:              s.City,
		Country:           s.Country,
		OrderedAt:         s.OrderedAt.UTC(),
		EstimatedDelivery: s.EstimatedDelivery.UTC(),
		Latitude:          s.Latitude,
		Longitude:         s.Longitude,
		GeocodingStatus:   string(s.GeocodingStatus),
		RouteID:           s.RouteID,
		SequenceInRoute:   s.SequenceInRoute,
		CreatedAt:         s.CreatedAt.UTC(),
		UpdatedAt:         s.UpdatedAt.UTC(),
	}
}

func (m shipmentModel) toEntity() entities.Shipment {
	return entities.Shipment{
		ShipmentID:        m.ShipmentID,
		OrderID:           m.OrderID,
		CustomerID:        m.CustomerID,
		Address:           m.Address,
		City:              m.City,
		Country:           m.Country,
		OrderedAt:         m.OrderedAt,
		EstimatedDelivery: m.EstimatedDelivery,
		Latitude:          m.Latitude,
		Longitude:         m.Longitude,
		GeocodingStatus:   entities.GeocodingStatus(m.GeocodingStatus),
		RouteID:           m.RouteID,
		SequenceInRoute:   m.SequenceInRoute,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

type routeModel struct {
	RouteID          string    `gorm:"column:route_id;primaryKey"`
	VehicleID        string    `gorm:"column:vehicle_id;index"`
	VehiclePlate     string    `gorm:"column:vehicle_plate"`
	Status           string    `gorm:"column:status"`
	TotalKM          float64   `gorm:"column:total_km"`
	EstimatedMinutes int       `gorm:"column:estimated_minutes"`
	GeneratedAt      time.Time `gorm:"column:generated_at"`
}

func (routeModel) TableName() string {
	return "delivery_routes"
}

func routeModelFrom(r entities.Route) *routeModel {
	return &routeModel{
		RouteID:          r.RouteID,
		VehicleID:        r.VehicleID,
		VehiclePlate:     r.VehiclePlate,
		Status:           string(r.Status),
		TotalKM:          r.TotalKM,
		EstimatedMinutes: r.EstimatedMinutes,
		GeneratedAt:      r.GeneratedAt.UTC(),
	}
}

type vehicleModel struct {
	VehicleID string `gorm:"column:vehicle_id;primaryKey"`
	Plate     string `gorm:"column:plate;uniqueIndex"`
	Capacity  int    `gorm:"column:capacity"`
}

func (vehicleModel) TableName() string {
	return "vehicles"
}
