package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	deliveryservice "mercurio/contexts/commerce-operations/delivery-service"
	deliveryentities "mercurio/contexts/commerce-operations/delivery-service/domain/entities"
	deliveryerrors "mercurio/contexts/commerce-operations/delivery-service/domain/errors"
	onboardingservice "mercurio/contexts/identity-access/onboarding-service"
	onboardingentities "mercurio/contexts/identity-access/onboarding-service/domain/entities"
	onboardingerrors "mercurio/contexts/identity-access/onboarding-service/domain/errors"
	onboardingports "mercurio/contexts/identity-access/onboarding-service/ports"
	"mercurio/internal/shared/ledger"
)

type stubIdentity struct {
	createErr error
}

func (s stubIdentity) CreateUser(_ context.Context, _ onboardingports.NewIdentityUser) (onboardingports.IdentityUser, error) {
	if s.createErr != nil {
		return onboardingports.IdentityUser{}, s.createErr
	}
	return onboardingports.IdentityUser{UserID: "idp-1", Username: "ana"}, nil
}

func (s stubIdentity) DeleteUser(context.Context, string) error { return nil }

func (s stubIdentity) AddUserToGroup(context.Context, string, string) error { return nil }

type stubProfiles struct{}

func (stubProfiles) CreateClientProfile(context.Context, onboardingentities.ClientProfile) error {
	return nil
}

func (stubProfiles) CreateSellerProfile(context.Context, onboardingentities.SellerProfile) error {
	return nil
}

type stubShipments struct {
	shipments map[string]deliveryentities.Shipment
}

func (s stubShipments) FindByOrderID(_ context.Context, orderID string) (deliveryentities.Shipment, error) {
	shipment, ok := s.shipments[orderID]
	if !ok {
		return deliveryentities.Shipment{}, deliveryerrors.ErrShipmentNotFound
	}
	return shipment, nil
}

func (s stubShipments) CreateShipment(context.Context, deliveryentities.Shipment, ledger.ProcessedEvent) error {
	return nil
}

func (s stubShipments) SetCoordinates(context.Context, string, float64, float64) error { return nil }
func (s stubShipments) MarkGeocodingFailed(context.Context, string) error              { return nil }

func (s stubShipments) FindPlannable(context.Context) ([]deliveryentities.Shipment, error) {
	return nil, nil
}

func (s stubShipments) AssignToRoute(context.Context, string, []deliveryentities.RouteStop) error {
	return nil
}

func (s stubShipments) HasBeenProcessed(context.Context, string) (bool, error) { return false, nil }

type stubVehicles struct{}

func (stubVehicles) FindByIDs(context.Context, []string) ([]deliveryentities.Vehicle, error) {
	return nil, nil
}

func (stubVehicles) FindAll(context.Context) ([]deliveryentities.Vehicle, error) { return nil, nil }

type stubRoutes struct{}

func (stubRoutes) SaveRoute(context.Context, deliveryentities.Route) error { return nil }

type stubGeocoder struct{}

func (stubGeocoder) Geocode(context.Context, string, string, string) (float64, float64, error) {
	return 0, 0, nil
}

type stubClock struct{}

func (stubClock) Now() time.Time { return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC) }

type stubIDs struct{}

func (stubIDs) NewID() string { return "id-1" }

type onboardingIDs struct{}

func (onboardingIDs) NewID(context.Context) (string, error) { return "profile-1", nil }

func newTestServer(identity stubIdentity, shipments stubShipments) *Server {
	onboarding := onboardingservice.NewModule(onboardingservice.Dependencies{
		Identity:       identity,
		ClientProfiles: stubProfiles{},
		SellerProfiles: stubProfiles{},
		SellerGroup:    "seller_users",
		Clock:          stubClock{},
		IDGenerator:    onboardingIDs{},
	})
	delivery := deliveryservice.NewModule(deliveryservice.Dependencies{
		Shipments:   shipments,
		Vehicles:    stubVehicles{},
		Routes:      stubRoutes{},
		Geocoder:    stubGeocoder{},
		Ledger:      shipments,
		Clock:       stubClock{},
		IDGenerator: stubIDs{},
	})
	return New(onboarding, delivery, nil, ":0")
}

func TestSignupClientReturnsCreated(t *testing.T) {
	server := newTestServer(stubIdentity{}, stubShipments{})
	body := []byte(`{"email":"ana@example.com","password":"S3cret!pass","name":"Ana"}`)

	req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
}

type errorBody struct {
	Code string `json:"code"`
}

func TestSignupClientMapsEmailTaken(t *testing.T) {
	server := newTestServer(stubIdentity{createErr: onboardingerrors.ErrEmailTaken}, stubShipments{})
	body := []byte(`{"email":"ana@example.com","password":"S3cret!pass","name":"Ana"}`)

	req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}
	var resp errorBody
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if resp.Code != "email_taken" {
		t.Errorf("error code = %q, want email_taken", resp.Code)
	}
}

func TestSignupClientRejectsInvalidJSON(t *testing.T) {
	server := newTestServer(stubIdentity{}, stubShipments{})

	req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewReader([]byte(`{"email":`)))
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestGetShipmentNotFound(t *testing.T) {
	server := newTestServer(stubIdentity{}, stubShipments{})

	req := httptest.NewRequest(http.MethodGet, "/delivery/shipments/ord-404", nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestGetShipmentReturnsGeocodingStatus(t *testing.T) {
	shipments := stubShipments{shipments: map[string]deliveryentities.Shipment{
		"ord-1": {
			ShipmentID:      "shp-1",
			OrderID:         "ord-1",
			GeocodingStatus: deliveryentities.GeocodingComplete,
		},
	}}
	server := newTestServer(stubIdentity{}, shipments)

	req := httptest.NewRequest(http.MethodGet, "/delivery/shipments/ord-1", nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var resp struct {
		GeocodingStatus string `json:"geocoding_status"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.GeocodingStatus != "complete" {
		t.Errorf("geocoding_status = %q, want complete", resp.GeocodingStatus)
	}
}

func TestGenerateRoutesAcceptsEmptyBody(t *testing.T) {
	server := newTestServer(stubIdentity{}, stubShipments{})

	req := httptest.NewRequest(http.MethodPost, "/delivery/routes/generate", nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	// No plannable shipments: the command is a no-op and the request is
	// still accepted.
	if rr.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d body=%s", rr.Code, rr.Body.String())
	}
}
