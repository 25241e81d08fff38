package ports

import (
	"context"
	"time"

	"mercurio/contexts/identity-access/onboarding-service/domain/entities"
)

// User types accepted by the identity provider.
const (
	UserTypeClient = "client"
	UserTypeSeller = "seller"
)

// NewIdentityUser is the forward input of the create-user saga step.
type NewIdentityUser struct {
	Email    string
	Password string
	Name     string
	UserType string
}

// IdentityUser identifies a created identity record; Username is the handle
// compensation uses to delete it.
type IdentityUser struct {
	UserID   string
	Username string
}

// IdentityProvider is the external identity system the sagas write to. Its
// failures surface as the domain sentinels the saga translates for callers.
type IdentityProvider interface {
	CreateUser(ctx context.Context, user NewIdentityUser) (IdentityUser, error)
	DeleteUser(ctx context.Context, username string) error
	AddUserToGroup(ctx context.Context, username string, group string) error
}

// ClientProfileRepository persists client profile rows.
type ClientProfileRepository interface {
	CreateClientProfile(ctx context.Context, profile entities.ClientProfile) error
}

// SellerProfileRepository persists seller profile rows.
type SellerProfileRepository interface {
	CreateSellerProfile(ctx context.Context, profile entities.SellerProfile) error
}

// Clock allows deterministic testing of created-at stamps.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts profile identifier generation.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
