package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	application "mercurio/contexts/identity-access/onboarding-service/application"
	"mercurio/contexts/identity-access/onboarding-service/domain/entities"
	domainerrors "mercurio/contexts/identity-access/onboarding-service/domain/errors"
	"mercurio/contexts/identity-access/onboarding-service/ports"
	"mercurio/internal/shared/saga"
)

type SignupClientCommand struct {
	Email           string
	Password        string
	Name            string
	Phone           string
	InstitutionName string
	InstitutionType string
	TaxID           string
	Address         string
	City            string
	Country         string
	Representative  string
}

type SignupClientResult struct {
	UserID string
	Email  string
}

// SignupClientUseCase runs the two-step account-creation saga: identity user
// first, local client profile second. A profile failure deletes the identity
// user so a retry of the whole signup starts clean.
type SignupClientUseCase struct {
	Identity    ports.IdentityProvider
	Profiles    ports.ClientProfileRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u SignupClientUseCase) Execute(ctx context.Context, cmd SignupClientCommand) (SignupClientResult, error) {
	logger := application.ResolveLogger(u.Logger)
	if strings.TrimSpace(cmd.Email) == "" ||
		strings.TrimSpace(cmd.Password) == "" ||
		strings.TrimSpace(cmd.Name) == "" {
		return SignupClientResult{}, domainerrors.ErrInvalidSignupRequest
	}

	logger.Info("client signup started",
		"event", "client_signup_started",
		"module", "identity-access/onboarding-service",
		"layer", "application",
		"email", cmd.Email,
	)

	var identity ports.IdentityUser
	steps := []saga.Step{
		{
			Name: "create_identity_user",
			Run: func(ctx context.Context) error {
				created, err := u.Identity.CreateUser(ctx, ports.NewIdentityUser{
					Email:    cmd.Email,
					Password: cmd.Password,
					Name:     cmd.Name,
					UserType: ports.UserTypeClient,
				})
				if err != nil {
					return err
				}
				identity = created
				return nil
			},
			Compensate: func(ctx context.Context) error {
				return u.Identity.DeleteUser(ctx, identity.Username)
			},
		},
		{
			Name: "create_client_profile",
			Run: func(ctx context.Context) error {
				profileID, err := u.IDGenerator.NewID(ctx)
				if err != nil {
					return err
				}
				return u.Profiles.CreateClientProfile(ctx, entities.ClientProfile{
					ProfileID:       profileID,
					IdentityUserID:  identity.UserID,
					Email:           cmd.Email,
					Phone:           cmd.Phone,
					InstitutionName: cmd.InstitutionName,
					InstitutionType: cmd.InstitutionType,
					TaxID:           cmd.TaxID,
					Address:         cmd.Address,
					City:            cmd.City,
					Country:         cmd.Country,
					Representative:  cmd.Representative,
					CreatedAt:       u.now(),
				})
			},
		},
	}

	if err := saga.Execute(ctx, logger, "client_signup", steps); err != nil {
		return SignupClientResult{}, translateSagaError(err)
	}

	logger.Info("client signup completed",
		"event", "client_signup_completed",
		"module", "identity-access/onboarding-service",
		"layer", "application",
		"user_id", identity.UserID,
	)
	return SignupClientResult{UserID: identity.UserID, Email: cmd.Email}, nil
}

func (u SignupClientUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

// translateSagaError maps a failed saga to the single caller-facing error
// kind for the originating step, independent of compensation outcome.
func translateSagaError(err error) error {
	switch {
	case errors.Is(err, domainerrors.ErrEmailTaken),
		errors.Is(err, domainerrors.ErrProfileExists):
		return domainerrors.ErrEmailTaken
	case errors.Is(err, domainerrors.ErrWeakPassword):
		return domainerrors.ErrWeakPassword
	case errors.Is(err, domainerrors.ErrInvalidSignupRequest):
		return domainerrors.ErrInvalidSignupRequest
	case errors.Is(err, domainerrors.ErrIdentityUnavailable):
		return domainerrors.ErrIdentityUnavailable
	default:
		return domainerrors.ErrRegistrationFailed
	}
}
