package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "mercurio/contexts/identity-access/onboarding-service/application"
	"mercurio/contexts/identity-access/onboarding-service/domain/entities"
	domainerrors "mercurio/contexts/identity-access/onboarding-service/domain/errors"
	"mercurio/contexts/identity-access/onboarding-service/ports"
	"mercurio/internal/shared/saga"
)

type OnboardSellerCommand struct {
	Email     string
	Password  string
	Name      string
	Phone     string
	Territory string
}

type OnboardSellerResult struct {
	UserID string
	Email  string
}

// OnboardSellerUseCase runs the extended three-step saga: identity user,
// authorization group membership, local seller profile. Group membership is
// not separately reversible; deleting the identity user absorbs it, so the
// group step carries no compensation of its own.
type OnboardSellerUseCase struct {
	Identity    ports.IdentityProvider
	Profiles    ports.SellerProfileRepository
	SellerGroup string
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u OnboardSellerUseCase) Execute(ctx context.Context, cmd OnboardSellerCommand) (OnboardSellerResult, error) {
	logger := application.ResolveLogger(u.Logger)
	if strings.TrimSpace(cmd.Email) == "" ||
		strings.TrimSpace(cmd.Password) == "" ||
		strings.TrimSpace(cmd.Name) == "" {
		return OnboardSellerResult{}, domainerrors.ErrInvalidSignupRequest
	}

	logger.Info("seller onboarding started",
		"event", "seller_onboarding_started",
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
					UserType: ports.UserTypeSeller,
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
			Name: "assign_seller_group",
			Run: func(ctx context.Context) error {
				return u.Identity.AddUserToGroup(ctx, identity.Username, u.SellerGroup)
			},
		},
		{
			Name: "create_seller_profile",
			Run: func(ctx context.Context) error {
				profileID, err := u.IDGenerator.NewID(ctx)
				if err != nil {
					return err
				}
				return u.Profiles.CreateSellerProfile(ctx, entities.SellerProfile{
					ProfileID:      profileID,
					IdentityUserID: identity.UserID,
					Email:          cmd.Email,
					Name:           cmd.Name,
					Phone:          cmd.Phone,
					Territory:      cmd.Territory,
					CreatedAt:      u.now(),
				})
			},
		},
	}

	if err := saga.Execute(ctx, logger, "seller_onboarding", steps); err != nil {
		return OnboardSellerResult{}, translateSagaError(err)
	}

	logger.Info("seller onboarding completed",
		"event", "seller_onboarding_completed",
		"module", "identity-access/onboarding-service",
		"layer", "application",
		"user_id", identity.UserID,
	)
	return OnboardSellerResult{UserID: identity.UserID, Email: cmd.Email}, nil
}

func (u OnboardSellerUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
