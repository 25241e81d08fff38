package onboardingservice

import (
	"log/slog"

	httpadapter "mercurio/contexts/identity-access/onboarding-service/adapters/http"
	"mercurio/contexts/identity-access/onboarding-service/application/commands"
	"mercurio/contexts/identity-access/onboarding-service/ports"
)

// Module is the composition surface for account onboarding. Runtime wiring
// consumes Handler.
type Module struct {
	Handler httpadapter.Handler
}

type Dependencies struct {
	Identity       ports.IdentityProvider
	ClientProfiles ports.ClientProfileRepository
	SellerProfiles ports.SellerProfileRepository
	SellerGroup    string
	Clock          ports.Clock
	IDGenerator    ports.IDGenerator
	Logger         *slog.Logger
}

// NewModule wires the saga use-cases against explicit ports.
func NewModule(deps Dependencies) Module {
	signupClient := commands.SignupClientUseCase{
		Identity:    deps.Identity,
		Profiles:    deps.ClientProfiles,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	onboardSeller := commands.OnboardSellerUseCase{
		Identity:    deps.Identity,
		Profiles:    deps.SellerProfiles,
		SellerGroup: deps.SellerGroup,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			SignupClient:  signupClient,
			OnboardSeller: onboardSeller,
			Logger:        deps.Logger,
		},
	}
}
