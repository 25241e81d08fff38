package httpadapter

import (
	"context"
	"log/slog"

	application "mercurio/contexts/identity-access/onboarding-service/application"
	"mercurio/contexts/identity-access/onboarding-service/application/commands"
	httptransport "mercurio/contexts/identity-access/onboarding-service/transport/http"
)

type Handler struct {
	SignupClient  commands.SignupClientUseCase
	OnboardSeller commands.OnboardSellerUseCase
	Logger        *slog.Logger
}

// SignupClientHandler godoc
// @Summary Register a client account
// @Description Creates the identity user and the local client profile as one saga.
// @Tags onboarding
// @Accept json
// @Produce json
// @Param request body httptransport.SignupClientRequest true "Signup data"
// @Success 201 {object} httptransport.SignupResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 502 {object} httptransport.ErrorResponse
// @Failure 503 {object} httptransport.ErrorResponse
// @Router /auth/signup [post]
func (h Handler) SignupClientHandler(ctx context.Context, req httptransport.SignupClientRequest) (httptransport.SignupResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Info("signup request received",
		"event", "http_signup_received",
		"module", "identity-access/onboarding-service",
		"layer", "transport",
	)

	result, err := h.SignupClient.Execute(ctx, commands.SignupClientCommand{
		Email:           req.Email,
		Password:        req.Password,
		Name:            req.Name,
		Phone:           req.Phone,
		InstitutionName: req.InstitutionName,
		InstitutionType: req.InstitutionType,
		TaxID:           req.TaxID,
		Address:         req.Address,
		City:            req.City,
		Country:         req.Country,
		Representative:  req.Representative,
	})
	if err != nil {
		return httptransport.SignupResponse{}, err
	}
	return httptransport.SignupResponse{UserID: result.UserID, Email: result.Email}, nil
}

// OnboardSellerHandler godoc
// @Summary Onboard a seller account
// @Description Creates the identity user, assigns the seller group, and creates the seller profile as one saga.
// @Tags onboarding
// @Accept json
// @Produce json
// @Param request body httptransport.OnboardSellerRequest true "Onboarding data"
// @Success 201 {object} httptransport.SignupResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 502 {object} httptransport.ErrorResponse
// @Failure 503 {object} httptransport.ErrorResponse
// @Router /auth/sellers [post]
func (h Handler) OnboardSellerHandler(ctx context.Context, req httptransport.OnboardSellerRequest) (httptransport.SignupResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Info("seller onboarding request received",
		"event", "http_onboard_seller_received",
		"module", "identity-access/onboarding-service",
		"layer", "transport",
	)

	result, err := h.OnboardSeller.Execute(ctx, commands.OnboardSellerCommand{
		Email:     req.Email,
		Password:  req.Password,
		Name:      req.Name,
		Phone:     req.Phone,
		Territory: req.Territory,
	})
	if err != nil {
		return httptransport.SignupResponse{}, err
	}
	return httptransport.SignupResponse{UserID: result.UserID, Email: result.Email}, nil
}
