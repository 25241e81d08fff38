package cognitoadapter

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	cognitotypes "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"

	domainerrors "mercurio/contexts/identity-access/onboarding-service/domain/errors"
	"mercurio/contexts/identity-access/onboarding-service/ports"
)

// CognitoAPI is the slice of the Cognito client the provider depends on.
type CognitoAPI interface {
	SignUp(ctx context.Context, params *cognitoidentityprovider.SignUpInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.SignUpOutput, error)
	AdminDeleteUser(ctx context.Context, params *cognitoidentityprovider.AdminDeleteUserInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.AdminDeleteUserOutput, error)
	AdminAddUserToGroup(ctx context.Context, params *cognitoidentityprovider.AdminAddUserToGroupInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.AdminAddUserToGroupOutput, error)
}

// Provider implements ports.IdentityProvider against AWS Cognito. Provider
// error types become the domain sentinels the sagas translate for callers.
type Provider struct {
	client       CognitoAPI
	userPoolID   string
	clientID     string
	clientSecret string
	logger       *slog.Logger
}

func NewProvider(client CognitoAPI, userPoolID, clientID, clientSecret string, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{
		client:       client,
		userPoolID:   userPoolID,
		clientID:     clientID,
		clientSecret: clientSecret,
		logger:       logger,
	}
}

func (p *Provider) CreateUser(ctx context.Context, user ports.NewIdentityUser) (ports.IdentityUser, error) {
	// The pool aliases email addresses, so the username must not itself be
	// an email; the local part is used as the handle.
	username := strings.SplitN(user.Email, "@", 2)[0]

	input := &cognitoidentityprovider.SignUpInput{
		ClientId: aws.String(p.clientID),
		Username: aws.String(username),
		Password: aws.String(user.Password),
		UserAttributes: []cognitotypes.AttributeType{
			{Name: aws.String("email"), Value: aws.String(user.Email)},
			{Name: aws.String("name"), Value: aws.String(user.Name)},
			{Name: aws.String("custom:user_type"), Value: aws.String(user.UserType)},
		},
	}
	if p.clientSecret != "" {
		input.SecretHash = aws.String(p.secretHash(username))
	}

	out, err := p.client.SignUp(ctx, input)
	if err != nil {
		return ports.IdentityUser{}, p.translateCreateError(err, user.Email)
	}

	created := ports.IdentityUser{
		UserID:   aws.ToString(out.UserSub),
		Username: username,
	}
	p.logger.Info("identity user created",
		"event", "cognito_user_created",
		"module", "identity-access/onboarding-service",
		"layer", "adapter",
		"user_id", created.UserID,
		"username", created.Username,
	)
	return created, nil
}

func (p *Provider) DeleteUser(ctx context.Context, username string) error {
	_, err := p.client.AdminDeleteUser(ctx, &cognitoidentityprovider.AdminDeleteUserInput{
		UserPoolId: aws.String(p.userPoolID),
		Username:   aws.String(username),
	})
	if err != nil {
		return fmt.Errorf("%w: delete user %s: %v", domainerrors.ErrIdentityUnavailable, username, err)
	}

	p.logger.Info("identity user deleted",
		"event", "cognito_user_deleted",
		"module", "identity-access/onboarding-service",
		"layer", "adapter",
		"username", username,
	)
	return nil
}

func (p *Provider) AddUserToGroup(ctx context.Context, username string, group string) error {
	_, err := p.client.AdminAddUserToGroup(ctx, &cognitoidentityprovider.AdminAddUserToGroupInput{
		UserPoolId: aws.String(p.userPoolID),
		Username:   aws.String(username),
		GroupName:  aws.String(group),
	})
	if err != nil {
		return fmt.Errorf("%w: add user %s to group %s: %v", domainerrors.ErrIdentityUnavailable, username, group, err)
	}
	return nil
}

func (p *Provider) translateCreateError(err error, email string) error {
	var exists *cognitotypes.UsernameExistsException
	if errors.As(err, &exists) {
		return domainerrors.ErrEmailTaken
	}
	var weak *cognitotypes.InvalidPasswordException
	if errors.As(err, &weak) {
		return domainerrors.ErrWeakPassword
	}
	var invalid *cognitotypes.InvalidParameterException
	if errors.As(err, &invalid) {
		return domainerrors.ErrInvalidSignupRequest
	}

	p.logger.Error("identity user creation failed",
		"event", "cognito_signup_failed",
		"module", "identity-access/onboarding-service",
		"layer", "adapter",
		"email", email,
		"error", err.Error(),
	)
	return fmt.Errorf("%w: %v", domainerrors.ErrIdentityUnavailable, err)
}

// secretHash is the Cognito client secret proof: HMAC-SHA256 of
// username+clientID keyed with the client secret, base64 encoded.
func (p *Provider) secretHash(username string) string {
	mac := hmac.New(sha256.New, []byte(p.clientSecret))
	mac.Write([]byte(username + p.clientID))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
