package cognitoadapter

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	cognitotypes "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"

	domainerrors "mercurio/contexts/identity-access/onboarding-service/domain/errors"
	"mercurio/contexts/identity-access/onboarding-service/ports"
)

type fakeCognito struct {
	signUpInput *cognitoidentityprovider.SignUpInput
	signUpErr   error
	deleteInput *cognitoidentityprovider.AdminDeleteUserInput
	deleteErr   error
	groupInput  *cognitoidentityprovider.AdminAddUserToGroupInput
	groupErr    error
	returnedSub string
}

func (f *fakeCognito) SignUp(_ context.Context, params *cognitoidentityprovider.SignUpInput, _ ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.SignUpOutput, error) {
	f.signUpInput = params
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return &cognitoidentityprovider.SignUpOutput{UserSub: aws.String(f.returnedSub)}, nil
}

func (f *fakeCognito) AdminDeleteUser(_ context.Context, params *cognitoidentityprovider.AdminDeleteUserInput, _ ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.AdminDeleteUserOutput, error) {
	f.deleteInput = params
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return &cognitoidentityprovider.AdminDeleteUserOutput{}, nil
}

func (f *fakeCognito) AdminAddUserToGroup(_ context.Context, params *cognitoidentityprovider.AdminAddUserToGroupInput, _ ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.AdminAddUserToGroupOutput, error) {
	f.groupInput = params
	if f.groupErr != nil {
		return nil, f.groupErr
	}
	return &cognitoidentityprovider.AdminAddUserToGroupOutput{}, nil
}

func newUser() ports.NewIdentityUser {
	return ports.NewIdentityUser{
		Email:    "ana@example.com",
		Password: "S3cret!pass",
		Name:     "Ana",
		UserType: "client",
	}
}

func TestCreateUserUsesEmailLocalPartAsUsername(t *testing.T) {
	client := &fakeCognito{returnedSub: "sub-123"}
	provider := NewProvider(client, "pool-1", "client-1", "", nil)

	created, err := provider.CreateUser(context.Background(), newUser())
	if err != nil {
		t.Fatalf("CreateUser() = %v, want nil", err)
	}
	if created.UserID != "sub-123" || created.Username != "ana" {
		t.Errorf("created = %+v, want sub-123/ana", created)
	}
	if got := aws.ToString(client.signUpInput.Username); got != "ana" {
		t.Errorf("SignUp username = %q, want ana", got)
	}
	if client.signUpInput.SecretHash != nil {
		t.Errorf("SecretHash set without a client secret")
	}
}

func TestCreateUserComputesSecretHash(t *testing.T) {
	client := &fakeCognito{returnedSub: "sub-123"}
	provider := NewProvider(client, "pool-1", "client-1", "shh", nil)

	if _, err := provider.CreateUser(context.Background(), newUser()); err != nil {
		t.Fatalf("CreateUser() = %v, want nil", err)
	}

	mac := hmac.New(sha256.New, []byte("shh"))
	mac.Write([]byte("ana" + "client-1"))
	want := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	if got := aws.ToString(client.signUpInput.SecretHash); got != want {
		t.Errorf("SecretHash = %q, want %q", got, want)
	}
}

func TestCreateUserTranslatesCognitoErrors(t *testing.T) {
	cases := []struct {
		name    string
		apiErr  error
		wantErr error
	}{
		{"username exists", &cognitotypes.UsernameExistsException{}, domainerrors.ErrEmailTaken},
		{"weak password", &cognitotypes.InvalidPasswordException{}, domainerrors.ErrWeakPassword},
		{"invalid parameter", &cognitotypes.InvalidParameterException{}, domainerrors.ErrInvalidSignupRequest},
		{"transport failure", errors.New("dial tcp: timeout"), domainerrors.ErrIdentityUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := &fakeCognito{signUpErr: tc.apiErr}
			provider := NewProvider(client, "pool-1", "client-1", "", nil)

			_, err := provider.CreateUser(context.Background(), newUser())
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("CreateUser() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestDeleteUser(t *testing.T) {
	client := &fakeCognito{}
	provider := NewProvider(client, "pool-1", "client-1", "", nil)

	if err := provider.DeleteUser(context.Background(), "ana"); err != nil {
		t.Fatalf("DeleteUser() = %v, want nil", err)
	}
	if got := aws.ToString(client.deleteInput.UserPoolId); got != "pool-1" {
		t.Errorf("UserPoolId = %q, want pool-1", got)
	}
	if got := aws.ToString(client.deleteInput.Username); got != "ana" {
		t.Errorf("Username = %q, want ana", got)
	}

	client.deleteErr = errors.New("access denied")
	if err := provider.DeleteUser(context.Background(), "ana"); !errors.Is(err, domainerrors.ErrIdentityUnavailable) {
		t.Fatalf("DeleteUser() = %v, want ErrIdentityUnavailable", err)
	}
}

func TestAddUserToGroup(t *testing.T) {
	client := &fakeCognito{}
	provider := NewProvider(client, "pool-1", "client-1", "", nil)

	if err := provider.AddUserToGroup(context.Background(), "ana", "seller_users"); err != nil {
		t.Fatalf("AddUserToGroup() = %v, want nil", err)
	}
	if got := aws.ToString(client.groupInput.GroupName); got != "seller_users" {
		t.Errorf("GroupName = %q, want seller_users", got)
	}

	client.groupErr = errors.New("group not found")
	if err := provider.AddUserToGroup(context.Background(), "ana", "seller_users"); !errors.Is(err, domainerrors.ErrIdentityUnavailable) {
		t.Fatalf("AddUserToGroup() = %v, want ErrIdentityUnavailable", err)
	}
}
