// Package identity exchanges user credentials for a bearer token against the
// Cognito user pool that fronts the studio API.
package identity

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	cognito "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"

	"playconsole/internal/studio"
)

// TokenIssuer is the authentication contract the surfaces depend on.
type TokenIssuer interface {
	Authenticate(ctx context.Context, username, password string) (string, error)
}

// InitiateAuthAPI is the slice of the Cognito client this package uses.
type InitiateAuthAPI interface {
	InitiateAuth(ctx context.Context, params *cognito.InitiateAuthInput, optFns ...func(*cognito.Options)) (*cognito.InitiateAuthOutput, error)
}

// CognitoAuthenticator performs the USER_PASSWORD_AUTH flow against a user
// pool app client. One attempt per call; login retries are a user decision.
type CognitoAuthenticator struct {
	clientID string
	api      InitiateAuthAPI
}

// NewCognitoAuthenticator builds an authenticator for the given region and
// app client. InitiateAuth with USER_PASSWORD_AUTH needs no AWS credentials.
func NewCognitoAuthenticator(ctx context.Context, region, clientID string) (*CognitoAuthenticator, error) {
	if clientID == "" {
		return nil, fmt.Errorf("identity: client id is required")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("identity: load aws config: %w", err)
	}
	return &CognitoAuthenticator{
		clientID: clientID,
		api:      cognito.NewFromConfig(cfg),
	}, nil
}

// NewCognitoAuthenticatorWithAPI injects the Cognito API, used by tests.
func NewCognitoAuthenticatorWithAPI(clientID string, api InitiateAuthAPI) *CognitoAuthenticator {
	return &CognitoAuthenticator{clientID: clientID, api: api}
}

// Authenticate exchanges username and password for an access token. On any
// failure the caller receives no token and must not proceed to submission.
func (a *CognitoAuthenticator) Authenticate(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", fmt.Errorf("%w: username and password are required", studio.ErrAuth)
	}
	out, err := a.api.InitiateAuth(ctx, &cognito.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(a.clientID),
		AuthParameters: map[string]string{
			"USERNAME": username,
			"PASSWORD": password,
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", studio.ErrAuth, err)
	}
	// A challenge (MFA, forced password reset) leaves AuthenticationResult
	// empty; the console does not drive challenge flows.
	if out.AuthenticationResult == nil || aws.ToString(out.AuthenticationResult.AccessToken) == "" {
		return "", fmt.Errorf("%w: identity provider returned no access token", studio.ErrAuth)
	}
	return aws.ToString(out.AuthenticationResult.AccessToken), nil
}
