package idp

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"
	"github.com/yukikurage/org-user-api/internal/config"
	apierrors "github.com/yukikurage/org-user-api/internal/errors"
	"go.uber.org/zap"
)

type errorKind int

const (
	kindUnknown errorKind = iota
	kindAccountExists
	kindAccountNotFound
)

// cognitoErrorCodes maps Cognito API error codes to the kinds the gateway
// translates into domain errors.
var cognitoErrorCodes = map[string]errorKind{
	"UsernameExistsException": kindAccountExists,
	"UserNotFoundException":   kindAccountNotFound,
}

func classify(err error) errorKind {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return cognitoErrorCodes[apiErr.ErrorCode()]
	}
	return kindUnknown
}

// CognitoAPI is the subset of the Cognito client used by CognitoGateway.
type CognitoAPI interface {
	SignUp(ctx context.Context, params *cip.SignUpInput, optFns ...func(*cip.Options)) (*cip.SignUpOutput, error)
	AdminDisableUser(ctx context.Context, params *cip.AdminDisableUserInput, optFns ...func(*cip.Options)) (*cip.AdminDisableUserOutput, error)
	AdminEnableUser(ctx context.Context, params *cip.AdminEnableUserInput, optFns ...func(*cip.Options)) (*cip.AdminEnableUserOutput, error)
	AdminDeleteUser(ctx context.Context, params *cip.AdminDeleteUserInput, optFns ...func(*cip.Options)) (*cip.AdminDeleteUserOutput, error)
}

// CognitoGateway implements Gateway against an Amazon Cognito user pool.
type CognitoGateway struct {
	client     CognitoAPI
	userPoolID string
	clientID   string
	timeout    time.Duration
	logger     *zap.Logger
}

func NewCognitoGateway(client CognitoAPI, userPoolID, clientID string, timeout time.Duration, logger *zap.Logger) *CognitoGateway {
	return &CognitoGateway{
		client:     client,
		userPoolID: userPoolID,
		clientID:   clientID,
		timeout:    timeout,
		logger:     logger,
	}
}

// NewCognitoClient builds a Cognito client from the configured region and,
// when provided, static credentials.
func NewCognitoClient(ctx context.Context, cfg *config.Config) (*cip.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, cfg.AWSSessionToken),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return cip.NewFromConfig(awsCfg), nil
}

func (g *CognitoGateway) CreateAccount(ctx context.Context, username, password, email string) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	_, err := g.client.SignUp(ctx, &cip.SignUpInput{
		ClientId: aws.String(g.clientID),
		Username: aws.String(username),
		Password: aws.String(password),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(email)},
		},
	})
	if err == nil {
		g.logger.Info("cognito user signed up", zap.String("cognito_user_id", username))
		return nil
	}

	if classify(err) == kindAccountExists {
		g.logger.Error("cognito user already exists", zap.String("cognito_user_id", username))
		return accountExistsError(username)
	}
	g.logger.Error("cognito sign up failed", zap.String("cognito_user_id", username), zap.Error(err))
	return apierrors.NewUnrecoverableError("failed to sign up cognito user", err)
}

func (g *CognitoGateway) DisableAccount(ctx context.Context, username string) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	_, err := g.client.AdminDisableUser(ctx, &cip.AdminDisableUserInput{
		UserPoolId: aws.String(g.userPoolID),
		Username:   aws.String(username),
	})
	if err == nil {
		g.logger.Info("cognito user disabled", zap.String("cognito_user_id", username))
		return nil
	}

	if classify(err) == kindAccountNotFound {
		g.logger.Error("cognito user not found in user pool", zap.String("cognito_user_id", username))
		return accountNotFoundError(username)
	}
	g.logger.Error("cognito disable failed", zap.String("cognito_user_id", username), zap.Error(err))
	return apierrors.NewUnrecoverableError("failed to disable cognito user", err)
}

func (g *CognitoGateway) EnableAccount(ctx context.Context, username string) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	_, err := g.client.AdminEnableUser(ctx, &cip.AdminEnableUserInput{
		UserPoolId: aws.String(g.userPoolID),
		Username:   aws.String(username),
	})
	if err == nil {
		g.logger.Info("cognito user re-enabled", zap.String("cognito_user_id", username))
		return nil
	}

	if classify(err) == kindAccountNotFound {
		g.logger.Error("cognito user not found in user pool", zap.String("cognito_user_id", username))
		return accountNotFoundError(username)
	}
	g.logger.Error("cognito enable failed", zap.String("cognito_user_id", username), zap.Error(err))
	return apierrors.NewUnrecoverableError("failed to re-enable cognito user", err)
}

func (g *CognitoGateway) DeleteAccount(ctx context.Context, username string) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	_, err := g.client.AdminDeleteUser(ctx, &cip.AdminDeleteUserInput{
		UserPoolId: aws.String(g.userPoolID),
		Username:   aws.String(username),
	})
	if err == nil {
		g.logger.Info("cognito user deleted", zap.String("cognito_user_id", username))
		return nil
	}

	if classify(err) == kindAccountNotFound {
		g.logger.Warn("cognito user already absent", zap.String("cognito_user_id", username))
		return nil
	}
	g.logger.Error("cognito delete failed", zap.String("cognito_user_id", username), zap.Error(err))
	return apierrors.NewUnrecoverableError("failed to delete cognito user", err)
}
