package idp

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type localAccount struct {
	email        string
	passwordHash []byte
	enabled      bool
}

// LocalGateway is an in-memory identity provider for local development,
// where no Cognito user pool is reachable.
type LocalGateway struct {
	mu       sync.Mutex
	accounts map[string]*localAccount
	logger   *zap.Logger
}

func NewLocalGateway(logger *zap.Logger) *LocalGateway {
	return &LocalGateway{
		accounts: make(map[string]*localAccount),
		logger:   logger,
	}
}

func (g *LocalGateway) CreateAccount(_ context.Context, username, password, email string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.accounts[username]; ok {
		return accountExistsError(username)
	}
	g.accounts[username] = &localAccount{
		email:        email,
		passwordHash: hash,
		enabled:      true,
	}
	g.logger.Debug("local account created", zap.String("cognito_user_id", username))
	return nil
}

func (g *LocalGateway) DisableAccount(_ context.Context, username string) error {
	return g.setEnabled(username, false)
}

func (g *LocalGateway) EnableAccount(_ context.Context, username string) error {
	return g.setEnabled(username, true)
}

func (g *LocalGateway) DeleteAccount(_ context.Context, username string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.accounts[username]; !ok {
		g.logger.Warn("local account already absent", zap.String("cognito_user_id", username))
		return nil
	}
	delete(g.accounts, username)
	return nil
}

// CheckPassword verifies a password against an enabled account.
func (g *LocalGateway) CheckPassword(username, password string) bool {
	g.mu.Lock()
	account, ok := g.accounts[username]
	g.mu.Unlock()

	if !ok || !account.enabled {
		return false
	}
	return bcrypt.CompareHashAndPassword(account.passwordHash, []byte(password)) == nil
}

func (g *LocalGateway) setEnabled(username string, enabled bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	account, ok := g.accounts[username]
	if !ok {
		return accountNotFoundError(username)
	}
	account.enabled = enabled
	return nil
}
