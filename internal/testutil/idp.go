package testutil

import (
	"context"
	"sync"
)

// FakeGateway records identity provider calls and returns the configured errors.
type FakeGateway struct {
	mu sync.Mutex

	CreateErr  error
	DisableErr error
	EnableErr  error
	DeleteErr  error

	Calls []string
}

func (f *FakeGateway) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, call)
}

func (f *FakeGateway) CreateAccount(_ context.Context, username, _, _ string) error {
	f.record("create:" + username)
	return f.CreateErr
}

func (f *FakeGateway) DisableAccount(_ context.Context, username string) error {
	f.record("disable:" + username)
	return f.DisableErr
}

func (f *FakeGateway) EnableAccount(_ context.Context, username string) error {
	f.record("enable:" + username)
	return f.EnableErr
}

func (f *FakeGateway) DeleteAccount(_ context.Context, username string) error {
	f.record("delete:" + username)
	return f.DeleteErr
}
