// Package di provides dependency injection container
package di

import (
	"go.uber.org/zap"

	"github.com/ssargent/pokepack/pkg/api" //nolint:depguard
	"github.com/ssargent/pokepack/pkg/dex"
	"github.com/ssargent/pokepack/pkg/storage"
)

// DexProvider supplies the vocabulary tables.
type DexProvider interface {
	// Dex loads the tables from dir, or the embedded ones when dir is empty
	Dex(dir string) (*dex.Dex, error)
}

// StoreFactory opens team stores.
type StoreFactory interface {
	// OpenTeamStore opens the team store under dataDir
	OpenTeamStore(dataDir string, logger *zap.Logger) (*storage.TeamStore, error)
}

// Container holds all the dependencies for the application
type Container struct {
	dexProvider   DexProvider
	storeFactory  StoreFactory
	serverFactory api.ServerFactory
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return &Container{
		dexProvider:   defaultDexProvider{},
		storeFactory:  defaultStoreFactory{},
		serverFactory: api.NewServerFactory(),
	}
}

// GetDexProvider returns the vocabulary provider
func (c *Container) GetDexProvider() DexProvider {
	return c.dexProvider
}

// GetStoreFactory returns the team store factory
func (c *Container) GetStoreFactory() StoreFactory {
	return c.storeFactory
}

// GetServerFactory returns the server factory
func (c *Container) GetServerFactory() api.ServerFactory {
	return c.serverFactory
}

// SetDexProvider allows overriding the vocabulary provider (for testing)
func (c *Container) SetDexProvider(p DexProvider) {
	c.dexProvider = p
}

// SetStoreFactory allows overriding the team store factory (for testing)
func (c *Container) SetStoreFactory(f StoreFactory) {
	c.storeFactory = f
}

// SetServerFactory allows overriding the server factory (for testing)
func (c *Container) SetServerFactory(f api.ServerFactory) {
	c.serverFactory = f
}

type defaultDexProvider struct{}

func (defaultDexProvider) Dex(dir string) (*dex.Dex, error) {
	if dir == "" {
		return dex.Default()
	}
	return dex.Load(dir)
}

type defaultStoreFactory struct{}

func (defaultStoreFactory) OpenTeamStore(dataDir string, logger *zap.Logger) (*storage.TeamStore, error) {
	return storage.NewTeamStore(dataDir, storage.WithLogger(logger))
}
