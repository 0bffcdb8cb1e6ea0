package warehouse

import (
	"fmt"
	"sync"

	"github.com/eco-tools/cpi-pulse/pkg/services/config"
	"github.com/eco-tools/cpi-pulse/pkg/store/prices"
)

// StoreFactory builds a prices.Store from a warehouse profile.
type StoreFactory func(profile *config.Profile) (prices.Store, error)

// Registry maps warehouse platforms to store factories.
type Registry interface {
	Register(platform string, factory StoreFactory) error
	Create(platform string, profile *config.Profile) (prices.Store, error)
	ListPlatforms() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]StoreFactory
}

// NewRegistry creates a registry pre-populated with the given factories.
func NewRegistry(factories map[string]StoreFactory) (Registry, error) {
	r := &registry{factories: make(map[string]StoreFactory)}
	for platform, factory := range factories {
		if err := r.Register(platform, factory); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *registry) Register(platform string, factory StoreFactory) error {
	if platform == "" {
		return fmt.Errorf("platform name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[platform]; exists {
		return fmt.Errorf("platform %q is already registered", platform)
	}
	r.factories[platform] = factory
	return nil
}

func (r *registry) Create(platform string, profile *config.Profile) (prices.Store, error) {
	r.mu.RLock()
	factory, exists := r.factories[platform]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("platform %q is not registered", platform)
	}
	return factory(profile)
}

func (r *registry) ListPlatforms() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	platforms := make([]string, 0, len(r.factories))
	for platform := range r.factories {
		platforms = append(platforms, platform)
	}
	return platforms
}
