package services

import (
	"github.com/KirkDiggler/damage-resolver/internal/repositories/profiles"
	"github.com/KirkDiggler/damage-resolver/internal/services/resolver"
	"github.com/KirkDiggler/damage-resolver/internal/uuid"
)

// Provider holds all service instances
type Provider struct {
	ProfileRepository profiles.Repository
	ResolverService   resolver.Service
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	ProfileRepository profiles.Repository
	UUIDGenerator     uuid.Generator
	BatchLimit        int
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	if cfg == nil {
		cfg = &ProviderConfig{}
	}

	generator := cfg.UUIDGenerator
	if generator == nil {
		generator = uuid.NewGoogleUUIDGenerator()
	}

	// Use in-memory repository if none provided
	profileRepo := cfg.ProfileRepository
	if profileRepo == nil {
		profileRepo = profiles.NewInMemoryRepository(generator)
	}

	resolverService := resolver.NewService(&resolver.ServiceConfig{
		Repository:    profileRepo,
		UUIDGenerator: generator,
		BatchLimit:    cfg.BatchLimit,
	})

	return &Provider{
		ProfileRepository: profileRepo,
		ResolverService:   resolverService,
	}
}
