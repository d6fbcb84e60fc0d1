package service

import (
	"catalog-service/pkg/token"
	"catalog-service/repository"
)

// Service bundles the application services the transports depend on.
type Service struct {
	Auth       AuthService
	Tracking   TrackingService
	Catalog    CatalogService
	Engagement EngagementService
	Billing    BillingService
}

type Dependencies struct {
	Repo      repository.Repository
	Tokens    *token.Issuer
	KV        KeyValueStore
	Mailer    Mailer
	Storage   ObjectStorage
	Publisher Publisher
	Payments  PaymentGateway
}

func NewService(deps Dependencies) *Service {
	return &Service{
		Auth:       NewAuthService(deps.Repo, deps.Tokens, deps.KV, deps.Mailer),
		Tracking:   NewTrackingService(deps.Repo),
		Catalog:    NewCatalogService(deps.Repo, deps.Storage, deps.Publisher),
		Engagement: NewEngagementService(deps.Repo),
		Billing:    NewBillingService(deps.Repo, deps.Payments),
	}
}
