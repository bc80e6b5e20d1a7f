package core

import (
	"github.com/everbloom/weddings/internal/dns"
)

type Services struct {
	Wedding      *WeddingService
	CustomDomain *CustomDomainService
}

func NewServices(db DB, resolver dns.Resolver, tokens *TokenSource, siteSuffix string, settings DomainSettings) *Services {
	return &Services{
		Wedding:      NewWeddingService(db, siteSuffix),
		CustomDomain: NewCustomDomainService(db, NewVerifier(resolver, settings.CNAMETarget, settings.LBAddress), tokens, settings),
	}
}
