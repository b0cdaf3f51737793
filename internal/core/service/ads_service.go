package service

import (
	"github.com/rs/zerolog"

	"github.com/schoolhub/admin-dashboard/internal/core/domain"
	"github.com/schoolhub/admin-dashboard/internal/core/ports"
)

// AdsService manages the ads collection. StatusID is always re-derived from
// Status before a record is sent.
type AdsService struct {
	entityService[domain.Ads]
}

var _ ports.EntityService[domain.Ads] = (*AdsService)(nil)

func NewAdsService(client ports.ResourceClient[domain.Ads], log zerolog.Logger) *AdsService {
	s := &AdsService{entityService: newEntityService("ads", client, log)}
	s.outbound = domain.Ads.WithDerivedStatus
	return s
}
