package service

import (
	"github.com/rs/zerolog"

	"github.com/schoolhub/admin-dashboard/internal/core/domain"
	"github.com/schoolhub/admin-dashboard/internal/core/ports"
)

// PersonService manages one person collection, teachers or students. Every
// record passing through is stamped with the service's kind.
type PersonService struct {
	entityService[domain.Person]
	kind domain.PersonKind
}

var _ ports.EntityService[domain.Person] = (*PersonService)(nil)

func NewPersonService(kind domain.PersonKind, client ports.ResourceClient[domain.Person], log zerolog.Logger) *PersonService {
	s := &PersonService{
		entityService: newEntityService(kind.Plural(), client, log),
		kind:          kind,
	}
	stamp := func(p domain.Person) domain.Person { return p.WithKind(kind) }
	s.outbound = stamp
	s.inbound = stamp
	s.filterable = true
	return s
}

func (s *PersonService) Kind() domain.PersonKind { return s.kind }
