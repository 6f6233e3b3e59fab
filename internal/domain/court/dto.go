package court

import (
	"strings"

	"beachbox/internal/pkg/money"
)

// CourtRequest is the body of POST /quadras and PUT /quadras/:id.
// EstaDisponivel defaults to true on create and is left untouched on update when omitted.
type CourtRequest struct {
	Nome           string        `json:"nome" validate:"required,notblank,max=120"`
	Localizacao    string        `json:"localizacao" validate:"max=255"`
	Tipo           string        `json:"tipo" validate:"required,oneof='Beach Tênis' Vôlei Futebol Frescobol"`
	Precobase      *money.Amount `json:"precobase" validate:"required,gte=0"`
	EstaDisponivel *bool         `json:"estaDisponivel"`
	IdUnidade      int64         `json:"idUnidade" validate:"required,gt=0"`
}

type AvailabilityRequest struct {
	EstaDisponivel *bool `json:"estaDisponivel" validate:"required"`
}

func (r CourtRequest) toCourt() Court {
	c := Court{
		Name:      strings.TrimSpace(r.Nome),
		Location:  strings.TrimSpace(r.Localizacao),
		Type:      r.Tipo,
		BasePrice: money.Round(float64(*r.Precobase)),
		Available: true,
		UnitID:    r.IdUnidade,
	}
	if r.EstaDisponivel != nil {
		c.Available = *r.EstaDisponivel
	}
	return c
}
