package unit

import "strings"

// UnitRequest is the body of POST /unidades and PUT /unidades/:id.
type UnitRequest struct {
	Nome        string `json:"nome" validate:"required,notblank,max=120"`
	Localizacao string `json:"localizacao" validate:"max=255"`
	Telefone    string `json:"telefone" validate:"max=40"`
}

func (r UnitRequest) toUnit() Unit {
	return Unit{
		Name:     strings.TrimSpace(r.Nome),
		Location: strings.TrimSpace(r.Localizacao),
		Phone:    strings.TrimSpace(r.Telefone),
	}
}
