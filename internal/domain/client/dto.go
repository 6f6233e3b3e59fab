package client

import "strings"

// ClientRequest is the body of POST /clientes and PUT /clientes/:id.
type ClientRequest struct {
	Nome      string   `json:"nome" validate:"required,notblank,max=120"`
	Telefone  string   `json:"telefone" validate:"required,notblank,max=40"`
	Enderecos []string `json:"enderecos" validate:"required,min=1,dive,required,notblank,max=255"`
}

func (r ClientRequest) toClient() Client {
	addrs := make([]string, 0, len(r.Enderecos))
	for _, a := range r.Enderecos {
		addrs = append(addrs, strings.TrimSpace(a))
	}
	return Client{
		Name:      strings.TrimSpace(r.Nome),
		Phone:     strings.TrimSpace(r.Telefone),
		Addresses: addrs,
	}
}
