package booking

import "beachbox/internal/pkg/money"

// BookingRequest is the body of POST /agendamentos and PUT /agendamentos/:id.
// Preco accepts "100.00" as well as 100.
type BookingRequest struct {
	DataHoraAgendamento string        `json:"dataHoraAgendamento" validate:"required,notblank"`
	Preco               *money.Amount `json:"preco" validate:"required,gte=0"`
	IdCliente           int64         `json:"idCliente" validate:"required,gt=0"`
	IdQuadra            int64         `json:"idQuadra" validate:"required,gt=0"`
}
