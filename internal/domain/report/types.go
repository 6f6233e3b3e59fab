package report

import "beachbox/internal/pkg/wallclock"

// Row is one booking as it appears in the report details.
type Row struct {
	ID          int64              `json:"id"`
	ScheduledAt wallclock.DateTime `json:"dataHoraAgendamento"`
	Price       float64            `json:"preco"`
	ClientName  string             `json:"cliente"`
	CourtID     int64              `json:"quadra_id"`
	CourtName   string             `json:"quadra"`
	UnitID      int64              `json:"unidade_id"`
	UnitName    string             `json:"unidade"`
}

// Capacity describes the available courts a report is measured against.
type Capacity struct {
	Courts       int64   `gorm:"column:courts"`
	BasePriceSum float64 `gorm:"column:base_price_sum"`
}

// Hours is the daily operating window; every whole hour in it is one slot.
type Hours struct {
	Opening int
	Closing int
}

func (h Hours) Slots() int {
	if h.Closing <= h.Opening {
		return 0
	}
	return h.Closing - h.Opening
}

// Scope optionally narrows a report to some units or courts.
type Scope struct {
	UnitIDs  []int64
	CourtIDs []int64
}

type Summary struct {
	TotalBookings     int64       `json:"total_agendamentos"`
	Revenue           float64     `json:"faturamento"`
	MaxRevenue        float64     `json:"faturamento_maximo"`
	RevenueGap        float64     `json:"gap_faturamento"`
	RemainingCapacity int64       `json:"capacidade_restante"`
	BookingsByHour    map[int]int `json:"agendamentos_por_horario"`
	Details           []Row       `json:"detalhes"`
}

type Daily struct {
	Date string `json:"data"`
	Summary
	RevenueByCourt map[string]float64 `json:"faturamento_por_quadra"`
}

type Custom struct {
	From string `json:"data_inicio"`
	To   string `json:"data_fim"`
	Summary
	RevenueByDate map[string]float64 `json:"faturamento_por_tempo"`
}

// CustomRequest is the body of POST /relatorios/customizado. Empty dates mean today.
type CustomRequest struct {
	DataInicio string  `json:"data_inicio"`
	DataFim    string  `json:"data_fim"`
	Unidades   []int64 `json:"unidades" validate:"omitempty,dive,gt=0"`
	Quadras    []int64 `json:"quadras" validate:"omitempty,dive,gt=0"`
}
