package booking

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"beachbox/internal/database"
	"beachbox/internal/domain/client"
	"beachbox/internal/domain/court"
	"beachbox/internal/domain/unit"
)

type envelope struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Meta    map[string]any    `json:"meta"`
	Details map[string]string `json:"details"`
}

type fixture struct {
	router *gin.Engine
	db     *gorm.DB
	client client.Client
	centro court.Court
	praia  court.Court
	closed court.Court
}

func setup(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:booking_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.Connect(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	require.NoError(t, db.AutoMigrate(&unit.Unit{}, &court.Court{}, &client.Client{}, &client.Address{}, &Model{}))

	f := &fixture{db: db}

	u1 := unit.Unit{Name: "Arena Centro"}
	u2 := unit.Unit{Name: "Arena Praia"}
	require.NoError(t, db.Create(&u1).Error)
	require.NoError(t, db.Create(&u2).Error)

	f.centro = court.Court{Name: "Quadra Centro", Type: court.TypeBeachTennis, BasePrice: 80, Available: true, UnitID: u1.ID}
	f.praia = court.Court{Name: "Quadra Praia", Type: court.TypeVolleyball, BasePrice: 60, Available: true, UnitID: u2.ID}
	f.closed = court.Court{Name: "Quadra Fechada", Type: court.TypeSoccer, BasePrice: 90, Available: false, UnitID: u1.ID}
	for _, c := range []*court.Court{&f.centro, &f.praia, &f.closed} {
		require.NoError(t, db.Omit("Unit").Create(c).Error)
	}

	f.client = client.Client{Name: "Heitor Teste", Phone: "(35) 99999-0000"}
	require.NoError(t, db.Create(&f.client).Error)

	clients := client.NewRepository(db)
	courts := court.NewRepository(db)
	h := NewHandler(NewService(NewBookingRepository(db), clients, courts))
	f.router = gin.New()
	h.RegisterRoutes(f.router.Group(""))
	return f
}

func (f *fixture) do(method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)

	var env envelope
	_ = json.Unmarshal(rr.Body.Bytes(), &env)
	return rr, env
}

func (f *fixture) book(t *testing.T, courtID int64, at string, price any) Booking {
	t.Helper()
	rr, env := f.do(http.MethodPost, "/agendamentos", map[string]any{
		"dataHoraAgendamento": at,
		"preco":               price,
		"idCliente":           f.client.ID,
		"idQuadra":            courtID,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var b Booking
	require.NoError(t, json.Unmarshal(env.Data, &b))
	return b
}

func TestBookingCreate_Projections(t *testing.T) {
	f := setup(t)

	b := f.book(t, f.centro.ID, "2025-01-15T14:30", "100.00")

	assert.NotZero(t, b.ID)
	assert.Equal(t, "2025-01-15T14:30:00", b.ScheduledAt.Format("2006-01-02T15:04:05"))
	assert.Equal(t, 100.0, b.Price)
	assert.Equal(t, "Heitor Teste", b.ClientName)
	assert.Equal(t, "Quadra Centro", b.CourtName)
	assert.Equal(t, "Arena Centro", b.UnitName)
	assert.Equal(t, f.centro.UnitID, b.UnitID)

	rr, env := f.do(http.MethodGet, fmt.Sprintf("/agendamentos/%d", b.ID), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, string(env.Data), `"dataHoraAgendamento":"2025-01-15T14:30:00"`)
}

func TestBookingCreate_Conflicts(t *testing.T) {
	f := setup(t)
	f.book(t, f.centro.ID, "2025-01-15T14:30", 100)

	rr, env := f.do(http.MethodPost, "/agendamentos", map[string]any{
		"dataHoraAgendamento": "2025-01-15 14:30:00",
		"preco":               90,
		"idCliente":           f.client.ID,
		"idQuadra":            f.centro.ID,
	})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "Já existe um agendamento para esta quadra no horário selecionado.", env.Message)

	// same instant on another court is fine
	f.book(t, f.praia.ID, "2025-01-15T14:30", 60)

	rr, env = f.do(http.MethodPost, "/agendamentos", map[string]any{
		"dataHoraAgendamento": "2025-01-15T16:00",
		"preco":               90,
		"idCliente":           f.client.ID,
		"idQuadra":            f.closed.ID,
	})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "A quadra selecionada não está disponível para agendamento.", env.Message)
}

func TestBookingCreate_Validation(t *testing.T) {
	f := setup(t)

	cases := []struct {
		name  string
		body  map[string]any
		code  int
		field string
	}{
		{"missing price", map[string]any{"dataHoraAgendamento": "2025-01-15T10:00", "idCliente": f.client.ID, "idQuadra": f.centro.ID}, http.StatusUnprocessableEntity, "preco"},
		{"negative price", map[string]any{"dataHoraAgendamento": "2025-01-15T10:00", "preco": -1, "idCliente": f.client.ID, "idQuadra": f.centro.ID}, http.StatusUnprocessableEntity, "preco"},
		{"bad date", map[string]any{"dataHoraAgendamento": "ontem", "preco": 1, "idCliente": f.client.ID, "idQuadra": f.centro.ID}, http.StatusUnprocessableEntity, "dataHoraAgendamento"},
		{"unknown client", map[string]any{"dataHoraAgendamento": "2025-01-15T10:00", "preco": 1, "idCliente": 999, "idQuadra": f.centro.ID}, http.StatusUnprocessableEntity, "idCliente"},
		{"unknown court", map[string]any{"dataHoraAgendamento": "2025-01-15T10:00", "preco": 1, "idCliente": f.client.ID, "idQuadra": 999}, http.StatusUnprocessableEntity, "idQuadra"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr, env := f.do(http.MethodPost, "/agendamentos", tc.body)
			assert.Equal(t, tc.code, rr.Code, rr.Body.String())
			assert.Contains(t, env.Details, tc.field)
		})
	}

	rr, _ := f.do(http.MethodPost, "/agendamentos", map[string]any{
		"dataHoraAgendamento": "2025-01-15T10:00", "preco": "caro", "idCliente": f.client.ID, "idQuadra": f.centro.ID,
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestBookingCreate_RejectsNonFinitePrice(t *testing.T) {
	f := setup(t)

	for _, price := range []string{"Inf", "-Inf", "Infinity", "NaN"} {
		rr, env := f.do(http.MethodPost, "/agendamentos", map[string]any{
			"dataHoraAgendamento": "2025-01-15T10:00", "preco": price, "idCliente": f.client.ID, "idQuadra": f.centro.ID,
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code, price)
		assert.Equal(t, "JSON inválido", env.Message, price)
	}

	var n int64
	require.NoError(t, f.db.Model(&Model{}).Count(&n).Error)
	assert.Zero(t, n)

	rr, env := f.do(http.MethodGet, "/agendamentos", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "success", env.Status)
}

func TestBookingUpdate_SameSlotAndMove(t *testing.T) {
	f := setup(t)
	a := f.book(t, f.centro.ID, "2025-01-15T14:00", 100)
	b := f.book(t, f.centro.ID, "2025-01-15T15:00", 100)

	// re-saving a booking on its own slot is not a conflict
	rr, env := f.do(http.MethodPut, fmt.Sprintf("/agendamentos/%d", a.ID), map[string]any{
		"dataHoraAgendamento": "2025-01-15T14:00", "preco": "150.00", "idCliente": f.client.ID, "idQuadra": f.centro.ID,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, fmt.Sprintf("Agendamento com ID %d atualizado com sucesso", a.ID), env.Message)
	var got Booking
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, 150.0, got.Price)

	rr, _ = f.do(http.MethodPut, fmt.Sprintf("/agendamentos/%d", b.ID), map[string]any{
		"dataHoraAgendamento": "2025-01-15T14:00", "preco": 100, "idCliente": f.client.ID, "idQuadra": f.centro.ID,
	})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr, _ = f.do(http.MethodPut, "/agendamentos/999", map[string]any{
		"dataHoraAgendamento": "2025-01-15T18:00", "preco": 100, "idCliente": f.client.ID, "idQuadra": f.centro.ID,
	})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestBookingList_Filters(t *testing.T) {
	f := setup(t)
	f.book(t, f.centro.ID, "2025-01-15T09:00", 100)
	f.book(t, f.centro.ID, "2025-01-16T09:00", 100)
	f.book(t, f.praia.ID, "2025-01-15T23:30", 60)

	list := func(query string) []Booking {
		t.Helper()
		rr, env := f.do(http.MethodGet, "/agendamentos"+query, nil)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		var out []Booking
		require.NoError(t, json.Unmarshal(env.Data, &out))
		return out
	}

	assert.Len(t, list(""), 3)
	assert.Len(t, list(fmt.Sprintf("?unidade=%d", f.centro.UnitID)), 2)
	assert.Len(t, list("?data=2025-01-15"), 2)
	assert.Len(t, list(fmt.Sprintf("?unidade=%d&data=2025-01-15", f.praia.UnitID)), 1)
	assert.Len(t, list("?q=praia"), 1)
	assert.Len(t, list("?q=heitor"), 3)

	sorted := list("?sort=-dataHoraAgendamento")
	require.Len(t, sorted, 3)
	assert.Equal(t, "2025-01-16T09:00:00", sorted[0].ScheduledAt.Format("2006-01-02T15:04:05"))

	rr, _ := f.do(http.MethodGet, "/agendamentos?data=15-01-2025", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	rr, _ = f.do(http.MethodGet, "/agendamentos?unidade=x", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestBookingDelete(t *testing.T) {
	f := setup(t)
	b := f.book(t, f.centro.ID, "2025-01-15T09:00", 100)

	path := fmt.Sprintf("/agendamentos/%d", b.ID)
	rr, env := f.do(http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, fmt.Sprintf("Agendamento com ID %d excluído com sucesso", b.ID), env.Message)

	rr, _ = f.do(http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
