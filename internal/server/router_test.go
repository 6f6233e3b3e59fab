package server

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

	"beachbox/internal/config"
	"beachbox/internal/database"
)

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type record map[string]any

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:server_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.Connect(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	require.NoError(t, Migrate(db))

	cfg := &config.Config{OpeningHour: 8, ClosingHour: 22, MaxReportDays: 366}
	return NewRouter(cfg, db)
}

func call(t *testing.T, r http.Handler, method, path string, body any, wantCode int) envelope {
	t.Helper()
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, wantCode, rr.Code, "%s %s: %s", method, path, rr.Body.String())
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	return env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func findByID(rows []record, id float64) record {
	for _, r := range rows {
		if r["id"] == id {
			return r
		}
	}
	return nil
}

func TestBookingScenario(t *testing.T) {
	r := setupRouter(t)

	env := call(t, r, http.MethodPost, "/unidades", record{"nome": "Unidade Teste", "localizacao": "Centro", "telefone": "3533330000"}, http.StatusCreated)
	unidade := decode[record](t, env.Data)

	env = call(t, r, http.MethodPost, "/clientes", record{
		"nome":      "Heitor Teste",
		"telefone":  "(35) 99999-0000",
		"enderecos": []string{"Rua das Flores, 10"},
	}, http.StatusCreated)
	cliente := decode[record](t, env.Data)

	env = call(t, r, http.MethodGet, "/clientes", nil, http.StatusOK)
	got := findByID(decode[[]record](t, env.Data), cliente["id"].(float64))
	require.NotNil(t, got)
	assert.Equal(t, "Heitor Teste", got["nome"])
	assert.Equal(t, "(35) 99999-0000", got["telefone"])
	assert.Equal(t, []any{"Rua das Flores, 10"}, got["enderecos"])

	env = call(t, r, http.MethodPost, "/quadras", record{
		"nome":      "Quadra Teste",
		"tipo":      "Beach Tênis",
		"precobase": 80.00,
		"idUnidade": unidade["id"],
	}, http.StatusCreated)
	quadra := decode[record](t, env.Data)
	assert.Equal(t, "Unidade Teste", quadra["unidade"])

	env = call(t, r, http.MethodPost, "/agendamentos", record{
		"dataHoraAgendamento": "2025-01-15T14:30",
		"preco":               "100.00",
		"idCliente":           cliente["id"],
		"idQuadra":            quadra["id"],
	}, http.StatusCreated)
	agendamento := decode[record](t, env.Data)
	id := agendamento["id"].(float64)

	env = call(t, r, http.MethodGet, "/agendamentos", nil, http.StatusOK)
	row := findByID(decode[[]record](t, env.Data), id)
	require.NotNil(t, row)
	assert.Equal(t, 100.0, row["preco"])
	assert.Equal(t, "Heitor Teste", row["cliente"])
	assert.Equal(t, "Quadra Teste", row["quadra"])
	assert.Equal(t, "Unidade Teste", row["unidade"])
	assert.Equal(t, "2025-01-15T14:30:00", row["dataHoraAgendamento"])

	path := fmt.Sprintf("/agendamentos/%d", int64(id))
	call(t, r, http.MethodPut, path, record{
		"dataHoraAgendamento": "2025-01-15T14:30",
		"preco":               "150.00",
		"idCliente":           cliente["id"],
		"idQuadra":            quadra["id"],
	}, http.StatusOK)

	env = call(t, r, http.MethodGet, "/agendamentos", nil, http.StatusOK)
	row = findByID(decode[[]record](t, env.Data), id)
	require.NotNil(t, row)
	assert.Equal(t, 150.0, row["preco"])

	// referenced rows cannot go while the booking exists
	call(t, r, http.MethodDelete, fmt.Sprintf("/quadras/%d", int64(quadra["id"].(float64))), nil, http.StatusConflict)
	call(t, r, http.MethodDelete, fmt.Sprintf("/clientes/%d", int64(cliente["id"].(float64))), nil, http.StatusConflict)
	call(t, r, http.MethodDelete, fmt.Sprintf("/unidades/%d", int64(unidade["id"].(float64))), nil, http.StatusConflict)

	env = call(t, r, http.MethodGet, "/relatorios/diario?data=2025-01-15", nil, http.StatusOK)
	daily := decode[record](t, env.Data)
	assert.Equal(t, 1.0, daily["total_agendamentos"])
	assert.Equal(t, 150.0, daily["faturamento"])
	assert.Equal(t, 14*80.0, daily["faturamento_maximo"])

	call(t, r, http.MethodDelete, path, nil, http.StatusOK)
	env = call(t, r, http.MethodGet, "/agendamentos", nil, http.StatusOK)
	assert.Nil(t, findByID(decode[[]record](t, env.Data), id))
	call(t, r, http.MethodGet, path, nil, http.StatusNotFound)
}

func TestToggleAvailabilityBlocksBookings(t *testing.T) {
	r := setupRouter(t)

	unidade := decode[record](t, call(t, r, http.MethodPost, "/unidades", record{"nome": "U"}, http.StatusCreated).Data)
	cliente := decode[record](t, call(t, r, http.MethodPost, "/clientes", record{
		"nome": "C", "telefone": "1", "enderecos": []string{"R"},
	}, http.StatusCreated).Data)
	quadra := decode[record](t, call(t, r, http.MethodPost, "/quadras", record{
		"nome": "Q", "tipo": "Vôlei", "precobase": 50, "idUnidade": unidade["id"],
	}, http.StatusCreated).Data)

	qpath := fmt.Sprintf("/quadras/%d", int64(quadra["id"].(float64)))
	toggled := decode[record](t, call(t, r, http.MethodPatch, qpath, record{"estaDisponivel": false}, http.StatusOK).Data)
	assert.Equal(t, false, toggled["estaDisponivel"])
	assert.Equal(t, quadra["nome"], toggled["nome"])
	assert.Equal(t, quadra["precobase"], toggled["precobase"])

	call(t, r, http.MethodPost, "/agendamentos", record{
		"dataHoraAgendamento": "2025-02-01T10:00", "preco": 50, "idCliente": cliente["id"], "idQuadra": quadra["id"],
	}, http.StatusConflict)
}

func TestHealthAndFallbacks(t *testing.T) {
	r := setupRouter(t)

	env := call(t, r, http.MethodGet, "/health", nil, http.StatusOK)
	assert.Equal(t, "success", env.Status)

	env = call(t, r, http.MethodGet, "/nao-existe", nil, http.StatusNotFound)
	assert.Equal(t, "error", env.Status)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "beachbox_http_requests_total")
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}
