package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"beachbox/internal/database"
	"beachbox/internal/domain/booking"
	"beachbox/internal/domain/client"
	"beachbox/internal/domain/court"
	"beachbox/internal/domain/unit"
	"beachbox/internal/pkg/wallclock"
)

type envelope struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Details map[string]string `json:"details"`
}

type seeded struct {
	centro, praia    unit.Unit
	quadraA, quadraB court.Court
}

func setupTestRouter(t *testing.T) (*gin.Engine, *Service, seeded) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:report_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.Connect(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	require.NoError(t, db.AutoMigrate(&unit.Unit{}, &court.Court{}, &client.Client{}, &client.Address{}, &booking.Model{}))

	var s seeded
	s.centro = unit.Unit{Name: "Centro"}
	s.praia = unit.Unit{Name: "Praia"}
	require.NoError(t, db.Create(&s.centro).Error)
	require.NoError(t, db.Create(&s.praia).Error)

	s.quadraA = court.Court{Name: "Quadra A", Type: court.TypeBeachTennis, BasePrice: 80, Available: true, UnitID: s.centro.ID}
	s.quadraB = court.Court{Name: "Quadra B", Type: court.TypeVolleyball, BasePrice: 60, Available: true, UnitID: s.praia.ID}
	off := court.Court{Name: "Quadra C", Type: court.TypeSoccer, BasePrice: 500, Available: false, UnitID: s.praia.ID}
	for _, c := range []*court.Court{&s.quadraA, &s.quadraB, &off} {
		require.NoError(t, db.Omit("Unit").Create(c).Error)
	}

	cl := client.Client{Name: "Ana", Phone: "1"}
	require.NoError(t, db.Create(&cl).Error)

	for _, b := range []struct {
		court int64
		at    string
		price float64
	}{
		{s.quadraA.ID, "2025-01-15T09:00", 100},
		{s.quadraB.ID, "2025-01-15T09:00", 50},
		{s.quadraA.ID, "2025-01-15T20:00", 120},
		{s.quadraA.ID, "2025-01-17T10:00", 90},
	} {
		at, err := wallclock.Parse(b.at)
		require.NoError(t, err)
		m := booking.Model{ScheduledAt: at, Price: b.price, ClientID: cl.ID, CourtID: b.court}
		require.NoError(t, db.Omit("Client", "Court").Create(&m).Error)
	}

	svc := NewService(NewRepository(db), Hours{Opening: 8, Closing: 22}, 31)
	svc.now = func() time.Time { return time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC) }

	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group(""))
	return r, svc, s
}

func doRequest(r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
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
	r.ServeHTTP(rr, req)

	var env envelope
	_ = json.Unmarshal(rr.Body.Bytes(), &env)
	return rr, env
}

func TestDailyReport(t *testing.T) {
	r, _, _ := setupTestRouter(t)

	for _, path := range []string{"/relatorios/diario?data=2025-01-15", "/relatorios/diario"} {
		rr, env := doRequest(r, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var d Daily
		require.NoError(t, json.Unmarshal(env.Data, &d))
		assert.Equal(t, "2025-01-15", d.Date)
		assert.EqualValues(t, 3, d.TotalBookings)
		assert.Equal(t, 270.0, d.Revenue)
		assert.Equal(t, 14*140.0, d.MaxRevenue)
		assert.Equal(t, 14*140.0-270, d.RevenueGap)
		assert.EqualValues(t, 28-3, d.RemainingCapacity)
		assert.Equal(t, map[string]float64{"Quadra A": 220, "Quadra B": 50}, d.RevenueByCourt)
		assert.Equal(t, map[int]int{9: 2, 20: 1}, d.BookingsByHour)
		require.Len(t, d.Details, 3)
		assert.Equal(t, "Ana", d.Details[0].ClientName)
	}

	rr, env := doRequest(r, http.MethodGet, "/relatorios/diario?data=2025-01-16", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var empty Daily
	require.NoError(t, json.Unmarshal(env.Data, &empty))
	assert.EqualValues(t, 0, empty.TotalBookings)
	assert.Equal(t, 0.0, empty.Revenue)

	rr, _ = doRequest(r, http.MethodGet, "/relatorios/diario?data=15/01/2025", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestCustomReport(t *testing.T) {
	r, _, s := setupTestRouter(t)

	rr, env := doRequest(r, http.MethodPost, "/relatorios/customizado", map[string]any{
		"data_inicio": "2025-01-14",
		"data_fim":    "2025-01-18",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var c Custom
	require.NoError(t, json.Unmarshal(env.Data, &c))
	assert.EqualValues(t, 4, c.TotalBookings)
	assert.Equal(t, 360.0, c.Revenue)
	assert.Equal(t, map[string]float64{
		"2025-01-14": 0, "2025-01-15": 270, "2025-01-16": 0, "2025-01-17": 90, "2025-01-18": 0,
	}, c.RevenueByDate)
	assert.Equal(t, 5*14*140.0, c.MaxRevenue)

	rr, env = doRequest(r, http.MethodPost, "/relatorios/customizado", map[string]any{
		"data_inicio": "2025-01-14",
		"data_fim":    "2025-01-18",
		"unidades":    []int64{s.praia.ID},
	})
	require.Equal(t, http.StatusOK, rr.Code)
	c = Custom{}
	require.NoError(t, json.Unmarshal(env.Data, &c))
	assert.EqualValues(t, 1, c.TotalBookings)
	assert.Equal(t, 50.0, c.Revenue)
	assert.Equal(t, 5*14*60.0, c.MaxRevenue)

	rr, env = doRequest(r, http.MethodPost, "/relatorios/customizado", map[string]any{
		"data_inicio": "2025-01-14",
		"data_fim":    "2025-01-18",
		"quadras":     []int64{s.quadraA.ID},
	})
	require.Equal(t, http.StatusOK, rr.Code)
	c = Custom{}
	require.NoError(t, json.Unmarshal(env.Data, &c))
	assert.EqualValues(t, 3, c.TotalBookings)

	// defaults to today..today
	rr, env = doRequest(r, http.MethodPost, "/relatorios/customizado", map[string]any{})
	require.Equal(t, http.StatusOK, rr.Code)
	c = Custom{}
	require.NoError(t, json.Unmarshal(env.Data, &c))
	assert.Equal(t, "2025-01-15", c.From)
	assert.Equal(t, "2025-01-15", c.To)
	assert.EqualValues(t, 3, c.TotalBookings)
}

func TestCustomReport_InvalidRanges(t *testing.T) {
	r, _, _ := setupTestRouter(t)

	cases := []struct {
		name string
		body map[string]any
	}{
		{"end before start", map[string]any{"data_inicio": "2025-01-10", "data_fim": "2025-01-09"}},
		{"too long", map[string]any{"data_inicio": "2025-01-01", "data_fim": "2025-03-01"}},
		{"bad date", map[string]any{"data_inicio": "ontem", "data_fim": "2025-01-09"}},
		{"bad unit id", map[string]any{"data_inicio": "2025-01-01", "data_fim": "2025-01-02", "unidades": []int{0}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr, env := doRequest(r, http.MethodPost, "/relatorios/customizado", tc.body)
			assert.Equal(t, http.StatusUnprocessableEntity, rr.Code, rr.Body.String())
			assert.Equal(t, "error", env.Status)
		})
	}
}

func TestDailyReportPDF(t *testing.T) {
	r, _, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/relatorios/diario/pdf?data=2025-01-15", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "relatorio-diario-2025-01-15.pdf")
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF")))
}

func TestDailyReport_DatabaseFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	mock.ExpectQuery("FROM bookings AS b").WillReturnError(errors.New("connection reset by peer"))

	svc := NewService(NewRepository(db), Hours{Opening: 8, Closing: 22}, 31)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group(""))

	rr, env := doRequest(r, http.MethodGet, "/relatorios/diario?data=2025-01-15", nil)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "error", env.Status)
	assert.NotContains(t, rr.Body.String(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}
