package apiclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"beachbox/internal/domain/booking"
	"beachbox/internal/domain/client"
	"beachbox/internal/domain/court"
	"beachbox/internal/domain/report"
	"beachbox/internal/domain/unit"
)

// ================== CLIENTS ==================

func (c *Client) ListClients(ctx context.Context, opts ListOptions) ([]client.Client, *Meta, error) {
	var out []client.Client
	meta, err := c.do(ctx, http.MethodGet, "/clientes", opts.values(), nil, &out)
	return out, meta, err
}

func (c *Client) GetClient(ctx context.Context, id int64) (*client.Client, error) {
	var out client.Client
	if _, err := c.do(ctx, http.MethodGet, idPath("/clientes", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateClient(ctx context.Context, req client.ClientRequest) (*client.Client, error) {
	var out client.Client
	if _, err := c.do(ctx, http.MethodPost, "/clientes", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateClient(ctx context.Context, id int64, req client.ClientRequest) (*client.Client, error) {
	var out client.Client
	if _, err := c.do(ctx, http.MethodPut, idPath("/clientes", id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteClient(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, idPath("/clientes", id), nil, nil, nil)
	return err
}

// ================== UNITS ==================

func (c *Client) ListUnits(ctx context.Context, opts ListOptions) ([]unit.Unit, *Meta, error) {
	var out []unit.Unit
	meta, err := c.do(ctx, http.MethodGet, "/unidades", opts.values(), nil, &out)
	return out, meta, err
}

func (c *Client) GetUnit(ctx context.Context, id int64) (*unit.Unit, error) {
	var out unit.Unit
	if _, err := c.do(ctx, http.MethodGet, idPath("/unidades", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateUnit(ctx context.Context, req unit.UnitRequest) (*unit.Unit, error) {
	var out unit.Unit
	if _, err := c.do(ctx, http.MethodPost, "/unidades", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUnit(ctx context.Context, id int64, req unit.UnitRequest) (*unit.Unit, error) {
	var out unit.Unit
	if _, err := c.do(ctx, http.MethodPut, idPath("/unidades", id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUnit(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, idPath("/unidades", id), nil, nil, nil)
	return err
}

// ================== COURTS ==================

func (c *Client) ListCourts(ctx context.Context, opts ListOptions) ([]court.Court, *Meta, error) {
	var out []court.Court
	meta, err := c.do(ctx, http.MethodGet, "/quadras", opts.values(), nil, &out)
	return out, meta, err
}

func (c *Client) GetCourt(ctx context.Context, id int64) (*court.Court, error) {
	var out court.Court
	if _, err := c.do(ctx, http.MethodGet, idPath("/quadras", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCourt(ctx context.Context, req court.CourtRequest) (*court.Court, error) {
	var out court.Court
	if _, err := c.do(ctx, http.MethodPost, "/quadras", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCourt(ctx context.Context, id int64, req court.CourtRequest) (*court.Court, error) {
	var out court.Court
	if _, err := c.do(ctx, http.MethodPut, idPath("/quadras", id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetCourtAvailability flips only the availability flag of a court.
func (c *Client) SetCourtAvailability(ctx context.Context, id int64, available bool) (*court.Court, error) {
	var out court.Court
	body := court.AvailabilityRequest{EstaDisponivel: &available}
	if _, err := c.do(ctx, http.MethodPatch, idPath("/quadras", id), nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleCourt reads the court and stores the inverted availability flag.
func (c *Client) ToggleCourt(ctx context.Context, id int64) (*court.Court, error) {
	current, err := c.GetCourt(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.SetCourtAvailability(ctx, id, !current.Available)
}

func (c *Client) DeleteCourt(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, idPath("/quadras", id), nil, nil, nil)
	return err
}

// ================== BOOKINGS ==================

// BookingFilter adds the booking-only list parameters.
type BookingFilter struct {
	UnitID int64
	// Date is YYYY-MM-DD.
	Date string
}

func (c *Client) ListBookings(ctx context.Context, opts ListOptions, f BookingFilter) ([]booking.Booking, *Meta, error) {
	q := opts.values()
	if f.UnitID > 0 {
		q.Set("unidade", strconv.FormatInt(f.UnitID, 10))
	}
	if f.Date != "" {
		q.Set("data", f.Date)
	}
	var out []booking.Booking
	meta, err := c.do(ctx, http.MethodGet, "/agendamentos", q, nil, &out)
	return out, meta, err
}

func (c *Client) GetBooking(ctx context.Context, id int64) (*booking.Booking, error) {
	var out booking.Booking
	if _, err := c.do(ctx, http.MethodGet, idPath("/agendamentos", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateBooking(ctx context.Context, req booking.BookingRequest) (*booking.Booking, error) {
	var out booking.Booking
	if _, err := c.do(ctx, http.MethodPost, "/agendamentos", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateBooking(ctx context.Context, id int64, req booking.BookingRequest) (*booking.Booking, error) {
	var out booking.Booking
	if _, err := c.do(ctx, http.MethodPut, idPath("/agendamentos", id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteBooking(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, idPath("/agendamentos", id), nil, nil, nil)
	return err
}

// ================== REPORTS ==================

// DailyReport fetches the report of date (YYYY-MM-DD); empty means today.
func (c *Client) DailyReport(ctx context.Context, date string) (*report.Daily, error) {
	var out report.Daily
	if _, err := c.do(ctx, http.MethodGet, "/relatorios/diario", dateQuery(date), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CustomReport(ctx context.Context, req report.CustomRequest) (*report.Custom, error) {
	var out report.Custom
	if _, err := c.do(ctx, http.MethodPost, "/relatorios/customizado", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DailyReportPDF downloads the rendered daily report.
func (c *Client) DailyReportPDF(ctx context.Context, date string) ([]byte, error) {
	resp, err := c.send(ctx, http.MethodGet, "/relatorios/diario/pdf", dateQuery(date), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp, raw)
	}
	return raw, nil
}

func dateQuery(date string) url.Values {
	if date == "" {
		return nil
	}
	return url.Values{"data": {date}}
}
