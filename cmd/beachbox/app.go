package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"beachbox/internal/apiclient"
	"beachbox/internal/domain/booking"
	"beachbox/internal/domain/client"
	"beachbox/internal/domain/court"
	"beachbox/internal/domain/report"
	"beachbox/internal/domain/unit"
	"beachbox/internal/pkg/wallclock"
	"beachbox/internal/view"
)

const usage = `uso: beachbox [-api URL] <comando>

  clientes list [-q texto] [-page N] [-size N]
  clientes create -nome N -telefone T -endereco E [-endereco E2]
  clientes edit <id> [-nome N] [-telefone T] [-endereco E]
  clientes delete <id>
  unidades list [-q texto] [-page N] [-size N]
  unidades create -nome N [-localizacao L] [-telefone T]
  unidades edit <id> [-nome N] [-localizacao L] [-telefone T]
  unidades delete <id>
  quadras list [-q texto] [-page N] [-size N]
  quadras create -nome N -tipo T -preco P -unidade id [-localizacao L] [-disponivel=false]
  quadras edit <id> [-nome N] [-tipo T] [-preco P] [-unidade id] [-localizacao L] [-disponivel=B]
  quadras toggle <id>
  quadras delete <id>
  agendamentos list [-q texto] [-unidade id] [-data AAAA-MM-DD] [-page N] [-size N]
  agendamentos create -data AAAA-MM-DDTHH:MM -cliente id -unidade id [-quadra id] [-preco P]
  agendamentos edit <id> [-data D] [-cliente id] [-unidade id] [-quadra id] [-preco P]
  agendamentos delete <id>
  relatorio diario [-data AAAA-MM-DD]
  relatorio customizado -inicio AAAA-MM-DD -fim AAAA-MM-DD [-unidades 1,2] [-quadras 3,4]
  relatorio pdf [-data AAAA-MM-DD] -o arquivo.pdf
`

// app keeps one list per resource; every command reloads the list it shows.
type app struct {
	api *apiclient.Client
	out io.Writer

	clients  *view.List[client.Client]
	units    *view.List[unit.Unit]
	courts   *view.List[court.Court]
	bookings *view.List[booking.Booking]
}

func newApp(api *apiclient.Client, out io.Writer) *app {
	return &app{
		api:      api,
		out:      out,
		clients:  view.NewList(nil, view.ClientSearchFields),
		units:    view.NewList(nil, view.UnitSearchFields),
		courts:   view.NewList(nil, view.CourtSearchFields),
		bookings: view.NewList(nil, view.BookingSearchFields),
	}
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("beachbox", flag.ContinueOnError)
	fs.SetOutput(stderr)
	baseURL := fs.String("api", envOr("BEACHBOX_API_URL", apiclient.DefaultBaseURL), "API base URL")
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 2 {
		fs.Usage()
		return 2
	}

	a := newApp(apiclient.New(*baseURL), stdout)
	if err := a.dispatch(ctx, fs.Arg(0), fs.Arg(1), fs.Args()[2:]); err != nil {
		var usageErr usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintln(stderr, usageErr.msg)
			fmt.Fprint(stderr, usage)
			return 2
		}
		notify(stderr, err)
		return 1
	}
	return 0
}

// notify prints an API failure with its per-field details, if any.
func notify(w io.Writer, err error) {
	fmt.Fprintln(w, "erro:", err)
	var apiErr *apiclient.Error
	if !errors.As(err, &apiErr) {
		return
	}
	fields := make([]string, 0, len(apiErr.Details))
	for f := range apiErr.Details {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(w, "  %s: %s\n", f, apiErr.Details[f])
	}
}

type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func (a *app) dispatch(ctx context.Context, resource, action string, args []string) error {
	switch resource + " " + action {
	case "clientes list":
		return a.listClients(ctx, args)
	case "clientes create":
		return a.saveClient(ctx, args, false)
	case "clientes edit":
		return a.saveClient(ctx, args, true)
	case "clientes delete":
		return a.deleteClient(ctx, args)
	case "unidades list":
		return a.listUnits(ctx, args)
	case "unidades create":
		return a.saveUnit(ctx, args, false)
	case "unidades edit":
		return a.saveUnit(ctx, args, true)
	case "unidades delete":
		return a.deleteUnit(ctx, args)
	case "quadras list":
		return a.listCourts(ctx, args)
	case "quadras create":
		return a.saveCourt(ctx, args, false)
	case "quadras edit":
		return a.saveCourt(ctx, args, true)
	case "quadras toggle":
		return a.toggleCourt(ctx, args)
	case "quadras delete":
		return a.deleteCourt(ctx, args)
	case "agendamentos list":
		return a.listBookings(ctx, args)
	case "agendamentos create":
		return a.saveBooking(ctx, args, false)
	case "agendamentos edit":
		return a.saveBooking(ctx, args, true)
	case "agendamentos delete":
		return a.deleteBooking(ctx, args)
	case "relatorio diario":
		return a.dailyReport(ctx, args)
	case "relatorio customizado":
		return a.customReport(ctx, args)
	case "relatorio pdf":
		return a.dailyPDF(ctx, args)
	}
	return usageError{msg: fmt.Sprintf("comando desconhecido: %s %s", resource, action)}
}

type listFlags struct {
	query string
	page  int
	size  int
}

func parseList(name string, args []string, extra func(*flag.FlagSet)) (listFlags, error) {
	var lf listFlags
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&lf.query, "q", "", "busca")
	fs.IntVar(&lf.page, "page", 1, "página")
	fs.IntVar(&lf.size, "size", view.DefaultPageSize, "linhas por página")
	if extra != nil {
		extra(fs)
	}
	if err := fs.Parse(args); err != nil {
		return lf, usageError{msg: err.Error()}
	}
	if lf.page < 1 || lf.size < 1 {
		return lf, usageError{msg: "-page e -size devem ser maiores que zero"}
	}
	return lf, nil
}

func firstPage() listFlags { return listFlags{page: 1, size: view.DefaultPageSize} }

// paginate moves a pager to the requested one-based page and prints its footer.
func (a *app) paginate(rows int, lf listFlags) *view.Pager {
	p := view.NewPager(lf.size)
	p.SetTotal(rows)
	for i := 1; i < lf.page && p.HasNext(); i++ {
		p.Next()
	}
	return p
}

func (a *app) footer(p *view.Pager, rows int) {
	fmt.Fprintf(a.out, "página %d de %d (%d registros)\n", p.Current()+1, p.Pages(), rows)
}

func (a *app) table(header string, lines []string) {
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, header)
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	w.Flush()
}

func (a *app) reloadClients(ctx context.Context) error {
	rows, _, err := a.api.ListClients(ctx, apiclient.ListOptions{})
	if err != nil {
		return err
	}
	a.clients.Replace(rows)
	return nil
}

func (a *app) reloadUnits(ctx context.Context) error {
	rows, _, err := a.api.ListUnits(ctx, apiclient.ListOptions{})
	if err != nil {
		return err
	}
	a.units.Replace(rows)
	return nil
}

func (a *app) reloadCourts(ctx context.Context) error {
	rows, _, err := a.api.ListCourts(ctx, apiclient.ListOptions{})
	if err != nil {
		return err
	}
	a.courts.Replace(rows)
	return nil
}

func (a *app) reloadBookings(ctx context.Context, f apiclient.BookingFilter) error {
	rows, _, err := a.api.ListBookings(ctx, apiclient.ListOptions{}, f)
	if err != nil {
		return err
	}
	a.bookings.Replace(rows)
	return nil
}

func (a *app) listClients(ctx context.Context, args []string) error {
	lf, err := parseList("clientes", args, nil)
	if err != nil {
		return err
	}
	if err := a.reloadClients(ctx); err != nil {
		return err
	}
	a.clients.SetQuery(lf.query)
	a.printClients(lf)
	return nil
}

func (a *app) printClients(lf listFlags) {
	rows := a.clients.Visible()
	p := a.paginate(len(rows), lf)
	var lines []string
	for _, c := range view.Page(p, rows) {
		lines = append(lines, fmt.Sprintf("%d\t%s\t%s\t%s", c.ID, c.Name, c.Phone, strings.Join(c.Addresses, "; ")))
	}
	a.table("ID\tNOME\tTELEFONE\tENDEREÇOS", lines)
	a.footer(p, len(rows))
}

func (a *app) listUnits(ctx context.Context, args []string) error {
	lf, err := parseList("unidades", args, nil)
	if err != nil {
		return err
	}
	if err := a.reloadUnits(ctx); err != nil {
		return err
	}
	a.units.SetQuery(lf.query)
	a.printUnits(lf)
	return nil
}

func (a *app) printUnits(lf listFlags) {
	rows := a.units.Visible()
	p := a.paginate(len(rows), lf)
	var lines []string
	for _, u := range view.Page(p, rows) {
		lines = append(lines, fmt.Sprintf("%d\t%s\t%s\t%s", u.ID, u.Name, u.Location, u.Phone))
	}
	a.table("ID\tNOME\tLOCALIZAÇÃO\tTELEFONE", lines)
	a.footer(p, len(rows))
}

func (a *app) listCourts(ctx context.Context, args []string) error {
	lf, err := parseList("quadras", args, nil)
	if err != nil {
		return err
	}
	if err := a.reloadCourts(ctx); err != nil {
		return err
	}
	a.courts.SetQuery(lf.query)
	a.printCourts(lf)
	return nil
}

func (a *app) printCourts(lf listFlags) {
	rows := a.courts.Visible()
	p := a.paginate(len(rows), lf)
	var lines []string
	for _, c := range view.Page(p, rows) {
		lines = append(lines, fmt.Sprintf("%d\t%s\t%s\t%s\t%s\t%s",
			c.ID, c.Name, c.Type, view.FormatCurrency(c.BasePrice), c.UnitName, availability(c.Available)))
	}
	a.table("ID\tNOME\tTIPO\tPREÇO BASE\tUNIDADE\tSTATUS", lines)
	a.footer(p, len(rows))
}

func availability(ok bool) string {
	if ok {
		return "disponível"
	}
	return "indisponível"
}

func (a *app) toggleCourt(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError{msg: "informe o ID da quadra"}
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	c, err := a.api.ToggleCourt(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Quadra %d (%s) agora está %s\n", c.ID, c.Name, availability(c.Available))
	return nil
}

func (a *app) listBookings(ctx context.Context, args []string) error {
	var unitID int64
	var date string
	lf, err := parseList("agendamentos", args, func(fs *flag.FlagSet) {
		fs.Int64Var(&unitID, "unidade", 0, "unidade")
		fs.StringVar(&date, "data", "", "data")
	})
	if err != nil {
		return err
	}
	if err := a.reloadUnits(ctx); err != nil {
		return err
	}
	if err := a.reloadBookings(ctx, apiclient.BookingFilter{UnitID: unitID, Date: date}); err != nil {
		return err
	}
	a.printBookings(unitID, lf)
	return nil
}

// printBookings shows one block per unit, each searched and paged on its own.
func (a *app) printBookings(unitID int64, lf listFlags) {
	for _, g := range view.GroupBookingsByUnit(a.units.All(), a.bookings.All()) {
		if unitID > 0 && g.UnitID != unitID {
			continue
		}
		g.Bookings.SetQuery(lf.query)
		rows := g.Bookings.Visible()
		p := a.paginate(len(rows), lf)

		fmt.Fprintf(a.out, "== %s ==\n", g.UnitName)
		var lines []string
		for _, b := range view.Page(p, rows) {
			lines = append(lines, fmt.Sprintf("%d\t%s\t%s\t%s\t%s",
				b.ID, wallclock.Format(b.ScheduledAt.Time), b.ClientName, b.CourtName, view.FormatCurrency(b.Price)))
		}
		a.table("ID\tDATA/HORA\tCLIENTE\tQUADRA\tPREÇO", lines)
		a.footer(p, len(rows))
	}
}

func (a *app) dailyReport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("diario", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	date := fs.String("data", "", "data")
	if err := fs.Parse(args); err != nil {
		return usageError{msg: err.Error()}
	}

	d, err := a.api.DailyReport(ctx, *date)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Relatório diário %s\n", d.Date)
	a.summary(d.Summary)
	a.revenueTable("QUADRA", d.RevenueByCourt)
	return nil
}

func (a *app) customReport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("customizado", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	from := fs.String("inicio", "", "data inicial")
	to := fs.String("fim", "", "data final")
	units := fs.String("unidades", "", "IDs de unidades separados por vírgula")
	courts := fs.String("quadras", "", "IDs de quadras separados por vírgula")
	if err := fs.Parse(args); err != nil {
		return usageError{msg: err.Error()}
	}

	req := report.CustomRequest{DataInicio: *from, DataFim: *to}
	var err error
	if req.Unidades, err = parseIDs(*units); err != nil {
		return usageError{msg: err.Error()}
	}
	if req.Quadras, err = parseIDs(*courts); err != nil {
		return usageError{msg: err.Error()}
	}

	r, err := a.api.CustomReport(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Relatório de %s a %s\n", r.From, r.To)
	a.summary(r.Summary)
	a.revenueTable("DATA", r.RevenueByDate)
	return nil
}

func (a *app) dailyPDF(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("pdf", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	date := fs.String("data", "", "data")
	out := fs.String("o", "", "arquivo de saída")
	if err := fs.Parse(args); err != nil {
		return usageError{msg: err.Error()}
	}
	if *out == "" {
		return usageError{msg: "informe o arquivo de saída com -o"}
	}

	pdf, err := a.api.DailyReportPDF(ctx, *date)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out, pdf, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "PDF salvo em %s (%d bytes)\n", *out, len(pdf))
	return nil
}

func (a *app) summary(s report.Summary) {
	fmt.Fprintf(a.out, "Agendamentos: %d\n", s.TotalBookings)
	fmt.Fprintf(a.out, "Faturamento: %s\n", view.FormatCurrency(s.Revenue))
	fmt.Fprintf(a.out, "Faturamento máximo: %s\n", view.FormatCurrency(s.MaxRevenue))
	fmt.Fprintf(a.out, "Gap de faturamento: %s\n", view.FormatCurrency(s.RevenueGap))
	fmt.Fprintf(a.out, "Capacidade restante: %d\n", s.RemainingCapacity)
}

func (a *app) revenueTable(label string, m map[string]float64) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s\t%s", k, view.FormatCurrency(m[k])))
	}
	a.table(label+"\tFATURAMENTO", lines)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, usageError{msg: fmt.Sprintf("ID inválido: %q", s)}
	}
	return id, nil
}

func parseIDs(s string) ([]int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("ID inválido: %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
