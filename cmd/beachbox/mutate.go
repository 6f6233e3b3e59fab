package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"beachbox/internal/apiclient"
	"beachbox/internal/domain/booking"
	"beachbox/internal/domain/client"
	"beachbox/internal/domain/court"
	"beachbox/internal/domain/unit"
	"beachbox/internal/pkg/money"
	"beachbox/internal/pkg/wallclock"
	"beachbox/internal/view"
)

// stringList collects a repeatable flag such as -endereco.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, "; ") }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

// amountFlag parses prices the same way the API does, so "80,50" works.
type amountFlag struct {
	v   money.Amount
	set bool
}

func (f *amountFlag) String() string { return view.FormatMoney(float64(f.v)) }

func (f *amountFlag) Set(s string) error {
	if err := f.v.UnmarshalJSON([]byte(strconv.Quote(s))); err != nil {
		return err
	}
	f.set = true
	return nil
}

func (f *amountFlag) ptr() *money.Amount {
	v := f.v
	return &v
}

// parseForm parses the flags of a create or edit command. Edit commands take
// the record ID as a positional argument, before or after the flags. The
// returned set holds the flags given on the command line.
func parseForm(name string, args []string, withID bool, define func(*flag.FlagSet)) (int64, map[string]bool, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	define(fs)

	var rawID string
	if withID && len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		rawID, args = args[0], args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return 0, nil, usageError{msg: err.Error()}
	}
	rest := fs.Args()
	if withID && rawID == "" && len(rest) > 0 {
		rawID, rest = rest[0], rest[1:]
	}
	if len(rest) > 0 {
		return 0, nil, usageError{msg: fmt.Sprintf("argumento inesperado: %q", rest[0])}
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !withID {
		return 0, set, nil
	}
	if rawID == "" {
		return 0, nil, usageError{msg: "informe o ID"}
	}
	id, err := parseID(rawID)
	return id, set, err
}

func savedVerb(edit bool) string {
	if edit {
		return "atualizado"
	}
	return "criado"
}

func (a *app) remove(args []string, label string, del func(int64) error, show func() error) error {
	if len(args) != 1 {
		return usageError{msg: "informe o ID"}
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := del(id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s %d excluído\n", label, id)
	return show()
}

func (a *app) showClients(ctx context.Context) error {
	if err := a.reloadClients(ctx); err != nil {
		return err
	}
	a.printClients(firstPage())
	return nil
}

func (a *app) showUnits(ctx context.Context) error {
	if err := a.reloadUnits(ctx); err != nil {
		return err
	}
	a.printUnits(firstPage())
	return nil
}

func (a *app) showCourts(ctx context.Context) error {
	if err := a.reloadCourts(ctx); err != nil {
		return err
	}
	a.printCourts(firstPage())
	return nil
}

func (a *app) showBookings(ctx context.Context) error {
	if err := a.reloadUnits(ctx); err != nil {
		return err
	}
	if err := a.reloadBookings(ctx, apiclient.BookingFilter{}); err != nil {
		return err
	}
	a.printBookings(0, firstPage())
	return nil
}

func (a *app) saveClient(ctx context.Context, args []string, edit bool) error {
	var nome, telefone string
	var enderecos stringList
	id, set, err := parseForm("clientes", args, edit, func(fs *flag.FlagSet) {
		fs.StringVar(&nome, "nome", "", "nome")
		fs.StringVar(&telefone, "telefone", "", "telefone")
		fs.Var(&enderecos, "endereco", "endereço (repetível)")
	})
	if err != nil {
		return err
	}

	req := client.ClientRequest{Nome: nome, Telefone: telefone, Enderecos: enderecos}
	var saved *client.Client
	if edit {
		cur, err := a.api.GetClient(ctx, id)
		if err != nil {
			return err
		}
		req = client.ClientRequest{Nome: cur.Name, Telefone: cur.Phone, Enderecos: cur.Addresses}
		if set["nome"] {
			req.Nome = nome
		}
		if set["telefone"] {
			req.Telefone = telefone
		}
		if set["endereco"] {
			req.Enderecos = enderecos
		}
		saved, err = a.api.UpdateClient(ctx, id, req)
		if err != nil {
			return err
		}
	} else if saved, err = a.api.CreateClient(ctx, req); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Cliente %d (%s) %s\n", saved.ID, saved.Name, savedVerb(edit))
	return a.showClients(ctx)
}

func (a *app) deleteClient(ctx context.Context, args []string) error {
	return a.remove(args, "Cliente",
		func(id int64) error { return a.api.DeleteClient(ctx, id) },
		func() error { return a.showClients(ctx) })
}

func (a *app) saveUnit(ctx context.Context, args []string, edit bool) error {
	var nome, localizacao, telefone string
	id, set, err := parseForm("unidades", args, edit, func(fs *flag.FlagSet) {
		fs.StringVar(&nome, "nome", "", "nome")
		fs.StringVar(&localizacao, "localizacao", "", "localização")
		fs.StringVar(&telefone, "telefone", "", "telefone")
	})
	if err != nil {
		return err
	}

	req := unit.UnitRequest{Nome: nome, Localizacao: localizacao, Telefone: telefone}
	var saved *unit.Unit
	if edit {
		cur, err := a.api.GetUnit(ctx, id)
		if err != nil {
			return err
		}
		req = unit.UnitRequest{Nome: cur.Name, Localizacao: cur.Location, Telefone: cur.Phone}
		if set["nome"] {
			req.Nome = nome
		}
		if set["localizacao"] {
			req.Localizacao = localizacao
		}
		if set["telefone"] {
			req.Telefone = telefone
		}
		saved, err = a.api.UpdateUnit(ctx, id, req)
		if err != nil {
			return err
		}
	} else if saved, err = a.api.CreateUnit(ctx, req); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Unidade %d (%s) %s\n", saved.ID, saved.Name, savedVerb(edit))
	return a.showUnits(ctx)
}

func (a *app) deleteUnit(ctx context.Context, args []string) error {
	return a.remove(args, "Unidade",
		func(id int64) error { return a.api.DeleteUnit(ctx, id) },
		func() error { return a.showUnits(ctx) })
}

func (a *app) saveCourt(ctx context.Context, args []string, edit bool) error {
	var nome, localizacao, tipo string
	var preco amountFlag
	var unidade int64
	var disponivel bool
	id, set, err := parseForm("quadras", args, edit, func(fs *flag.FlagSet) {
		fs.StringVar(&nome, "nome", "", "nome")
		fs.StringVar(&localizacao, "localizacao", "", "localização")
		fs.StringVar(&tipo, "tipo", "", "tipo")
		fs.Var(&preco, "preco", "preço base")
		fs.Int64Var(&unidade, "unidade", 0, "ID da unidade")
		fs.BoolVar(&disponivel, "disponivel", true, "disponível para agendamento")
	})
	if err != nil {
		return err
	}

	req := court.CourtRequest{Nome: nome, Localizacao: localizacao, Tipo: tipo, IdUnidade: unidade}
	if preco.set {
		req.Precobase = preco.ptr()
	}
	if set["disponivel"] {
		req.EstaDisponivel = &disponivel
	}

	var saved *court.Court
	if edit {
		cur, err := a.api.GetCourt(ctx, id)
		if err != nil {
			return err
		}
		price := money.Amount(cur.BasePrice)
		available := cur.Available
		req = court.CourtRequest{
			Nome: cur.Name, Localizacao: cur.Location, Tipo: cur.Type,
			Precobase: &price, EstaDisponivel: &available, IdUnidade: cur.UnitID,
		}
		if set["nome"] {
			req.Nome = nome
		}
		if set["localizacao"] {
			req.Localizacao = localizacao
		}
		if set["tipo"] {
			req.Tipo = tipo
		}
		if preco.set {
			req.Precobase = preco.ptr()
		}
		if set["unidade"] {
			req.IdUnidade = unidade
		}
		if set["disponivel"] {
			req.EstaDisponivel = &disponivel
		}
		saved, err = a.api.UpdateCourt(ctx, id, req)
		if err != nil {
			return err
		}
	} else if saved, err = a.api.CreateCourt(ctx, req); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Quadra %d (%s) %s\n", saved.ID, saved.Name, savedVerb(edit))
	return a.showCourts(ctx)
}

func (a *app) deleteCourt(ctx context.Context, args []string) error {
	return a.remove(args, "Quadra",
		func(id int64) error { return a.api.DeleteCourt(ctx, id) },
		func() error { return a.showCourts(ctx) })
}

// pickCourt chooses among the bookable courts of a unit. Without an explicit
// choice the first option wins.
func pickCourt(options []court.Court, unitID, want int64, explicit bool) (court.Court, error) {
	if len(options) == 0 {
		return court.Court{}, fmt.Errorf("nenhuma quadra disponível na unidade %d", unitID)
	}
	if !explicit {
		return options[0], nil
	}
	for _, c := range options {
		if c.ID == want {
			return c, nil
		}
	}
	return court.Court{}, fmt.Errorf("quadra %d não está disponível na unidade %d", want, unitID)
}

func (a *app) saveBooking(ctx context.Context, args []string, edit bool) error {
	var data string
	var preco amountFlag
	var cliente, unidade, quadra int64
	id, set, err := parseForm("agendamentos", args, edit, func(fs *flag.FlagSet) {
		fs.StringVar(&data, "data", "", "data e hora")
		fs.Var(&preco, "preco", "preço")
		fs.Int64Var(&cliente, "cliente", 0, "ID do cliente")
		fs.Int64Var(&unidade, "unidade", 0, "ID da unidade")
		fs.Int64Var(&quadra, "quadra", 0, "ID da quadra")
	})
	if err != nil {
		return err
	}

	var req booking.BookingRequest
	unitID := unidade
	if edit {
		cur, err := a.api.GetBooking(ctx, id)
		if err != nil {
			return err
		}
		price := money.Amount(cur.Price)
		req = booking.BookingRequest{
			DataHoraAgendamento: wallclock.Format(cur.ScheduledAt.Time),
			Preco:               &price,
			IdCliente:           cur.ClientID,
			IdQuadra:            cur.CourtID,
		}
		if !set["unidade"] {
			unitID = cur.UnitID
		}
	} else if !set["unidade"] {
		return usageError{msg: "informe a unidade com -unidade"}
	}

	if !edit || set["unidade"] || set["quadra"] {
		if err := a.reloadCourts(ctx); err != nil {
			return err
		}
		chosen, err := pickCourt(view.CourtOptions(a.courts.All(), unitID), unitID, quadra, set["quadra"])
		if err != nil {
			return err
		}
		req.IdQuadra = chosen.ID
		if !edit && !preco.set {
			price := money.Amount(chosen.BasePrice)
			req.Preco = &price
		}
	}
	if set["data"] {
		req.DataHoraAgendamento = data
	}
	if set["cliente"] {
		req.IdCliente = cliente
	}
	if preco.set {
		req.Preco = preco.ptr()
	}

	var saved *booking.Booking
	if edit {
		saved, err = a.api.UpdateBooking(ctx, id, req)
	} else {
		saved, err = a.api.CreateBooking(ctx, req)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Agendamento %d (%s, %s) %s\n", saved.ID, saved.ClientName, saved.CourtName, savedVerb(edit))
	return a.showBookings(ctx)
}

func (a *app) deleteBooking(ctx context.Context, args []string) error {
	return a.remove(args, "Agendamento",
		func(id int64) error { return a.api.DeleteBooking(ctx, id) },
		func() error { return a.showBookings(ctx) })
}
