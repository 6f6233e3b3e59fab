package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"beachbox/internal/config"
	"beachbox/internal/database"
	"beachbox/internal/domain/booking"
	"beachbox/internal/domain/client"
	"beachbox/internal/domain/court"
	"beachbox/internal/domain/unit"
	"beachbox/internal/pkg/money"
	"beachbox/internal/pkg/wallclock"
	"beachbox/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config:", err)
	}
	if cfg.IsProd() {
		log.Fatal("refusing to seed a production database")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	defer database.Close(db)

	log.Println("Running AutoMigrate...")
	if err := server.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	for _, table := range []string{"bookings", "client_addresses", "clients", "courts", "units"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("clean %s: %v", table, err)
		}
	}

	ctx := context.Background()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	// ================== UNITS ==================
	unitSvc := unit.NewService(unit.NewRepository(db))
	units := []*unit.Unit{}
	for _, req := range []unit.UnitRequest{
		{Nome: "Beach Box Centro", Localizacao: "Av. Brasil, 1200", Telefone: "(35) 3333-1000"},
		{Nome: "Beach Box Orla", Localizacao: "Rua da Praia, 45", Telefone: "(35) 3333-2000"},
	} {
		u, err := unitSvc.Create(ctx, req)
		if err != nil {
			log.Fatal("create unit:", err)
		}
		units = append(units, u)
	}
	log.Printf("Created %d units", len(units))

	// ================== COURTS ==================
	courtRepo := court.NewRepository(db)
	courtSvc := court.NewService(courtRepo, unit.NewRepository(db))
	courts := []*court.Court{}
	for i, u := range units {
		for j, tipo := range court.Types {
			price := money.Amount(60 + 10*j)
			c, err := courtSvc.Create(ctx, court.CourtRequest{
				Nome:        fmt.Sprintf("Quadra %d%c", i+1, 'A'+j),
				Localizacao: fmt.Sprintf("Setor %d", j+1),
				Tipo:        tipo,
				Precobase:   &price,
				IdUnidade:   u.ID,
			})
			if err != nil {
				log.Fatal("create court:", err)
			}
			courts = append(courts, c)
		}
	}
	log.Printf("Created %d courts", len(courts))

	// ================== CLIENTS ==================
	clientRepo := client.NewRepository(db)
	clientSvc := client.NewService(clientRepo)
	clients := []*client.Client{}
	for i, name := range []string{"Ana Souza", "Bruno Lima", "Carla Dias", "Diego Alves", "Elisa Rocha"} {
		c, err := clientSvc.Create(ctx, client.ClientRequest{
			Nome:      name,
			Telefone:  fmt.Sprintf("(35) 9%04d-%04d", 1000+i, 2000+i),
			Enderecos: []string{fmt.Sprintf("Rua %d, %d", i+1, 100+i)},
		})
		if err != nil {
			log.Fatal("create client:", err)
		}
		clients = append(clients, c)
	}
	log.Printf("Created %d clients", len(clients))

	// ================== BOOKINGS ==================
	bookingSvc := booking.NewService(booking.NewBookingRepository(db), clientRepo, courtRepo)
	today := wallclock.Today()
	created := 0
	for day := -7; day <= 7; day++ {
		date := today.AddDate(0, 0, day)
		for n := 0; n < 6; n++ {
			c := courts[rng.Intn(len(courts))]
			cl := clients[rng.Intn(len(clients))]
			hour := cfg.OpeningHour + rng.Intn(cfg.SlotsPerDay())
			at := date.Add(time.Duration(hour) * time.Hour)
			price := money.Amount(c.BasePrice + float64(rng.Intn(3))*10)

			_, err := bookingSvc.Create(ctx, booking.BookingRequest{
				DataHoraAgendamento: wallclock.Format(at),
				Preco:               &price,
				IdCliente:           cl.ID,
				IdQuadra:            c.ID,
			})
			if errors.Is(err, booking.ErrSlotTaken) {
				continue
			}
			if err != nil {
				log.Fatal("create booking:", err)
			}
			created++
		}
	}
	log.Printf("Created %d bookings", created)
	log.Println("Seed completed")
}
