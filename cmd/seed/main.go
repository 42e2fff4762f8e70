package main

import (
	"context"
	"log"
	"time"

	"soccerspot/internal/config"
	"soccerspot/internal/database"
	"soccerspot/internal/domain"
	"soccerspot/internal/pricing"
	"soccerspot/internal/repository"
)

func money(v pricing.Money) *pricing.Money { return &v }

func intPtr(v int) *int { return &v }

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config:", err)
	}

	db, err := database.Connect(cfg.DatabaseURL, nil)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM promotions")
	db.Exec("DELETE FROM fields")

	ctx := context.Background()
	fields := repository.NewFieldRepository(db)
	promos := repository.NewPromotionRepository(db)

	log.Println("Creating fields...")
	seedFields := []domain.Field{
		{
			OwnerID:  2,
			Name:     "Stade Synthétique de Cocody",
			City:     "Abidjan",
			Address:  "Rue des Jardins, Cocody",
			Rates:    pricing.FieldRates{Net1h: money(20000), Net1h30: money(28000), Net2h: money(36000)},
			IsActive: true,
		},
		{
			OwnerID:  2,
			Name:     "Five Yopougon",
			City:     "Abidjan",
			Address:  "Quartier Sideci, Yopougon",
			Rates:    pricing.FieldRates{Net1h: money(15000)},
			IsActive: true,
		},
		{
			OwnerID: 3,
			Name:    "Dakar Foot Arena",
			City:    "Dakar",
			Address: "Route de Ouakam",
			// Imported from the old catalogue, which only stored a public hourly price.
			Rates:    pricing.FieldRates{PricePerHour: money(25000)},
			IsActive: true,
		},
	}
	for i := range seedFields {
		if err := fields.Create(ctx, &seedFields[i]); err != nil {
			log.Fatal("create field:", err)
		}
	}

	log.Println("Creating promotions...")
	now := time.Now().UTC()
	until := now.AddDate(0, 3, 0)
	seedPromos := []domain.Promotion{
		{
			FieldID:        seedFields[0].ID,
			OwnerID:        2,
			Title:          "Happy hour en semaine",
			Discount:       pricing.Discount{Kind: pricing.DiscountPercent, Value: 20},
			Days:           domain.WeekdaysOf(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday),
			SlotFromMinute: intPtr(10 * 60),
			SlotToMinute:   intPtr(16 * 60),
			EndsAt:         &until,
			IsActive:       true,
		},
		{
			FieldID:          seedFields[0].ID,
			OwnerID:          2,
			Title:            "Code GOAL",
			Code:             "GOAL",
			Discount:         pricing.Discount{Kind: pricing.DiscountFixed, Value: 5000},
			MinBookingAmount: 25000,
			MaxUses:          intPtr(100),
			IsActive:         true,
		},
		{
			FieldID:        seedFields[1].ID,
			OwnerID:        2,
			Title:          "Nuit du foot",
			Discount:       pricing.Discount{Kind: pricing.DiscountPercent, Value: 15},
			SlotFromMinute: intPtr(22 * 60),
			SlotToMinute:   intPtr(2 * 60),
			IsActive:       true,
		},
	}
	for i := range seedPromos {
		if err := promos.Create(ctx, &seedPromos[i]); err != nil {
			log.Fatal("create promotion:", err)
		}
	}

	conv := pricing.DefaultConverter()
	for _, f := range seedFields {
		if net, ok := f.Rates.EffectiveNetPrice(conv, 60); ok {
			log.Printf("field=%d %q 1h net=%s public=%s", f.ID, f.Name, net, conv.ToPublicPrice(net))
		}
	}
	log.Printf("Seed completed: %d fields, %d promotions", len(seedFields), len(seedPromos))
}
