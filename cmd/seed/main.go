package main

import (
	"context"
	"log"

	"gorm.io/gorm"

	"debtledger/internal/config"
	"debtledger/internal/database"
	"debtledger/internal/domain/client"
)

type demoSale struct {
	name, debt, company string
	payments            []string
	paid                bool
}

var demoSales = []demoSale{
	{name: "Ana López", debt: "100", company: "Avon", payments: []string{"40"}},
	{name: "Beatriz Ruiz", debt: "250.50", company: "Avon"},
	{name: "Carmen Díaz", debt: "80", company: "Scentia", payments: []string{"30", "50"}},
	{name: "Daniela Mora", debt: "45", company: "Scentia", paid: true},
	{name: "Elena Castro", debt: "120", company: "Zermat", payments: []string{"20"}},
	{name: "Fabiola Rivas", debt: "60.75", company: "Zermat"},
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	// Cleanup old data
	log.Println("Cleaning old data...")
	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&client.Payment{}).Error; err != nil {
		log.Fatalf("cleanup client_payments failed: %v", err)
	}
	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&client.Client{}).Error; err != nil {
		log.Fatalf("cleanup clients failed: %v", err)
	}

	store := client.NewStore(db)
	defer store.Close()

	svc := client.NewService(store, client.Options{
		Location:   cfg.Location,
		DateLayout: cfg.DateLayout,
		Companies:  cfg.Companies,
	})

	log.Println("Creating clients...")
	for _, s := range demoSales {
		if _, err := svc.AddClient(ctx, s.name, s.debt, s.company); err != nil {
			log.Fatalf("seed %s: %v", s.name, err)
		}
		for _, amount := range s.payments {
			if _, err := svc.RecordPayment(ctx, s.name, amount); err != nil {
				log.Fatalf("seed payment %s: %v", s.name, err)
			}
		}
		if s.paid {
			if _, err := svc.MarkPaid(ctx, s.name); err != nil {
				log.Fatalf("seed mark paid %s: %v", s.name, err)
			}
		}
	}

	var count int64
	db.Model(&client.Client{}).Count(&count)
	log.Printf("seed completed: clients=%d db=%s", count, cfg.DatabaseURL)
}
