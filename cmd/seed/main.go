package main

import (
	"context"
	"log"

	"bankcards/internal/cardcrypto"
	"bankcards/internal/config"
	"bankcards/internal/db"
	"bankcards/internal/model"
	"bankcards/internal/repository"
	"bankcards/internal/service"
)

// Seeds an administrator and a demo user with two issued cards. Safe to run
// against an empty database only; existing logins make it exit early.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Card{},
		&model.CardBalance{},
		&model.BlockRequest{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	numberCipher, err := cardcrypto.NewCipher(cfg.CardCipherKey)
	if err != nil {
		log.Fatalf("card cipher init: %v", err)
	}
	numberIndex := cardcrypto.NewIndex(cfg.CardIndexKey)

	userRepo := repository.NewUserRepository(gormDB)
	cardRepo := repository.NewCardRepository(gormDB)
	cardService := service.NewCardService(cardRepo, numberCipher, numberIndex, nil)
	userService := service.NewUserService(userRepo, cardService, nil)

	ctx := context.Background()

	admin := &model.User{Name: "Admin", LastName: "Admin", Login: "admin"}
	if err := userService.Register(ctx, admin, "admin123"); err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	log.Printf("created admin %q (id %d)", admin.Login, admin.ID)

	demo := &model.User{Name: "Demo", LastName: "User", Login: "demo"}
	if err := userService.Register(ctx, demo, "demo123"); err != nil {
		log.Fatalf("seed demo user: %v", err)
	}
	log.Printf("created user %q (id %d)", demo.Login, demo.ID)

	for i := 0; i < 2; i++ {
		card, err := cardService.Issue(ctx, demo.ID)
		if err != nil {
			log.Fatalf("issue card: %v", err)
		}
		log.Printf("issued card %d for user %d", card.ID, demo.ID)
	}
}
