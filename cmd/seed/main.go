package main

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"travelnest/internal/config"
	"travelnest/internal/database"
	"travelnest/internal/domain"
	"travelnest/internal/repository"
)

// Seeds a couple of demo accounts and listings for local development.
func main() {
	cfg := config.MustLoad()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	listings := repository.NewListingRepository(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}

	host := &domain.User{Email: "host@travelnest.local", PasswordHash: string(hash), Name: "Hanna Host"}
	guest := &domain.User{Email: "guest@travelnest.local", PasswordHash: string(hash), Name: "Gabriel Guest"}
	for _, u := range []*domain.User{host, guest} {
		if err := users.Create(ctx, u); err != nil {
			if err == repository.ErrDuplicate {
				log.Printf("user %s already seeded", u.Email)
				continue
			}
			log.Fatal(err)
		}
		log.Printf("created user %s (%s)", u.Email, u.ID)
	}

	demo := []*domain.Listing{
		{
			HostID:        host.ID,
			Title:         "Lakeside Cabin",
			Description:   "Quiet cabin with a private dock.",
			Location:      "Bahir Dar",
			PricePerNight: decimal.NewFromInt(100),
			PropertyType:  domain.PropertyCabin,
			MaxGuests:     4,
			Bedrooms:      2,
			Bathrooms:     1,
			Amenities:     "wifi,kitchen,parking",
			Available:     true,
		},
		{
			HostID:        host.ID,
			Title:         "Downtown Studio",
			Description:   "Walk everywhere from this compact studio.",
			Location:      "Addis Ababa",
			PricePerNight: decimal.NewFromFloat(59.99),
			PropertyType:  domain.PropertyStudio,
			MaxGuests:     2,
			Bedrooms:      1,
			Bathrooms:     1,
			Amenities:     "wifi,air_conditioning",
			Available:     true,
		},
	}
	// When the host already existed Create left its ID unset; skip re-seeding.
	if host.ID != uuid.Nil {
		for _, l := range demo {
			if err := listings.Create(ctx, l); err != nil {
				log.Fatal(err)
			}
			log.Printf("created listing %q (%s)", l.Title, l.ID)
		}
	}

	log.Println("seed complete")
}
