package configs

import (
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/eldoghry/FoodDeliveryApp-sub000/entity"
)

// SeedDemo creates a demo owner, restaurant and menu on an empty database so
// the API is usable right after first boot.
func SeedDemo() error {
	db := DB()

	var count int64
	if err := db.Model(&entity.Restaurant{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(getEnv("SEED_OWNER_PASSWORD", "owner1234")), bcrypt.DefaultCost)
	owner := entity.User{
		Email:     getEnv("SEED_OWNER_EMAIL", "owner@example.com"),
		Password:  string(hash),
		FirstName: "Demo",
		LastName:  "Owner",
		Role:      "owner",
	}
	if err := db.Create(&owner).Error; err != nil {
		return err
	}

	rest := entity.Restaurant{
		Name:        "Demo Diner",
		Address:     "1 Demo Street",
		Description: "Seeded restaurant",
		IsOpen:      true,
		UserID:      owner.ID,
	}
	if err := db.Create(&rest).Error; err != nil {
		return err
	}

	menus := []entity.Menu{
		{Name: "Burger", Price: decimal.NewFromInt(10), IsAvailable: true, RestaurantID: rest.ID},
		{Name: "Fries", Price: decimal.NewFromInt(5), IsAvailable: true, RestaurantID: rest.ID},
	}
	if err := db.Create(&menus).Error; err != nil {
		return err
	}

	log.Println("seeded demo owner/restaurant/menu")
	return nil
}
