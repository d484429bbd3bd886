package configs

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/eldoghry/FoodDeliveryApp-sub000/entity"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(source string) {
	database, err := gorm.Open(sqlite.Open(source), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db = database
}

func SetupDatabase() {
	db.AutoMigrate(
		&entity.User{}, &entity.Address{},
		&entity.Restaurant{}, &entity.Menu{},
		&entity.Cart{}, &entity.CartItem{},
		&entity.Order{}, &entity.OrderItem{}, &entity.OrderStatusLog{},
		&entity.Transaction{}, &entity.TransactionStatusLog{},
		&entity.Review{},
	)
}
