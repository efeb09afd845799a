package configs

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/trygraphite/platter-sub000/entity"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(dsn string) {
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db = database
}

func SetupDatabase() {
	db.AutoMigrate(
		&entity.Staff{},
		&entity.Restaurant{}, &entity.ServicePoint{}, &entity.Table{},
		&entity.MenuItem{}, &entity.Variety{},
		&entity.Order{}, &entity.OrderItem{},
	)
}
