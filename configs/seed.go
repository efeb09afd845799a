package configs

import (
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/trygraphite/platter-sub000/entity"
)

// SeedAdmin creates the first restaurant plus its ADMIN account from env.
func SeedAdmin(email, pass string) error {
	db := DB()
	if email == "" || pass == "" {
		log.Println("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.Staff{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		log.Println("admin already exists:", email)
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	admin := entity.Staff{
		Email:    email,
		Password: string(hash),
		Name:     "Admin",
		Role:     entity.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	restaurant := entity.Restaurant{Name: "Demo Restaurant", OwnerID: admin.ID}
	if err := db.Create(&restaurant).Error; err != nil {
		return err
	}
	return db.Model(&admin).Update("restaurant_id", restaurant.ID).Error
}

// SeedLookups creates the demo stations and tables the first restaurant
// starts with. Tables get fresh QR tokens on first creation.
func SeedLookups() error {
	db := DB()

	var restaurant entity.Restaurant
	if err := db.First(&restaurant).Error; err != nil {
		log.Println("skip seeding lookups: no restaurant yet")
		return nil
	}

	for _, name := range []string{"Grill", "Bar", "Pastry"} {
		db.FirstOrCreate(&entity.ServicePoint{},
			entity.ServicePoint{Name: name, RestaurantID: restaurant.ID})
	}

	for _, number := range []string{"T1", "T2", "T3", "T4"} {
		var count int64
		db.Model(&entity.Table{}).
			Where("number = ? AND restaurant_id = ?", number, restaurant.ID).
			Count(&count)
		if count == 0 {
			db.Create(&entity.Table{
				Number:       number,
				QRToken:      uuid.NewString(),
				RestaurantID: restaurant.ID,
			})
		}
	}
	return nil
}
