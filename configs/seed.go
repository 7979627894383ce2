package configs

import (
	"log"

	"github.com/chandanamca2024-dotco/canteenapp-sub001/entity"
	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin creates the first admin account from env, once.
func SeedAdmin() error {
	db := DB()
	email := getEnv("ADMIN_EMAIL", "")
	pass := getEnv("ADMIN_PASSWORD", "")
	if email == "" || pass == "" {
		log.Println("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		log.Println("admin already exists:", email)
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	admin := entity.User{
		Email:     email,
		Password:  string(hash),
		FirstName: "Canteen",
		LastName:  "Admin",
		Role:      "admin",
	}
	return db.Create(&admin).Error
}

// SeedLookups fills the order-status lookup table.
func SeedLookups() error {
	db := DB()

	db.FirstOrCreate(&entity.OrderStatus{}, entity.OrderStatus{StatusName: "Pending"})
	db.FirstOrCreate(&entity.OrderStatus{}, entity.OrderStatus{StatusName: "Preparing"})
	db.FirstOrCreate(&entity.OrderStatus{}, entity.OrderStatus{StatusName: "Ready"})
	db.FirstOrCreate(&entity.OrderStatus{}, entity.OrderStatus{StatusName: "Completed"})
	db.FirstOrCreate(&entity.OrderStatus{}, entity.OrderStatus{StatusName: "Cancelled"})

	log.Println("lookup tables seeded")
	return nil
}

// SeedMenu loads a small starter menu so a fresh install isn't empty.
func SeedMenu() error {
	db := DB()

	var count int64
	if err := db.Model(&entity.MenuItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	items := []entity.MenuItem{
		{Name: "Veg Thali", Detail: "Rice, dal, two curries", Price: 6500, Category: "Meals", FoodType: "veg", Available: true, Stock: 40},
		{Name: "Chicken Rice", Detail: "Steamed chicken over rice", Price: 7500, Category: "Meals", FoodType: "non-veg", Available: true, Stock: 30},
		{Name: "Masala Dosa", Price: 5000, Category: "Snacks", FoodType: "veg", Available: true, Stock: 25},
		{Name: "Iced Tea", Price: 2500, Category: "Drinks", FoodType: "veg", Available: true, Stock: 100},
		{Name: "Filter Coffee", Price: 2000, Category: "Drinks", FoodType: "veg", Available: true, Stock: 100},
	}
	return db.Create(&items).Error
}
