// Seeds an admin account and a pair of demo users for local development.
package main

import (
	"log"
	"os"

	"securebank/internal/config"
	"securebank/internal/models"
	"securebank/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer func() {
		if sqlDB, err := repositories.DB.DB(); err == nil {
			sqlDB.Close()
		}
		if repositories.CacheService != nil {
			repositories.CacheService.Close()
		}
	}()

	seed(adminEmail, adminPassword, "Admin", "admin")
	seed("alice@example.com", "Passw0rd!alice", "Alice", "user")
	seed("bob@example.com", "Passw0rd!bob", "Bob", "user")
}

func seed(email, password, name, role string) {
	var existing models.User
	if err := repositories.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Printf("user %s already exists", email)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	u := models.User{
		Email:        email,
		Password:     string(hashed),
		Name:         name,
		Role:         role,
		Status:       "active",
		TokenVersion: 1,
	}
	if err := repositories.DB.Create(&u).Error; err != nil {
		log.Fatal("Failed to create user:", err)
	}
	log.Printf("created %s account %s", role, email)
}
