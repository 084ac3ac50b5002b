// Creates or resets the bootstrap administrator account.
//
// The server seeds the admin on startup, so this script is only needed when
// the account was locked out or its password lost: it forces the credentials
// back to the values in configs/config.yaml.
//
// Usage: go run scripts/create_admin.go

package main

import (
	"cbt_backend/internal/config"
	"cbt_backend/internal/model"
	"cbt_backend/internal/util"
	"cbt_backend/pkg/database"
	"cbt_backend/pkg/logger"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("Failed to parse config file: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	hashed, err := util.HashPassword(cfg.Admin.Password)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	res := db.Model(&model.User{}).
		Where("username = ?", cfg.Admin.Username).
		Updates(map[string]interface{}{
			"hashed_password": hashed,
			"role":            model.Admin,
			"is_active":       true,
		})
	if res.Error != nil {
		log.Fatalf("Failed to reset admin account: %v", res.Error)
	}

	log.Printf("Admin account %q is ready", cfg.Admin.Username)
}
