package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"enquirycrm/internal/config"
	"enquirycrm/internal/database"
	"enquirycrm/internal/domain"
	"enquirycrm/internal/logger"
	"enquirycrm/internal/services"
	"enquirycrm/internal/store"
	"enquirycrm/internal/util"
	apperrors "enquirycrm/pkg/errors"
)

func main() {
	username := flag.String("username", envOr("ADMIN_USERNAME", "admin"), "admin username")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "admin password (at least 8 characters)")
	email := flag.String("email", os.Getenv("ADMIN_EMAIL"), "admin email")
	name := flag.String("name", "System Administrator", "display name")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.For("ADMIN")

	if *password == "" {
		log.Fatal("A password is required: pass -password or set ADMIN_PASSWORD")
	}
	if err := database.Init(cfg.Database); err != nil {
		log.WithError(err).Fatal("Failed to initialize database")
	}

	users := store.NewUserStore(database.GetDB())
	auth := services.NewAuthService(users, util.NewTokenManager(cfg.Auth.SecretKey, cfg.Auth.TokenExpiry()))

	in := services.NewUser{
		Username: *username,
		Password: *password,
		Name:     *name,
		Role:     domain.RoleSuperAdmin,
	}
	if *email != "" {
		in.Email = email
	}

	user, err := auth.CreateUser(context.Background(), in)
	switch {
	case apperrors.IsConflict(err):
		fmt.Printf("User %q already exists!\n", *username)
		return
	case err != nil:
		log.WithError(err).Fatal("Failed to create admin user")
	}

	fmt.Println("Admin user created successfully!")
	fmt.Printf("ID: %d\nUsername: %s\nRole: %s\n", user.ID, user.Username, user.Role)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
