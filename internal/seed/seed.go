package seed

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/sd-store/catalog-service/internal/catalog/domain"
	userdomain "github.com/sd-store/catalog-service/internal/user/domain"
	"github.com/sd-store/catalog-service/pkg/auth"
	"github.com/sd-store/catalog-service/pkg/logger"
)

type seedUser struct {
	username string
	password string
	email    string
	role     string
}

type seedProduct struct {
	name        string
	description string
	price       string
	quantity    int
	category    string
}

var users = []seedUser{
	{"admin", "admin123", "admin@store.com", userdomain.RoleAdmin},
	{"manager", "manager123", "manager@store.com", userdomain.RoleManager},
	{"employee", "employee123", "employee@store.com", userdomain.RoleEmployee},
	{"user", "user123", "user@store.com", userdomain.RoleUser},
}

var products = []seedProduct{
	{"Laptop", "Gaming laptop", "7999.99", 10, "Electronics"},
	{"Smartphone", "Iphone", "5699.99", 15, "Electronics"},
	{"Book", "Java programming guide", "49.25", 25, "Books"},
	{"Office Chair", "Ergonomic office chair", "1000.00", 8, "Furniture"},
	{"Coffee", "Coffee beans", "40.50", 50, "Food"},
}

// Run creates the default accounts and catalog products if they are absent.
// Safe to call on every startup.
func Run(userRepo userdomain.UserRepository, productRepo catalogdomain.ProductRepository) error {
	if err := seedUsers(userRepo); err != nil {
		return err
	}
	if err := seedProducts(productRepo); err != nil {
		return err
	}
	logger.Logger.Info().Msg("Data seeding completed")
	return nil
}

func seedUsers(repo userdomain.UserRepository) error {
	for _, s := range users {
		existing, err := repo.FindByUsername(s.username)
		if err != nil && !errors.Is(err, userdomain.ErrNotFound) {
			return fmt.Errorf("failed to check user %q: %w", s.username, err)
		}
		if existing != nil {
			continue
		}

		hashed, err := auth.HashPassword(s.password)
		if err != nil {
			return fmt.Errorf("failed to hash password for %q: %w", s.username, err)
		}
		if err := repo.Create(&userdomain.User{
			Username: s.username,
			Email:    s.email,
			Password: hashed,
			Role:     s.role,
			IsActive: true,
		}); err != nil {
			return fmt.Errorf("failed to seed user %q: %w", s.username, err)
		}
		logger.Logger.Info().Str("username", s.username).Str("role", s.role).Msg("Seeded user")
	}
	return nil
}

func seedProducts(repo catalogdomain.ProductRepository) error {
	for _, s := range products {
		existing, err := repo.FindByName(s.name)
		if err != nil && !errors.Is(err, catalogdomain.ErrNotFound) {
			return fmt.Errorf("failed to check product %q: %w", s.name, err)
		}
		if existing != nil {
			continue
		}

		if err := repo.Create(&catalogdomain.Product{
			Name:        s.name,
			Description: s.description,
			Price:       decimal.RequireFromString(s.price),
			Quantity:    s.quantity,
			Category:    s.category,
		}); err != nil {
			return fmt.Errorf("failed to seed product %q: %w", s.name, err)
		}
		logger.Logger.Info().Str("name", s.name).Msg("Seeded product")
	}
	return nil
}
