package services

import (
	"context"
	"testing"
	"time"

	"github.com/MalenaSein/anime-tracker/internal/config"
	"github.com/MalenaSein/anime-tracker/internal/models"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens an in-memory SQLite database with the app schema. Open
// connections are capped at one so every query sees the same database.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Anime{},
		&models.Schedule{},
		&models.PushSubscription{},
	); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret: "test-secret",
		JWTExpiry: 168 * time.Hour,
	}
}

func seedUser(t *testing.T, db *gorm.DB, username, email, password, pin string) *models.User {
	t.Helper()

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: string(passwordHash),
	}
	if pin != "" {
		pinHash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("failed to hash pin: %v", err)
		}
		h := string(pinHash)
		user.RecoveryPin = &h
	}

	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return &user
}

func seedAnime(t *testing.T, db *gorm.DB, userID uint, nombre string) *models.Anime {
	t.Helper()

	anime := models.Anime{
		UserID: userID,
		Nombre: nombre,
		Tipo:   "Anime",
		Estado: "viendo",
	}
	if err := db.Create(&anime).Error; err != nil {
		t.Fatalf("failed to seed anime: %v", err)
	}
	return &anime
}

// staticCovers satisfies CoverResolver without touching the network.
type staticCovers struct{ url string }

func (s staticCovers) CoverFor(_ context.Context, _ string) string { return s.url }
