package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeremiapane/dinehub/events"
	"github.com/yeremiapane/dinehub/models"
	"github.com/yeremiapane/dinehub/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	m.Run()
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Restaurant{},
		&models.User{},
		&models.Table{},
		&models.Session{},
		&models.MenuCategory{},
		&models.Menu{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderCounter{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// Monas, central Jakarta. Test device coordinates are offsets from here.
const (
	testLat = -6.175392
	testLng = 106.827153
)

func seedRestaurant(t *testing.T, db *gorm.DB, name string) *models.Restaurant {
	t.Helper()
	restaurant := &models.Restaurant{
		Name:           name,
		Latitude:       testLat,
		Longitude:      testLng,
		GeofenceRadius: 100,
		Active:         true,
	}
	if err := db.Create(restaurant).Error; err != nil {
		t.Fatalf("failed to seed restaurant: %v", err)
	}
	return restaurant
}

func seedTable(t *testing.T, db *gorm.DB, restaurantID uint, number string) *models.Table {
	t.Helper()
	table := &models.Table{
		RestaurantID: restaurantID,
		TableNumber:  number,
		ScanToken:    fmt.Sprintf("scan-%d-%s", restaurantID, number),
		Active:       true,
	}
	if err := db.Create(table).Error; err != nil {
		t.Fatalf("failed to seed table: %v", err)
	}
	return table
}

func seedMenu(t *testing.T, db *gorm.DB, restaurantID uint, name, price string) *models.Menu {
	t.Helper()
	category := &models.MenuCategory{RestaurantID: restaurantID, Name: "Mains"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	menu := &models.Menu{
		RestaurantID: restaurantID,
		CategoryID:   category.ID,
		Name:         name,
		Price:        decimal.RequireFromString(price),
		Available:    true,
	}
	if err := db.Create(menu).Error; err != nil {
		t.Fatalf("failed to seed menu: %v", err)
	}
	return menu
}

func newSessionService(db *gorm.DB) *SessionService {
	return NewSessionService(db, events.NewHub(), 30*time.Minute, 180*time.Minute)
}

func newOrderService(db *gorm.DB) *OrderService {
	hub := events.NewHub()
	sessions := NewSessionService(db, hub, 30*time.Minute, 180*time.Minute)
	return NewOrderService(db, hub, sessions)
}

func atTable(t *testing.T, ss *SessionService, scanToken string) *models.Session {
	t.Helper()
	lat, lng := testLat, testLng
	session, err := ss.Start(scanToken, &lat, &lng)
	if err != nil {
		t.Fatalf("failed to start session: %v", err)
	}
	return session
}
