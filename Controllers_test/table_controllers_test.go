package Controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/dinehub/controllers"
	"github.com/yeremiapane/dinehub/events"
	"github.com/yeremiapane/dinehub/models"
	"github.com/yeremiapane/dinehub/utils"
)

func setupTestDBForTables(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Restaurant{}, &models.Table{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	db.Create(&models.Restaurant{
		Name: "Test Resto", Latitude: testLat, Longitude: testLng,
		GeofenceRadius: 100, Active: true,
	})
	return db
}

func setupTableRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	tableCtrl := controllers.NewTableController(db, events.NewHub())
	staff := router.Group("/staff", asStaff(1))
	staff.GET("/tables", tableCtrl.GetAllTables)
	staff.POST("/tables", tableCtrl.CreateTable)
	staff.PATCH("/tables/:table_id/active", tableCtrl.SetTableActive)
	staff.POST("/tables/:table_id/regenerate-token", tableCtrl.RegenerateScanToken)
	return router
}

func TestCreateTableReturnsScanToken(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)
	router := setupTableRouter(db)

	w := postJSON(t, router, "/staff/tables", map[string]interface{}{
		"table_number": "T7",
	}, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})

	// The token is returned once for QR printing and never in table JSON.
	scanToken, ok := data["scan_token"].(string)
	assert.True(t, ok)
	assert.NotEmpty(t, scanToken)
	tableJSON := data["table"].(map[string]interface{})
	_, leaked := tableJSON["scan_token"]
	assert.False(t, leaked)
}

func TestGetAllTablesScopedToRestaurant(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)
	db.Create(&models.Table{RestaurantID: 1, TableNumber: "T1", ScanToken: "a", Active: true})
	db.Create(&models.Table{RestaurantID: 2, TableNumber: "X1", ScanToken: "b", Active: true})
	router := setupTableRouter(db)

	req, _ := http.NewRequest("GET", "/staff/tables", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	tables := resp["data"].([]interface{})
	assert.Len(t, tables, 1)
}

func TestRegenerateScanToken(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)
	db.Create(&models.Table{RestaurantID: 1, TableNumber: "T1", ScanToken: "old-token", Active: true})
	router := setupTableRouter(db)

	w := postJSON(t, router, "/staff/tables/1/regenerate-token", map[string]interface{}{}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.NotEqual(t, "old-token", data["scan_token"])

	var table models.Table
	db.First(&table, 1)
	assert.Equal(t, data["scan_token"], table.ScanToken)
}

func TestSetTableActive(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)
	db.Create(&models.Table{RestaurantID: 1, TableNumber: "T1", ScanToken: "a", Active: true})
	router := setupTableRouter(db)

	w := patchJSON(t, router, "/staff/tables/1/active", map[string]interface{}{"active": false})
	assert.Equal(t, http.StatusOK, w.Code)

	var table models.Table
	db.First(&table, 1)
	assert.False(t, table.Active)
}

func TestRegenerateScanTokenForeignTable(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)
	db.Create(&models.Table{RestaurantID: 2, TableNumber: "X1", ScanToken: "b", Active: true})
	router := setupTableRouter(db)

	w := postJSON(t, router, "/staff/tables/1/regenerate-token", map[string]interface{}{}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
