package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/dinehub/controllers"
	"github.com/yeremiapane/dinehub/events"
	"github.com/yeremiapane/dinehub/models"
	"github.com/yeremiapane/dinehub/services"
	"github.com/yeremiapane/dinehub/utils"
)

const (
	testLat = -6.175392
	testLng = 106.827153
)

func setupTestDBForSessions(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(&models.Restaurant{}, &models.Table{}, &models.Session{})
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	restaurant := models.Restaurant{
		Name:           "Test Resto",
		Latitude:       testLat,
		Longitude:      testLng,
		GeofenceRadius: 100,
		Active:         true,
	}
	db.Create(&restaurant)
	table := models.Table{
		RestaurantID: restaurant.ID,
		TableNumber:  "T1",
		ScanToken:    "scan-t1",
		Active:       true,
	}
	db.Create(&table)
	return db
}

// asStaff stands in for the JWT middleware: it stores the same context
// keys AuthMiddleware would.
func asStaff(restaurantID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", uint(1))
		c.Set("restaurant_id", restaurantID)
		c.Set("role", "staff")
		c.Next()
	}
}

func setupSessionRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	hub := events.NewHub()
	sessionSvc := services.NewSessionService(db, hub, 30*time.Minute, 180*time.Minute)
	sessionCtrl := controllers.NewSessionController(db, sessionSvc)
	router.POST("/sessions", sessionCtrl.StartSession)
	router.GET("/sessions/verify", sessionCtrl.VerifySession)
	router.POST("/sessions/extend", sessionCtrl.ExtendSession)
	router.POST("/sessions/end", sessionCtrl.EndSession)
	router.POST("/staff/tables/:table_id/end-session", asStaff(1), sessionCtrl.EndTableSession)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, url string, payload map[string]interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	assert.NoError(t, err)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(body))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func startSession(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := postJSON(t, router, "/sessions", map[string]interface{}{
		"scan_token": "scan-t1",
		"latitude":   testLat,
		"longitude":  testLng,
	}, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	token, ok := data["token"].(string)
	assert.True(t, ok)
	assert.NotEmpty(t, token)
	return token
}

func TestStartAndVerifySession(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForSessions(t)
	router := setupSessionRouter(db)

	token := startSession(t, router)

	req, _ := http.NewRequest("GET", "/sessions/verify", nil)
	req.Header.Set("X-Session-Token", token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Session active", resp["message"])
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "T1", data["table_number"])
}

func TestStartSessionWithoutCoordinatesIsForbidden(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForSessions(t)
	router := setupSessionRouter(db)

	w := postJSON(t, router, "/sessions", map[string]interface{}{
		"scan_token": "scan-t1",
	}, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestStartSessionFarAwayIsForbidden(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForSessions(t)
	router := setupSessionRouter(db)

	w := postJSON(t, router, "/sessions", map[string]interface{}{
		"scan_token": "scan-t1",
		"latitude":   testLat + 0.05,
		"longitude":  testLng,
	}, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestStartSessionUnknownScanToken(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForSessions(t)
	router := setupSessionRouter(db)

	w := postJSON(t, router, "/sessions", map[string]interface{}{
		"scan_token": "nope",
		"latitude":   testLat,
		"longitude":  testLng,
	}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEndSessionThenVerifyUnauthorized(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForSessions(t)
	router := setupSessionRouter(db)

	token := startSession(t, router)
	headers := map[string]string{"X-Session-Token": token}

	w := postJSON(t, router, "/sessions/end", map[string]interface{}{}, headers)
	assert.Equal(t, http.StatusOK, w.Code)

	// Ending again stays a success.
	w = postJSON(t, router, "/sessions/end", map[string]interface{}{}, headers)
	assert.Equal(t, http.StatusOK, w.Code)

	req, _ := http.NewRequest("GET", "/sessions/verify", nil)
	req.Header.Set("X-Session-Token", token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExtendSession(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForSessions(t)
	router := setupSessionRouter(db)

	token := startSession(t, router)

	w := postJSON(t, router, "/sessions/extend", map[string]interface{}{},
		map[string]string{"X-Session-Token": token})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["expires_at"])
}

func TestStaffEndsTableSession(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForSessions(t)
	router := setupSessionRouter(db)

	token := startSession(t, router)

	w := postJSON(t, router, "/staff/tables/1/end-session", map[string]interface{}{}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	req, _ := http.NewRequest("GET", "/sessions/verify", nil)
	req.Header.Set("X-Session-Token", token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
