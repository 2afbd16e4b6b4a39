package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/dinehub/events"
	"github.com/yeremiapane/dinehub/router"
	"github.com/yeremiapane/dinehub/utils"
)

const (
	restoLat = -6.175392
	restoLng = 106.827153
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

func setupTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	autoMigrate(db)
	return db
}

type apiResponse struct {
	Status  bool                   `json:"status"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func doJSON(t *testing.T, r *gin.Engine, method, url string, payload interface{}, headers map[string]string) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp apiResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

// TestEndToEndIntegration walks the full customer journey:
// register restaurant -> login -> set up table and menu -> customer scans
// the QR and starts a session -> orders -> the kitchen drives the order to
// completed -> a second table receives a treat -> checkout ends the session.
func TestEndToEndIntegration(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB()
	r := router.SetupRouter(db, events.NewHub())

	// Tenant registration creates the restaurant and its first admin.
	w, resp := doJSON(t, r, "POST", "/restaurants/register", map[string]interface{}{
		"name":            "Warung Integrasi",
		"latitude":        restoLat,
		"longitude":       restoLng,
		"geofence_radius": 150,
		"admin": map[string]interface{}{
			"name":     "Owner",
			"email":    "owner@warung.local",
			"password": "rahasia123",
		},
	}, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	w, resp = doJSON(t, r, "POST", "/login", map[string]interface{}{
		"email":    "owner@warung.local",
		"password": "rahasia123",
	}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	staffAuth := map[string]string{"Authorization": "Bearer " + resp.Data["token"].(string)}

	// Floor and menu setup.
	scanToken1 := createTableTest(t, r, staffAuth, "T1")
	scanToken2 := createTableTest(t, r, staffAuth, "T2")

	w, resp = doJSON(t, r, "POST", "/staff/categories", map[string]interface{}{"name": "Mains"}, staffAuth)
	assert.Equal(t, http.StatusCreated, w.Code)
	categoryID := resp.Data["id"].(float64)

	w, resp = doJSON(t, r, "POST", "/staff/menus", map[string]interface{}{
		"category_id": categoryID,
		"name":        "Nasi Goreng",
		"price":       "12.50",
	}, staffAuth)
	assert.Equal(t, http.StatusCreated, w.Code)
	menuID := resp.Data["id"].(float64)

	// Customer at T1 scans the QR code inside the geofence.
	w, resp = doJSON(t, r, "POST", "/sessions", map[string]interface{}{
		"scan_token": scanToken1,
		"latitude":   restoLat,
		"longitude":  restoLng,
	}, nil)
	assert.Equal(t, http.StatusCreated, w.Code)
	sessionHeaders := map[string]string{"X-Session-Token": resp.Data["token"].(string)}

	// Order and kitchen flow.
	w, resp = doJSON(t, r, "POST", "/orders", map[string]interface{}{
		"items":          []map[string]interface{}{{"menu_id": menuID, "quantity": 2}},
		"payment_method": "cash",
	}, sessionHeaders)
	assert.Equal(t, http.StatusCreated, w.Code)
	orderID := int(resp.Data["id"].(float64))
	assert.Equal(t, "25", resp.Data["total_amount"])

	statusURL := fmt.Sprintf("/staff/orders/%d/status", orderID)
	for _, status := range []string{"confirmed", "preparing", "ready", "completed"} {
		w, resp = doJSON(t, r, "PATCH", statusURL, map[string]interface{}{"status": status}, staffAuth)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, status, resp.Data["status"])
	}

	w, resp = doJSON(t, r, "GET", fmt.Sprintf("/orders/%d", orderID), nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "completed", resp.Data["status"])

	// A customer at T2 starts their own session, then T1 treats them.
	w, _ = doJSON(t, r, "POST", "/sessions", map[string]interface{}{
		"scan_token": scanToken2,
		"latitude":   restoLat,
		"longitude":  restoLng,
	}, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	w, resp = doJSON(t, r, "POST", "/treats", map[string]interface{}{
		"origin_scan_token": scanToken1,
		"target_table_id":   2,
		"items":             []map[string]interface{}{{"menu_id": menuID, "quantity": 1}},
	}, nil)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, resp.Data["is_treat"])
	assert.Equal(t, float64(2), resp.Data["order_number"])

	// Checkout: ending the session is idempotent and kills the token.
	w, _ = doJSON(t, r, "POST", "/sessions/end", nil, sessionHeaders)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, r, "POST", "/sessions/end", nil, sessionHeaders)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, r, "GET", "/sessions/verify", nil, sessionHeaders)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func createTableTest(t *testing.T, r *gin.Engine, staffAuth map[string]string, number string) string {
	t.Helper()
	w, resp := doJSON(t, r, "POST", "/staff/tables", map[string]interface{}{
		"table_number": number,
	}, staffAuth)
	assert.Equal(t, http.StatusCreated, w.Code)
	scanToken, ok := resp.Data["scan_token"].(string)
	assert.True(t, ok)
	assert.NotEmpty(t, scanToken)
	return scanToken
}
