package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yeremiapane/dinehub/events"
	"github.com/yeremiapane/dinehub/models"
	"github.com/yeremiapane/dinehub/utils"
)

type TableController struct {
	DB  *gorm.DB
	Hub *events.Hub
}

func NewTableController(db *gorm.DB, hub *events.Hub) *TableController {
	return &TableController{DB: db, Hub: hub}
}

// CreateTable -> staff adds a table; the scan token is returned once so it
// can be printed as a QR code.
func (tc *TableController) CreateTable(c *gin.Context) {
	actor := staffActor(c)
	if !actor.IsStaff {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var req struct {
		TableNumber string `json:"table_number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table := models.Table{
		RestaurantID: actor.RestaurantID,
		TableNumber:  req.TableNumber,
		ScanToken:    uuid.NewString(),
		Active:       true,
	}
	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	tc.Hub.Publish(actor.RestaurantID, events.EventTableUpdate, gin.H{
		"table_id":     table.ID,
		"table_number": table.TableNumber,
		"active":       table.Active,
	})

	utils.InfoLogger.Printf("New table created: %s (restaurant %d)", table.TableNumber, actor.RestaurantID)
	utils.RespondJSON(c, http.StatusCreated, "Table created", gin.H{
		"table":      table,
		"scan_token": table.ScanToken,
	})
}

// GetAllTables -> the restaurant's floor plan
func (tc *TableController) GetAllTables(c *gin.Context) {
	actor := staffActor(c)
	if !actor.IsStaff {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var tables []models.Table
	if err := tc.DB.Where("restaurant_id = ?", actor.RestaurantID).Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// RegenerateScanToken -> invalidates the printed QR code; existing sessions
// keep running, but new sessions must resolve the table by the new token.
func (tc *TableController) RegenerateScanToken(c *gin.Context) {
	actor := staffActor(c)
	if !actor.IsStaff {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	tableID, ok := paramUint(c, "table_id")
	if !ok {
		return
	}

	var table models.Table
	if err := tc.DB.Where("id = ? AND restaurant_id = ?", tableID, actor.RestaurantID).
		First(&table).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	table.ScanToken = uuid.NewString()
	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Scan token regenerated for table %s (restaurant %d)", table.TableNumber, actor.RestaurantID)
	utils.RespondJSON(c, http.StatusOK, "Scan token regenerated", gin.H{
		"table_id":   table.ID,
		"scan_token": table.ScanToken,
	})
}

// SetTableActive -> enable or disable a table without deleting it
func (tc *TableController) SetTableActive(c *gin.Context) {
	actor := staffActor(c)
	if !actor.IsStaff {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	tableID, ok := paramUint(c, "table_id")
	if !ok {
		return
	}

	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	if err := tc.DB.Where("id = ? AND restaurant_id = ?", tableID, actor.RestaurantID).
		First(&table).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	table.Active = *req.Active
	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	tc.Hub.Publish(actor.RestaurantID, events.EventTableUpdate, gin.H{
		"table_id":     table.ID,
		"table_number": table.TableNumber,
		"active":       table.Active,
	})
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}
