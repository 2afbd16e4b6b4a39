package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/dinehub/services"
	"github.com/yeremiapane/dinehub/utils"
)

type TreatController struct {
	Orders *services.OrderService
}

func NewTreatController(orders *services.OrderService) *TreatController {
	return &TreatController{Orders: orders}
}

// CreateTreat -> a customer buys something for another table. The treat
// lands on the target table's active session and is marked externally paid.
func (tc *TreatController) CreateTreat(c *gin.Context) {
	var req struct {
		OriginScanToken string                      `json:"origin_scan_token" binding:"required"`
		TargetTableID   uint                        `json:"target_table_id" binding:"required"`
		Items           []services.OrderItemRequest `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := tc.Orders.CreateTreat(req.OriginScanToken, req.TargetTableID, req.Items)
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Treat created", order)
}
