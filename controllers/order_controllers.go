package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/dinehub/services"
	"github.com/yeremiapane/dinehub/utils"
)

type OrderController struct {
	DB     *gorm.DB
	Orders *services.OrderService
}

func NewOrderController(db *gorm.DB, orders *services.OrderService) *OrderController {
	return &OrderController{DB: db, Orders: orders}
}

// CreateOrder -> customer places an order on their active session
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req struct {
		Items         []services.OrderItemRequest `json:"items" binding:"required"`
		PaymentMethod string                      `json:"payment_method"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.Create(sessionToken(c), req.Items, req.PaymentMethod)
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetOrderByID -> canonical read path; order-tracking views poll this to
// reconcile any events they missed.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	orderID, ok := paramUint(c, "order_id")
	if !ok {
		return
	}

	order, err := oc.Orders.Get(orderID)
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// ListOrders -> staff view of the restaurant's orders
func (oc *OrderController) ListOrders(c *gin.Context) {
	actor := staffActor(c)
	if !actor.IsStaff {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	orders, err := oc.Orders.ListByRestaurant(actor.RestaurantID, c.Query("status"))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// UpdateOrderStatus -> staff moves an order along the lifecycle
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := paramUint(c, "order_id")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.Transition(orderID, req.Status, staffActor(c))
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// CancelOrder -> allowed from pending, confirmed or preparing only
func (oc *OrderController) CancelOrder(c *gin.Context) {
	orderID, ok := paramUint(c, "order_id")
	if !ok {
		return
	}

	order, err := oc.Orders.Cancel(orderID, staffActor(c))
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order cancelled", order)
}
