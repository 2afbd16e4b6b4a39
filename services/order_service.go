package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yeremiapane/dinehub/events"
	"github.com/yeremiapane/dinehub/models"
	"github.com/yeremiapane/dinehub/utils"
)

// statusFlow lists the legal successor states for each order status.
// completed and cancelled are terminal; food that is ready or served can
// no longer be cancelled.
var statusFlow = map[string][]string{
	models.OrderPending:   {models.OrderConfirmed, models.OrderCancelled},
	models.OrderConfirmed: {models.OrderPreparing, models.OrderCancelled},
	models.OrderPreparing: {models.OrderReady, models.OrderCancelled},
	models.OrderReady:     {models.OrderCompleted},
	models.OrderCompleted: {},
	models.OrderCancelled: {},
}

// statusTimestampColumn maps a status to the column stamped on first entry.
var statusTimestampColumn = map[string]string{
	models.OrderConfirmed: "confirmed_at",
	models.OrderPreparing: "preparing_at",
	models.OrderReady:     "ready_at",
	models.OrderCompleted: "completed_at",
}

func canTransition(from, to string) bool {
	for _, next := range statusFlow[from] {
		if next == to {
			return true
		}
	}
	return false
}

type OrderItemRequest struct {
	MenuID   uint   `json:"menu_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
	Notes    string `json:"notes"`
}

// OrderService owns the canonical order lifecycle. It is the single source
// of truth for order status; every state change is re-published on the
// restaurant's event channel.
type OrderService struct {
	DB       *gorm.DB
	Hub      *events.Hub
	Sessions *SessionService
}

func NewOrderService(db *gorm.DB, hub *events.Hub, sessions *SessionService) *OrderService {
	return &OrderService{DB: db, Hub: hub, Sessions: sessions}
}

// Create places an order on an active session. Prices are taken from the
// current menu server-side; client-submitted prices are never trusted.
func (os *OrderService) Create(sessionToken string, items []OrderItemRequest, paymentMethod string) (*models.Order, error) {
	session, err := os.Sessions.Verify(sessionToken)
	if err != nil {
		return nil, err
	}

	orderItems, total, err := os.priceItems(session.RestaurantID, items)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		RestaurantID:  session.RestaurantID,
		SessionID:     session.ID,
		TableID:       session.TableID,
		Status:        models.OrderPending,
		TotalAmount:   total,
		PaymentMethod: paymentMethod,
		OrderItems:    orderItems,
	}
	if err := os.persist(order); err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Order #%d created (restaurant %d, table %s, total %s)",
		order.OrderNumber, order.RestaurantID, session.Table.TableNumber, total.StringFixed(2))
	os.Hub.Publish(order.RestaurantID, events.EventNewOrder, newOrderPayload(order, session.Table.TableNumber))
	return order, nil
}

// CreateTreat places a complimentary order from one table onto another
// table's active session. The origin only needs a valid scan token; the
// target must currently hold an active session. Treats are marked as
// externally paid and excluded from the target's payable total.
func (os *OrderService) CreateTreat(originScanToken string, targetTableID uint, items []OrderItemRequest) (*models.Order, error) {
	var origin models.Table
	if err := os.DB.Where("scan_token = ? AND active = ?", originScanToken, true).
		First(&origin).Error; err != nil {
		return nil, ErrNotFound
	}

	var target models.Table
	if err := os.DB.Where("id = ? AND active = ?", targetTableID, true).
		First(&target).Error; err != nil {
		return nil, ErrNotFound
	}
	if target.RestaurantID != origin.RestaurantID {
		return nil, ErrCrossTenant
	}

	var session models.Session
	if err := os.DB.Where("table_id = ? AND status = ?", target.ID, models.SessionActive).
		First(&session).Error; err != nil {
		return nil, ErrTargetNotActive
	}
	if time.Now().After(session.ExpiresAt) {
		os.DB.Model(&session).Update("status", models.SessionExpired)
		return nil, ErrTargetNotActive
	}

	orderItems, total, err := os.priceItems(target.RestaurantID, items)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		RestaurantID:  target.RestaurantID,
		SessionID:     session.ID,
		TableID:       target.ID,
		Status:        models.OrderPending,
		TotalAmount:   total,
		PaymentMethod: "treat",
		IsTreat:       true,
		OriginTableID: &origin.ID,
		OrderItems:    orderItems,
	}
	if err := os.persist(order); err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Treat order #%d from table %s to table %s (restaurant %d)",
		order.OrderNumber, origin.TableNumber, target.TableNumber, order.RestaurantID)
	os.Hub.Publish(order.RestaurantID, events.EventNewOrder, newOrderPayload(order, target.TableNumber))
	os.Hub.Publish(order.RestaurantID, events.EventTreatReceived, map[string]interface{}{
		"order_id":            order.ID,
		"order_number":        order.OrderNumber,
		"target_table_number": target.TableNumber,
		"origin_table_number": origin.TableNumber,
	})
	return order, nil
}

// Transition moves the order along one legal edge of the lifecycle. The
// write is an optimistic compare-and-set on the previously observed status;
// the loser of a concurrent race gets ErrConflict and should refetch.
func (os *OrderService) Transition(orderID uint, requested string, actor StaffContext) (*models.Order, error) {
	if _, known := statusFlow[requested]; !known {
		return nil, ErrInvalidTransition
	}

	var order models.Order
	if err := os.DB.First(&order, orderID).Error; err != nil {
		return nil, ErrNotFound
	}
	if !actor.IsStaff || actor.RestaurantID != order.RestaurantID {
		return nil, ErrForbidden
	}
	if !canTransition(order.Status, requested) {
		return nil, ErrInvalidTransition
	}

	if err := os.applyTransition(orderID, order.Status, requested); err != nil {
		return nil, err
	}

	if err := os.DB.Preload("OrderItems").Preload("Table").First(&order, orderID).Error; err != nil {
		return nil, err
	}
	utils.InfoLogger.Printf("Order #%d -> %s (restaurant %d)", order.OrderNumber, order.Status, order.RestaurantID)
	os.Hub.Publish(order.RestaurantID, events.EventOrderStatusUpdated, map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"status":       order.Status,
	})
	return &order, nil
}

// Cancel is a transition to cancelled, allowed from pending, confirmed or
// preparing only.
func (os *OrderService) Cancel(orderID uint, actor StaffContext) (*models.Order, error) {
	return os.Transition(orderID, models.OrderCancelled, actor)
}

// Get is the canonical read path customers poll to reconcile missed events.
func (os *OrderService) Get(orderID uint) (*models.Order, error) {
	var order models.Order
	if err := os.DB.Preload("OrderItems").Preload("Table").First(&order, orderID).Error; err != nil {
		return nil, ErrNotFound
	}
	return &order, nil
}

// ListByRestaurant returns a restaurant's orders, optionally filtered by
// status, newest first.
func (os *OrderService) ListByRestaurant(restaurantID uint, status string) ([]models.Order, error) {
	q := os.DB.Preload("OrderItems").Preload("Table").
		Where("restaurant_id = ?", restaurantID).
		Order("created_at desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// applyTransition performs the optimistic status write: it only succeeds if
// the order's status still matches the expected predecessor. The matching
// *At timestamp rides along, so it is stamped exactly once, on first entry.
func (os *OrderService) applyTransition(orderID uint, from, to string) error {
	now := time.Now()
	updates := map[string]interface{}{"status": to, "updated_at": now}
	if col, ok := statusTimestampColumn[to]; ok {
		updates[col] = now
	}

	res := os.DB.Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

// priceItems snapshots each requested menu item at its current price and
// sums the subtotals with fixed-point arithmetic.
func (os *OrderService) priceItems(restaurantID uint, items []OrderItemRequest) ([]models.OrderItem, decimal.Decimal, error) {
	if len(items) == 0 {
		return nil, decimal.Zero, ErrNoItems
	}

	total := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, req := range items {
		if req.Quantity < 1 {
			return nil, decimal.Zero, ErrNoItems
		}
		var menu models.Menu
		if err := os.DB.First(&menu, req.MenuID).Error; err != nil {
			return nil, decimal.Zero, ErrItemUnavailable
		}
		if menu.RestaurantID != restaurantID {
			return nil, decimal.Zero, ErrCrossTenant
		}
		if !menu.Available {
			return nil, decimal.Zero, ErrItemUnavailable
		}

		unit := menu.Price.Round(2)
		subtotal := unit.Mul(decimal.NewFromInt(int64(req.Quantity)))
		total = total.Add(subtotal)
		orderItems = append(orderItems, models.OrderItem{
			MenuID:    menu.ID,
			MenuName:  menu.Name,
			Quantity:  req.Quantity,
			UnitPrice: unit,
			Subtotal:  subtotal,
			Notes:     req.Notes,
		})
	}
	return orderItems, total, nil
}

// persist assigns the next sequential order number for the restaurant and
// writes the order with its items in one transaction.
func (os *OrderService) persist(order *models.Order) error {
	return os.DB.Transaction(func(tx *gorm.DB) error {
		number, err := nextOrderNumber(tx, order.RestaurantID)
		if err != nil {
			return err
		}
		order.OrderNumber = number
		return tx.Create(order).Error
	})
}

func nextOrderNumber(tx *gorm.DB, restaurantID uint) (uint, error) {
	// Increment first: the counter row's write lock is then held until the
	// surrounding transaction commits, serializing allocation per tenant.
	res := tx.Model(&models.OrderCounter{}).
		Where("restaurant_id = ?", restaurantID).
		Update("next_number", gorm.Expr("next_number + 1"))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		counter := models.OrderCounter{RestaurantID: restaurantID, NextNumber: 2}
		if err := tx.Create(&counter).Error; err != nil {
			return 0, err
		}
		return 1, nil
	}

	var counter models.OrderCounter
	if err := tx.Where("restaurant_id = ?", restaurantID).First(&counter).Error; err != nil {
		return 0, err
	}
	return counter.NextNumber - 1, nil
}

func newOrderPayload(order *models.Order, tableNumber string) map[string]interface{} {
	items := make([]map[string]interface{}, 0, len(order.OrderItems))
	for _, it := range order.OrderItems {
		items = append(items, map[string]interface{}{
			"menu_name": it.MenuName,
			"quantity":  it.Quantity,
			"subtotal":  it.Subtotal,
			"notes":     it.Notes,
		})
	}
	return map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"table_number": tableNumber,
		"total_amount": order.TotalAmount,
		"is_treat":     order.IsTreat,
		"items":        items,
	}
}
