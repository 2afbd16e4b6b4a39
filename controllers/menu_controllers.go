package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/dinehub/models"
	"github.com/yeremiapane/dinehub/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetAllMenus -> public catalog read, scoped by restaurant
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	restaurantID := c.Query("restaurant_id")
	if restaurantID == "" {
		utils.RespondError(c, http.StatusBadRequest, &CustomError{"restaurant_id is required"})
		return
	}

	var menus []models.Menu
	if err := mc.DB.Preload("Category").
		Where("restaurant_id = ?", restaurantID).
		Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", menus)
}

// CreateMenu -> staff adds a menu item; price arrives as a string and is
// normalized to 2 fraction digits.
func (mc *MenuController) CreateMenu(c *gin.Context) {
	actor := staffActor(c)
	if !actor.IsStaff {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var req struct {
		CategoryID  uint   `json:"category_id" binding:"required"`
		Name        string `json:"name" binding:"required"`
		Price       string `json:"price" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	price, err := utils.Amount(req.Price)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var category models.MenuCategory
	if err := mc.DB.Where("id = ? AND restaurant_id = ?", req.CategoryID, actor.RestaurantID).
		First(&category).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	menu := models.Menu{
		RestaurantID: actor.RestaurantID,
		CategoryID:   category.ID,
		Name:         req.Name,
		Price:        price,
		Available:    true,
		Description:  req.Description,
	}
	if err := mc.DB.Create(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu created", menu)
}

// UpdateMenu -> staff changes price or availability; historical orders are
// untouched because order items snapshot name and price at order time.
func (mc *MenuController) UpdateMenu(c *gin.Context) {
	actor := staffActor(c)
	if !actor.IsStaff {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	menuID, ok := paramUint(c, "menu_id")
	if !ok {
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Price       *string `json:"price"`
		Available   *bool   `json:"available"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var menu models.Menu
	if err := mc.DB.Where("id = ? AND restaurant_id = ?", menuID, actor.RestaurantID).
		First(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if req.Name != nil {
		menu.Name = *req.Name
	}
	if req.Price != nil {
		price, err := utils.Amount(*req.Price)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		menu.Price = price
	}
	if req.Available != nil {
		menu.Available = *req.Available
	}
	if req.Description != nil {
		menu.Description = *req.Description
	}

	if err := mc.DB.Save(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu updated", menu)
}
