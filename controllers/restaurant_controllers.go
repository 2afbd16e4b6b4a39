package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yeremiapane/dinehub/models"
	"github.com/yeremiapane/dinehub/utils"
)

type RestaurantController struct {
	DB *gorm.DB
}

func NewRestaurantController(db *gorm.DB) *RestaurantController {
	return &RestaurantController{DB: db}
}

// RegisterRestaurant -> creates a new tenant together with its first admin
// account in one transaction.
func (rc *RestaurantController) RegisterRestaurant(c *gin.Context) {
	var req struct {
		Name           string  `json:"name" binding:"required"`
		Latitude       float64 `json:"latitude" binding:"required"`
		Longitude      float64 `json:"longitude" binding:"required"`
		GeofenceRadius float64 `json:"geofence_radius"`
		Admin          struct {
			Name     string `json:"name" binding:"required"`
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		} `json:"admin" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	radius := req.GeofenceRadius
	if radius <= 0 {
		radius = 100
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	restaurant := models.Restaurant{
		Name:           req.Name,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		GeofenceRadius: radius,
		Active:         true,
	}
	admin := models.User{
		Name:     req.Admin.Name,
		Email:    req.Admin.Email,
		Password: string(hashed),
		Role:     "admin",
	}

	err = rc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&restaurant).Error; err != nil {
			return err
		}
		admin.RestaurantID = restaurant.ID
		return tx.Create(&admin).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Restaurant registered: %s (id=%d)", restaurant.Name, restaurant.ID)
	utils.RespondJSON(c, http.StatusCreated, "Restaurant registered", gin.H{
		"restaurant": restaurant,
		"admin_id":   admin.ID,
	})
}

// GetRestaurant -> staff reads their own restaurant profile
func (rc *RestaurantController) GetRestaurant(c *gin.Context) {
	actor := staffActor(c)
	if !actor.IsStaff {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var restaurant models.Restaurant
	if err := rc.DB.First(&restaurant, actor.RestaurantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant detail", restaurant)
}

// UpdateRestaurant -> admin tunes coordinates, geofence radius, settings or
// the active flag. Deactivation keeps historical orders intact.
func (rc *RestaurantController) UpdateRestaurant(c *gin.Context) {
	role := c.GetString("role")
	if role != "admin" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}
	actor := staffActor(c)

	var req struct {
		Name           *string  `json:"name"`
		Latitude       *float64 `json:"latitude"`
		Longitude      *float64 `json:"longitude"`
		GeofenceRadius *float64 `json:"geofence_radius"`
		Settings       *string  `json:"settings"`
		Active         *bool    `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var restaurant models.Restaurant
	if err := rc.DB.First(&restaurant, actor.RestaurantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if req.Name != nil {
		restaurant.Name = *req.Name
	}
	if req.Latitude != nil {
		restaurant.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		restaurant.Longitude = *req.Longitude
	}
	if req.GeofenceRadius != nil && *req.GeofenceRadius > 0 {
		restaurant.GeofenceRadius = *req.GeofenceRadius
	}
	if req.Settings != nil {
		restaurant.Settings = *req.Settings
	}
	if req.Active != nil {
		restaurant.Active = *req.Active
	}

	if err := rc.DB.Save(&restaurant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant updated", restaurant)
}
