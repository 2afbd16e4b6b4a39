package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/dinehub/services"
	"github.com/yeremiapane/dinehub/utils"
)

// staffActor builds the actor context the services trust, from the claims
// the auth middleware stored on the request.
func staffActor(c *gin.Context) services.StaffContext {
	userID, _ := c.Get("user_id")
	restaurantID, _ := c.Get("restaurant_id")
	role := c.GetString("role")

	actor := services.StaffContext{
		IsStaff: role == "admin" || role == "staff" || role == "chef",
	}
	if id, ok := userID.(uint); ok {
		actor.UserID = id
	}
	if id, ok := restaurantID.(uint); ok {
		actor.RestaurantID = id
	}
	return actor
}

// paramUint parses a numeric path parameter, responding 400 on garbage.
func paramUint(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid %s", name))
		return 0, false
	}
	return uint(value), true
}
