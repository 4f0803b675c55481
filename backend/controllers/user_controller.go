package controllers

import (
	"errors"
	"log"

	"buddycheck/backend/config"
	"buddycheck/backend/middleware"
	"buddycheck/backend/store"
	"buddycheck/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UserController struct {
	Store  store.Store
	Cfg    *config.Config
	Logger *log.Logger
}

func NewUserController(st store.Store, cfg *config.Config, logger *log.Logger) *UserController {
	return &UserController{Store: st, Cfg: cfg, Logger: logger}
}

// GetProfile godoc
// @Summary Get current user profile
// @Tags user
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/profile [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals(middleware.UserIDKey).(uuid.UUID)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	user, err := uc.Store.GetUserByID(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalServerError(c, err.Error())
	}

	return c.JSON(user)
}
