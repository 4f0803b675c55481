package controllers

import (
	"log"

	"buddycheck/backend/config"
	"buddycheck/backend/services"
	"buddycheck/backend/store"
	"buddycheck/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	Users  *services.UserService
	Cfg    *config.Config
	Logger *log.Logger
}

func NewAuthController(st store.Store, cfg *config.Config, logger *log.Logger) *AuthController {
	return &AuthController{
		Users:  services.NewUserService(st, logger),
		Cfg:    cfg,
		Logger: logger,
	}
}

// Login godoc
// @Summary Log in with an externally verified identity
// @Description Fetches or creates the user for the given profile and returns a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "OAuth profile (email, name, photo_url)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string  `json:"email"`
		Name     string  `json:"name"`
		PhotoURL *string `json:"photo_url"`
	}

	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email is required",
		})
	}

	user, err := ac.Users.FetchOrCreateUser(c.UserContext(), input.Email, input.Name, input.PhotoURL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Could not provision user",
			"message": err.Error(),
		})
	}

	token, err := utils.GenerateJWTToken(user.ID, ac.Cfg)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}
