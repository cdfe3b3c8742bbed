package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/CuCryptos/cruise-photos/helper"
	"github.com/CuCryptos/cruise-photos/model"
	"github.com/CuCryptos/cruise-photos/utils"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// Login checks the configured admin credential and sets the session cookie.
// There is a single admin identity; no user table backs this.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	loginInput := new(LoginInput)

	if err := c.BodyParser(loginInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid login payload", err)
	}

	if loginInput.Email == "" || loginInput.Password == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Email and password are required", errors.New("missing credentials"))
	}

	if !helper.CheckAdminCredentials(loginInput.Email, loginInput.Password) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid email or password", errors.New("credential check failed"))
	}

	token, err := helper.GenerateAccessToken(model.TokenClaim{AdminEmail: loginInput.Email})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not create session", err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		Expires:  time.Now().Add(12 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"accessToken": token})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"loggedOut": true})
}
