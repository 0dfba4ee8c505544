package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/poofware/rental-service/internal/dtos"
	"github.com/poofware/rental-service/internal/middleware"
	"github.com/poofware/rental-service/internal/services"
	"github.com/poofware/rental-service/internal/utils"
)

type AuthController struct {
	service  *services.AuthService
	validate *validator.Validate
}

func NewAuthController(s *services.AuthService) *AuthController {
	return &AuthController{service: s, validate: newValidator()}
}

// POST /auth/users/
func (c *AuthController) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.RegisterRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	u, err := c.service.Register(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dtos.NewUserFromModel(u))
}

// POST /auth/token/ and /auth/token/login/
func (c *AuthController) LoginHandler(w http.ResponseWriter, r *http.Request) {
	logger := utils.Logger.WithField("handler", "LoginHandler")

	var req dtos.LoginRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	resp, err := c.service.Login(r.Context(), req)
	if err != nil {
		logger.WithField("username", req.Username).Warn("Login rejected")
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GET /auth/users/me/
func (c *AuthController) MeHandler(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromContext(r.Context())
	if p == nil {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authentication credentials were not provided.", nil)
		return
	}
	u, err := c.service.Me(r.Context(), p.UserID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewUserFromModel(u))
}

// POST /auth/token/logout/
// Tokens are stateless and expire on their own; nothing is revoked here.
func (c *AuthController) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if p := middleware.PrincipalFromContext(r.Context()); p != nil {
		utils.Logger.WithField("user_id", p.UserID).Info("User logged out")
	}
	utils.RespondNoContent(w)
}
