package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/poofware/rental-service/internal/dtos"
	"github.com/poofware/rental-service/internal/services"
	"github.com/poofware/rental-service/internal/utils"
)

type UserController struct {
	service  *services.UserService
	validate *validator.Validate
}

func NewUserController(s *services.UserService) *UserController {
	return &UserController{service: s, validate: newValidator()}
}

// GET /users/
func (c *UserController) ListHandler(w http.ResponseWriter, r *http.Request) {
	c.list(w, r, nil)
}

// GET /agents/
func (c *UserController) ListAgentsHandler(w http.ResponseWriter, r *http.Request) {
	c.list(w, r, utils.Ptr(true))
}

// GET /clients/
func (c *UserController) ListClientsHandler(w http.ResponseWriter, r *http.Request) {
	c.list(w, r, utils.Ptr(false))
}

func (c *UserController) list(w http.ResponseWriter, r *http.Request, isStaff *bool) {
	list, err := c.service.List(r.Context(), isStaff)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewUsersFromModels(list))
}

// GET /user/{id}/ and /user/update/{id}/
func (c *UserController) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	u, err := c.service.Get(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewUserFromModel(u))
}

// POST /user/create/
func (c *UserController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	logger := utils.Logger.WithField("handler", "CreateUserHandler")

	var req dtos.CreateUserRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	u, err := c.service.Create(r.Context(), req)
	if err != nil {
		logger.WithError(err).Warn("Service call failed")
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dtos.NewUserFromModel(u))
}

// PUT /user/update/{id}/
func (c *UserController) ReplaceHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.ReplaceUserRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	c.update(w, r, req.AsPatch())
}

// PATCH /user/update/{id}/
func (c *UserController) PatchHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.PatchUserRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	c.update(w, r, req)
}

func (c *UserController) update(w http.ResponseWriter, r *http.Request, patch dtos.PatchUserRequest) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	u, err := c.service.Update(r.Context(), id, patch)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewUserFromModel(u))
}

// DELETE /user/delete/{id}/
func (c *UserController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if err := c.service.Delete(r.Context(), id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondNoContent(w)
}
