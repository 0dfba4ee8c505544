package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/poofware/rental-service/internal/dtos"
	"github.com/poofware/rental-service/internal/services"
	"github.com/poofware/rental-service/internal/utils"
)

type ApartmentController struct {
	service  *services.ApartmentService
	validate *validator.Validate
}

func NewApartmentController(s *services.ApartmentService) *ApartmentController {
	return &ApartmentController{service: s, validate: newValidator()}
}

// GET /apartments/
func (c *ApartmentController) ListHandler(w http.ResponseWriter, r *http.Request) {
	list, err := c.service.List(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewApartmentsFromModels(list))
}

// GET /apartment/{id}/ and /apartment/update/{id}/
func (c *ApartmentController) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	a, err := c.service.Get(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewApartmentFromModel(a))
}

// POST /apartment/create/
func (c *ApartmentController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	logger := utils.Logger.WithField("handler", "CreateApartmentHandler")

	var req dtos.CreateApartmentRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	a, err := c.service.Create(r.Context(), req)
	if err != nil {
		logger.WithError(err).Warn("Service call failed")
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dtos.NewApartmentFromModel(a))
}

// PUT /apartment/update/{id}/
func (c *ApartmentController) ReplaceHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.ApartmentFields
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	c.update(w, r, req.AsPatch())
}

// PATCH /apartment/update/{id}/
func (c *ApartmentController) PatchHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.PatchApartmentRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	c.update(w, r, req)
}

func (c *ApartmentController) update(w http.ResponseWriter, r *http.Request, patch dtos.PatchApartmentRequest) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	a, err := c.service.Update(r.Context(), id, patch)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewApartmentFromModel(a))
}

// DELETE /apartment/delete/{id}/
func (c *ApartmentController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
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
