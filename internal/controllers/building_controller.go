package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/poofware/rental-service/internal/dtos"
	"github.com/poofware/rental-service/internal/services"
	"github.com/poofware/rental-service/internal/utils"
)

type BuildingController struct {
	service  *services.BuildingService
	validate *validator.Validate
}

func NewBuildingController(s *services.BuildingService) *BuildingController {
	return &BuildingController{service: s, validate: newValidator()}
}

// GET /buildings/
func (c *BuildingController) ListHandler(w http.ResponseWriter, r *http.Request) {
	list, err := c.service.List(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GET /building/{id}/ and /building/update/{id}/
func (c *BuildingController) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	b, err := c.service.Get(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, b)
}

// POST /building/create/
func (c *BuildingController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	logger := utils.Logger.WithField("handler", "CreateBuildingHandler")

	var req dtos.CreateBuildingRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	b, err := c.service.Create(r.Context(), req)
	if err != nil {
		logger.WithError(err).Warn("Service call failed")
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dtos.NewBuildingWriteFromModel(b))
}

// PUT /building/update/{id}/
func (c *BuildingController) ReplaceHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.BuildingFields
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	c.update(w, r, req.AsPatch())
}

// PATCH /building/update/{id}/
func (c *BuildingController) PatchHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.PatchBuildingRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	c.update(w, r, req)
}

func (c *BuildingController) update(w http.ResponseWriter, r *http.Request, patch dtos.PatchBuildingRequest) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	b, err := c.service.Update(r.Context(), id, patch)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewBuildingWriteFromModel(b))
}

// DELETE /building/delete/{id}/
func (c *BuildingController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
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

// POST /building/{id}/apartments/{apartment_id}/
func (c *BuildingController) AddApartmentHandler(w http.ResponseWriter, r *http.Request) {
	buildingID, apartmentID, err := linkIDs(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	b, err := c.service.AddApartment(r.Context(), buildingID, apartmentID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, b)
}

// DELETE /building/{id}/apartments/{apartment_id}/
func (c *BuildingController) RemoveApartmentHandler(w http.ResponseWriter, r *http.Request) {
	buildingID, apartmentID, err := linkIDs(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if err := c.service.RemoveApartment(r.Context(), buildingID, apartmentID); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondNoContent(w)
}

func linkIDs(r *http.Request) (int64, int64, error) {
	buildingID, err := pathID(r, "id")
	if err != nil {
		return 0, 0, err
	}
	apartmentID, err := pathID(r, "apartment_id")
	if err != nil {
		return 0, 0, err
	}
	return buildingID, apartmentID, nil
}
