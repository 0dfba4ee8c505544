package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/poofware/rental-service/internal/dtos"
	"github.com/poofware/rental-service/internal/models"
	"github.com/poofware/rental-service/internal/repositories"
	"github.com/poofware/rental-service/internal/services"
	"github.com/poofware/rental-service/internal/utils"
)

type ContractController struct {
	service  *services.ContractService
	validate *validator.Validate
}

func NewContractController(s *services.ContractService) *ContractController {
	return &ContractController{service: s, validate: newValidator()}
}

// GET /contracts/?agent_id=&client_id=&apartment_id=&status=
func (c *ContractController) ListHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := contractFilterFromQuery(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	list, err := c.service.List(r.Context(), filter)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	out := make([]dtos.Contract, 0, len(list))
	for _, ct := range list {
		out = append(out, dtos.NewContractFromModel(ct))
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}

// GET /contract/{id}/ and /contract/update/{id}/
func (c *ContractController) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	ct, err := c.service.Get(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewContractFromModel(ct))
}

// POST /contract/create/
func (c *ContractController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	logger := utils.Logger.WithField("handler", "CreateContractHandler")

	var req dtos.CreateContractRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	ct, err := c.service.Create(r.Context(), req)
	if err != nil {
		logger.WithError(err).Warn("Service call failed")
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dtos.NewContractWriteFromModel(ct))
}

// PUT /contract/update/{id}/
func (c *ContractController) ReplaceHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.ContractFields
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	c.update(w, r, req.AsPatch())
}

// PATCH /contract/update/{id}/
func (c *ContractController) PatchHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.PatchContractRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	c.update(w, r, req)
}

func (c *ContractController) update(w http.ResponseWriter, r *http.Request, patch dtos.PatchContractRequest) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	ct, err := c.service.Update(r.Context(), id, patch)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewContractWriteFromModel(ct))
}

// DELETE /contract/delete/{id}/
func (c *ContractController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
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

func contractFilterFromQuery(r *http.Request) (repositories.ContractFilter, error) {
	var f repositories.ContractFilter
	var err error
	if f.AgentID, err = queryInt64(r, "agent_id"); err != nil {
		return f, err
	}
	if f.ClientID, err = queryInt64(r, "client_id"); err != nil {
		return f, err
	}
	if f.ApartmentID, err = queryInt64(r, "apartment_id"); err != nil {
		return f, err
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		s, err := models.ParseContractStatus(raw)
		if err != nil {
			const msg = "Query parameter 'status' must be one of [v l f]"
			return f, &utils.AppError{
				StatusCode: http.StatusBadRequest,
				Code:       utils.ErrCodeValidation,
				Message:    msg,
				Details:    []dtos.ValidationErrorDetail{{Field: "status", Message: msg, Code: "validation_oneof"}},
				Err:        err,
			}
		}
		f.Status = &s
	}
	return f, nil
}
