package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/payroll-core-go/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-core-go/internal/domain/worktype"
	"github.com/cmlabs-hris/payroll-core-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type WorkTypeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	GetOvertimeConfig(w http.ResponseWriter, r *http.Request)
	UpsertOvertimeConfig(w http.ResponseWriter, r *http.Request)
}

type workTypeHandlerImpl struct {
	workTypeService worktype.WorkTypeService
	overtimeService overtime.OvertimeService
}

func NewWorkTypeHandler(workTypeService worktype.WorkTypeService, overtimeService overtime.OvertimeService) WorkTypeHandler {
	return &workTypeHandlerImpl{
		workTypeService: workTypeService,
		overtimeService: overtimeService,
	}
}

func (h *workTypeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.workTypeService.ListWorkTypes(r.Context(), queryString(r, "department"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *workTypeHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Work type ID is required", nil)
		return
	}

	result, err := h.workTypeService.GetWorkType(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetOvertimeConfig answers with data null when the work type has no config.
func (h *workTypeHandlerImpl) GetOvertimeConfig(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Work type ID is required", nil)
		return
	}

	result, err := h.overtimeService.GetOvertimeConfig(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result == nil {
		response.SuccessWithMessage(w, "No overtime config for this work type", nil)
		return
	}
	response.Success(w, result)
}

func (h *workTypeHandlerImpl) UpsertOvertimeConfig(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Work type ID is required", nil)
		return
	}

	var req overtime.UpsertOvertimeConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.WorkTypeID = id

	result, err := h.overtimeService.UpsertOvertimeConfig(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime config saved", result)
}
