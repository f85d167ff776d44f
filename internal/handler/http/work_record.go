package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/payroll-core-go/internal/domain/workrecord"
	"github.com/cmlabs-hris/payroll-core-go/internal/handler/http/response"
	"github.com/cmlabs-hris/payroll-core-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type WorkRecordHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type workRecordHandlerImpl struct {
	workRecordService workrecord.WorkRecordService
}

func NewWorkRecordHandler(workRecordService workrecord.WorkRecordService) WorkRecordHandler {
	return &workRecordHandlerImpl{workRecordService: workRecordService}
}

func (h *workRecordHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req workrecord.WorkRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.workRecordService.CreateWorkRecord(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Work record created", result)
}

func (h *workRecordHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var errs validator.ValidationErrors
	page, limit := pageParams(r, &errs)
	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	filter := workrecord.WorkRecordFilter{
		EmployeeID: queryString(r, "employee_id"),
		WorkTypeID: queryString(r, "work_type_id"),
		WorkItemID: queryString(r, "work_item_id"),
		StartDate:  queryString(r, "start_date"),
		EndDate:    queryString(r, "end_date"),
		Page:       page,
		Limit:      limit,
	}

	result, err := h.workRecordService.ListWorkRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: totalPages(result.TotalCount, result.Limit),
	})
}

func (h *workRecordHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Work record ID is required", nil)
		return
	}

	result, err := h.workRecordService.GetWorkRecord(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *workRecordHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Work record ID is required", nil)
		return
	}

	var req workrecord.WorkRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.workRecordService.UpdateWorkRecord(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work record updated", result)
}

func (h *workRecordHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Work record ID is required", nil)
		return
	}

	if err := h.workRecordService.DeleteWorkRecord(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work record deleted", nil)
}
