package http

import (
	"net/http"

	"github.com/cmlabs-hris/payroll-core-go/internal/domain/workitem"
	"github.com/cmlabs-hris/payroll-core-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type WorkItemHandler interface {
	GetByID(w http.ResponseWriter, r *http.Request)
	GetRemainingQuota(w http.ResponseWriter, r *http.Request)
}

type workItemHandlerImpl struct {
	workItemService workitem.WorkItemService
}

func NewWorkItemHandler(workItemService workitem.WorkItemService) WorkItemHandler {
	return &workItemHandlerImpl{workItemService: workItemService}
}

func (h *workItemHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Work item ID is required", nil)
		return
	}

	result, err := h.workItemService.GetWorkItem(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *workItemHandlerImpl) GetRemainingQuota(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Work item ID is required", nil)
		return
	}

	result, err := h.workItemService.GetRemainingQuota(r.Context(), id, queryString(r, "exclude_record_id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
