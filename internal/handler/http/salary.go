package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/payroll-core-go/internal/domain/salary"
	"github.com/cmlabs-hris/payroll-core-go/internal/handler/http/response"
	"github.com/cmlabs-hris/payroll-core-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type SalaryHandler interface {
	Calculate(w http.ResponseWriter, r *http.Request)
	CalculateRange(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	UpdateAllowances(w http.ResponseWriter, r *http.Request)
	UpdateAdvancePayment(w http.ResponseWriter, r *http.Request)
	Pay(w http.ResponseWriter, r *http.Request)
}

type salaryHandlerImpl struct {
	salaryService salary.SalaryService
}

func NewSalaryHandler(salaryService salary.SalaryService) SalaryHandler {
	return &salaryHandlerImpl{salaryService: salaryService}
}

func (h *salaryHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	var req salary.CalculateSalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.salaryService.CalculateMonthlySalary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Monthly salary calculated", result)
}

func (h *salaryHandlerImpl) CalculateRange(w http.ResponseWriter, r *http.Request) {
	var req salary.CalculateSalaryRangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.salaryService.CalculateSalaryForRange(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary calculated", result)
}

func (h *salaryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var errs validator.ValidationErrors
	page, limit := pageParams(r, &errs)
	filter := salary.SalaryFilter{
		PeriodYear:  queryInt(r, "period_year", &errs),
		PeriodMonth: queryInt(r, "period_month", &errs),
		Status:      queryString(r, "status"),
		EmployeeID:  queryString(r, "employee_id"),
		Page:        page,
		Limit:       limit,
	}
	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.salaryService.ListSalaries(r.Context(), filter)
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

func (h *salaryHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Salary ID is required", nil)
		return
	}

	result, err := h.salaryService.GetSalary(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *salaryHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Salary ID is required", nil)
		return
	}

	if err := h.salaryService.DeleteSalary(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Monthly salary deleted", nil)
}

func (h *salaryHandlerImpl) UpdateAllowances(w http.ResponseWriter, r *http.Request) {
	h.updateAmount(w, r, h.salaryService.UpdateAllowances, "Allowances updated")
}

func (h *salaryHandlerImpl) UpdateAdvancePayment(w http.ResponseWriter, r *http.Request) {
	h.updateAmount(w, r, h.salaryService.UpdateAdvancePayment, "Advance payment updated")
}

func (h *salaryHandlerImpl) updateAmount(
	w http.ResponseWriter,
	r *http.Request,
	update func(ctx context.Context, id string, amount int64) (salary.SalaryResponse, error),
	message string,
) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Salary ID is required", nil)
		return
	}

	var req salary.UpdateAmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := update(r.Context(), id, *req.Amount)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, result)
}

func (h *salaryHandlerImpl) Pay(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Salary ID is required", nil)
		return
	}

	result, err := h.salaryService.PaySalary(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Monthly salary paid", result)
}
