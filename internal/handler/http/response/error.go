package response

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/payroll-core-go/internal/domain/salary"
	"github.com/cmlabs-hris/payroll-core-go/internal/domain/workitem"
	"github.com/cmlabs-hris/payroll-core-go/internal/domain/workrecord"
	"github.com/cmlabs-hris/payroll-core-go/internal/domain/worktype"
	"github.com/cmlabs-hris/payroll-core-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var quotaErr *workitem.QuotaExceededError
	if errors.As(err, &quotaErr) {
		QuotaExceeded(w, "Work item quota exceeded", map[string]string{
			"work_item_id": quotaErr.WorkItemID,
			"requested":    strconv.FormatInt(quotaErr.Requested, 10),
			"remaining":    strconv.FormatInt(quotaErr.Remaining, 10),
		})
		return
	}

	switch {
	// Catalog errors
	case errors.Is(err, worktype.ErrWorkTypeNotFound):
		NotFound(w, "Work type not found")
	case errors.Is(err, workitem.ErrWorkItemNotFound):
		NotFound(w, "Work item not found")
	case errors.Is(err, workitem.ErrQuotaExceeded):
		QuotaExceeded(w, "Work item quota exceeded", nil)

	// Work record errors
	case errors.Is(err, workrecord.ErrWorkRecordNotFound):
		NotFound(w, "Work record not found")
	case errors.Is(err, workrecord.ErrUnsupportedCalculationMode):
		UnsupportedOperation(w, "Overtime is not supported for daily work types")

	// Salary errors
	case errors.Is(err, salary.ErrSalaryNotFound):
		NotFound(w, "Monthly salary not found")
	case errors.Is(err, salary.ErrInvalidStateTransition):
		Conflict(w, err.Error())
	case errors.Is(err, salary.ErrSalaryAlreadyExists):
		Conflict(w, "Monthly salary already exists for this period")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
