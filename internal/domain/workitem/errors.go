package workitem

import (
	"errors"
	"fmt"
)

var (
	ErrWorkItemNotFound = errors.New("work item not found")
	ErrQuotaExceeded    = errors.New("work item quota exceeded")
)

// QuotaExceededError reports how much was requested against what was left.
type QuotaExceededError struct {
	WorkItemID string
	Requested  int64
	Remaining  int64
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("work item %s quota exceeded: requested %d, remaining %d", e.WorkItemID, e.Requested, e.Remaining)
}

func (e *QuotaExceededError) Is(target error) bool {
	return target == ErrQuotaExceeded
}
