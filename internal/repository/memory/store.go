package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/cmlabs-hris/payroll-core-go/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-core-go/internal/domain/salary"
	"github.com/cmlabs-hris/payroll-core-go/internal/domain/workitem"
	"github.com/cmlabs-hris/payroll-core-go/internal/domain/workrecord"
	"github.com/cmlabs-hris/payroll-core-go/internal/domain/worktype"
	"github.com/cmlabs-hris/payroll-core-go/internal/fixtures"
	"github.com/google/uuid"
)

type txKey struct{}

// Store is an in-process backing store. Transactions are serialised on one
// mutex and roll back by restoring a snapshot of every table.
type Store struct {
	mu        sync.Mutex
	workTypes map[string]worktype.WorkType
	workItems map[string]workitem.WorkItem
	overtime  map[string]overtime.OvertimeConfig // keyed by work type id
	records   map[string]workrecord.WorkRecord
	salaries  map[string]salary.MonthlySalary
	now       func() time.Time
}

func NewStore() *Store {
	return &Store{
		workTypes: make(map[string]worktype.WorkType),
		workItems: make(map[string]workitem.WorkItem),
		overtime:  make(map[string]overtime.OvertimeConfig),
		records:   make(map[string]workrecord.WorkRecord),
		salaries:  make(map[string]salary.MonthlySalary),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

type snapshot struct {
	workTypes map[string]worktype.WorkType
	workItems map[string]workitem.WorkItem
	overtime  map[string]overtime.OvertimeConfig
	records   map[string]workrecord.WorkRecord
	salaries  map[string]salary.MonthlySalary
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		workTypes: maps.Clone(s.workTypes),
		workItems: maps.Clone(s.workItems),
		overtime:  maps.Clone(s.overtime),
		records:   maps.Clone(s.records),
		salaries:  maps.Clone(s.salaries),
	}
}

func (s *Store) restore(snap snapshot) {
	s.workTypes = snap.workTypes
	s.workItems = snap.workItems
	s.overtime = snap.overtime
	s.records = snap.records
	s.salaries = snap.salaries
}

// WithinTransaction implements database.Transactor. Nested calls join the outer transaction.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

// lock takes the store mutex unless ctx already holds it through a transaction.
func (s *Store) lock(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// PutWorkType inserts or replaces a catalog work type.
func (s *Store) PutWorkType(wt worktype.WorkType) worktype.WorkType {
	s.mu.Lock()
	defer s.mu.Unlock()

	if wt.ID == "" {
		wt.ID = newID()
	}
	now := s.now()
	if wt.CreatedAt.IsZero() {
		wt.CreatedAt = now
	}
	wt.UpdatedAt = now
	s.workTypes[wt.ID] = wt
	return wt
}

// PutWorkItem inserts or replaces a production item, counter included.
func (s *Store) PutWorkItem(item workitem.WorkItem) workitem.WorkItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.ID == "" {
		item.ID = newID()
	}
	if item.Status == "" {
		item.Status = workitem.StatusNew
	}
	now := s.now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now
	s.workItems[item.ID] = item
	return item
}

// paginate returns the page window for n items.
func paginate(n, page, limit int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	if page-1 > n/limit {
		return n, n
	}
	start := (page - 1) * limit
	if start > n {
		start = n
	}
	end := start + limit
	if end > n {
		end = n
	}
	return start, end
}

// Seed loads catalog into the store, replacing entries with the same IDs.
func (s *Store) Seed(catalog fixtures.Catalog) {
	for _, wt := range catalog.WorkTypes {
		s.PutWorkType(wt)
	}
	for _, item := range catalog.WorkItems {
		s.PutWorkItem(item)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for _, cfg := range catalog.OvertimeConfigs {
		if cfg.ID == "" {
			cfg.ID = newID()
		}
		cfg.CreatedAt = now
		cfg.UpdatedAt = now
		s.overtime[cfg.WorkTypeID] = cfg
	}
}
