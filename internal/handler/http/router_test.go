package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-core-go/internal/fixtures"
	"github.com/cmlabs-hris/payroll-core-go/internal/handler/http/response"
	"github.com/cmlabs-hris/payroll-core-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/payroll-core-go/internal/repository/memory"
	catalogService "github.com/cmlabs-hris/payroll-core-go/internal/service/catalog"
	overtimeService "github.com/cmlabs-hris/payroll-core-go/internal/service/overtime"
	"github.com/cmlabs-hris/payroll-core-go/internal/service/payroll"
	salaryService "github.com/cmlabs-hris/payroll-core-go/internal/service/salary"
	workRecordService "github.com/cmlabs-hris/payroll-core-go/internal/service/workrecord"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, jwtSecret string) http.Handler {
	t.Helper()

	store := memory.NewStore()
	store.Seed(fixtures.DefaultCatalog())
	m := metrics.New("test")

	workTypeRepo := memory.NewWorkTypeRepository(store)
	workItemRepo := memory.NewWorkItemRepository(store)
	overtimeRepo := memory.NewOvertimeRepository(store)
	workRecordRepo := memory.NewWorkRecordRepository(store)
	salaryRepo := memory.NewSalaryRepository(store)

	catalog := catalogService.NewCatalogService(workTypeRepo, workItemRepo, workRecordRepo)
	overtimeSvc := overtimeService.NewOvertimeService(workTypeRepo, overtimeRepo)
	recordSvc := workRecordService.NewWorkRecordService(store, workTypeRepo, workItemRepo, overtimeRepo, workRecordRepo, payroll.NewLineCalculator(), m)
	salarySvc := salaryService.NewSalaryService(store, workRecordRepo, salaryRepo, m)

	return NewRouter(RouterConfig{
		AllowedOrigins: []string{"http://localhost:3000"},
		JWTSecret:      jwtSecret,
		Metrics:        m.Handler(),
	}, Handlers{
		WorkType:   NewWorkTypeHandler(catalog, overtimeSvc),
		WorkItem:   NewWorkItemHandler(catalog),
		WorkRecord: NewWorkRecordHandler(recordSvc),
		Salary:     NewSalaryHandler(salarySvc),
	})
}

type envelope struct {
	Success bool                  `json:"success"`
	Data    json.RawMessage       `json:"data"`
	Error   *response.ErrorDetail `json:"error"`
	Meta    *response.Meta        `json:"meta"`
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestRouter_WorkRecordQuotaFlow(t *testing.T) {
	router := newTestRouter(t, "")

	rec, env := do(t, router, http.MethodPost, "/api/v1/work-records", `{
		"employee_id": "emp-1", "work_date": "2024-05-02", "work_type_id": "wt-welding",
		"work_item_id": "wi-frame", "quantity": 60
	}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID          string `json:"id"`
		TotalAmount int64  `json:"total_amount"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, int64(300000), created.TotalAmount)

	rec, env = do(t, router, http.MethodPost, "/api/v1/work-records", `{
		"employee_id": "emp-2", "work_date": "2024-05-02", "work_type_id": "wt-welding",
		"work_item_id": "wi-frame", "quantity": 50
	}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "QUOTA_EXCEEDED", env.Error.Code)
	assert.Equal(t, "40", env.Error.Details["remaining"])
	assert.Equal(t, "50", env.Error.Details["requested"])

	rec, env = do(t, router, http.MethodGet, "/api/v1/work-items/wi-frame/remaining?exclude_record_id="+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var quota struct {
		Remaining int64 `json:"remaining"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &quota))
	assert.Equal(t, int64(100), quota.Remaining)

	rec, _ = do(t, router, http.MethodDelete, "/api/v1/work-records/"+created.ID, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, router, http.MethodGet, "/api/v1/work-records/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_WorkRecordErrors(t *testing.T) {
	router := newTestRouter(t, "")

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"malformed json", `{"employee_id":`, http.StatusBadRequest, "BAD_REQUEST"},
		{"missing fields", `{}`, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"daily overtime", `{"employee_id":"emp-1","work_date":"2024-05-02","work_type_id":"wt-cleaning","quantity":1,"is_overtime":true}`, http.StatusBadRequest, "UNSUPPORTED_CALCULATION_MODE"},
		{"weld quantity beyond int64", `{"employee_id":"emp-1","work_date":"2024-05-02","work_type_id":"wt-welding","work_item_id":"wi-frame","quantity":18446744073709551615}`, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"overtime quantity at max int64", `{"employee_id":"emp-1","work_date":"2024-05-02","work_type_id":"wt-welding","work_item_id":"wi-frame","quantity":1,"is_overtime":true,"overtime_quantity":9223372036854775807}`, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"unknown work type", `{"employee_id":"emp-1","work_date":"2024-05-02","work_type_id":"nope","quantity":1}`, http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, router, http.MethodPost, "/api/v1/work-records", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestRouter_SalaryLifecycle(t *testing.T) {
	router := newTestRouter(t, "")

	rec, _ := do(t, router, http.MethodPost, "/api/v1/work-records", `{
		"employee_id": "emp-1", "work_date": "2024-05-02", "work_type_id": "wt-assembly",
		"quantity": 8, "is_overtime": true, "overtime_hours": 2
	}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, env := do(t, router, http.MethodPost, "/api/v1/salaries/calculate", `{"employee_id":"emp-1","period_year":2024,"period_month":5}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var calculated struct {
		ID            string `json:"id"`
		TotalAmount   int64  `json:"total_amount"`
		PayableAmount int64  `json:"payable_amount"`
		Status        string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &calculated))
	assert.Equal(t, int64(550000), calculated.TotalAmount)
	assert.Equal(t, "draft", calculated.Status)

	rec, _ = do(t, router, http.MethodPut, "/api/v1/salaries/"+calculated.ID+"/allowances", `{"amount": -1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, _ = do(t, router, http.MethodPut, "/api/v1/salaries/"+calculated.ID+"/allowances", `{"amount": 50000}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = do(t, router, http.MethodPost, "/api/v1/salaries/"+calculated.ID+"/pay", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &calculated))
	assert.Equal(t, "paid", calculated.Status)
	assert.Equal(t, int64(600000), calculated.PayableAmount)

	rec, env = do(t, router, http.MethodPost, "/api/v1/salaries/"+calculated.ID+"/pay", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	rec, _ = do(t, router, http.MethodDelete, "/api/v1/salaries/"+calculated.ID, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, env = do(t, router, http.MethodGet, "/api/v1/salaries?status=paid&period_year=2024", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(1), env.Meta.TotalItems)

	rec, env = do(t, router, http.MethodGet, "/api/v1/salaries?page=4611686018427387904", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", string(env.Data))

	rec, _ = do(t, router, http.MethodGet, "/api/v1/salaries?period_month=may", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRouter_OvertimeConfig(t *testing.T) {
	router := newTestRouter(t, "")

	rec, env := do(t, router, http.MethodGet, "/api/v1/work-types/wt-cleaning/overtime-config", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, env.Data)

	rec, _ = do(t, router, http.MethodPut, "/api/v1/work-types/wt-cleaning/overtime-config", `{"overtime_percentage": 101}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, _ = do(t, router, http.MethodPut, "/api/v1/work-types/wt-assembly/overtime-config", `{"overtime_percentage": "75"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, router, http.MethodGet, "/api/v1/work-types/missing/overtime-config", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = do(t, router, http.MethodGet, "/api/v1/work-types?department=production", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 2)
}

func TestRouter_JWTAndMetrics(t *testing.T) {
	router := newTestRouter(t, "test-secret")

	rec, _ := do(t, router, http.MethodGet, "/api/v1/work-types", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	_, token, err := ja.Encode(map[string]interface{}{"sub": "payroll-admin", "exp": time.Now().Add(time.Hour).Unix()})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/work-types", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "test_quota_rejections_total")
}
