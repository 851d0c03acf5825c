package http

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-clinic-keeper/internal/logger"
	"github.com/MKhiriev/go-clinic-keeper/internal/service"
	"github.com/MKhiriev/go-clinic-keeper/internal/store"
	"github.com/MKhiriev/go-clinic-keeper/models"
)

// ── Fakes ───────────────────────────────────────────────────────────────────

type fakeRecordService struct {
	listFn   func(ctx context.Context, et models.EntityType, params models.ListParams) ([]models.Record, error)
	getFn    func(ctx context.Context, et models.EntityType, id string) (models.Record, error)
	createFn func(ctx context.Context, et models.EntityType, data models.Record) (models.Record, error)
	updateFn func(ctx context.Context, et models.EntityType, id string, data models.Record) (models.Record, error)
	deleteFn func(ctx context.Context, et models.EntityType, id string) error
}

func (f *fakeRecordService) List(ctx context.Context, et models.EntityType, params models.ListParams) ([]models.Record, error) {
	return f.listFn(ctx, et, params)
}

func (f *fakeRecordService) Get(ctx context.Context, et models.EntityType, id string) (models.Record, error) {
	return f.getFn(ctx, et, id)
}

func (f *fakeRecordService) Create(ctx context.Context, et models.EntityType, data models.Record) (models.Record, error) {
	return f.createFn(ctx, et, data)
}

func (f *fakeRecordService) Update(ctx context.Context, et models.EntityType, id string, data models.Record) (models.Record, error) {
	return f.updateFn(ctx, et, id, data)
}

func (f *fakeRecordService) Delete(ctx context.Context, et models.EntityType, id string) error {
	return f.deleteFn(ctx, et, id)
}

type fakeAppInfo struct{ info models.AppBuildInfo }

func (f fakeAppInfo) GetBuildInfo(context.Context) models.AppBuildInfo { return f.info }

func newTestRouter(t *testing.T, records service.RecordService) (http.Handler, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	services := &service.Services{
		AppInfoService: fakeAppInfo{info: models.NewAppBuildInfo("1.2.3", "2026-10-16", "abc1234")},
		RecordService:  records,
	}
	return NewHandler(services, reg, logger.Nop()).Init(), reg
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// ── Service endpoints ───────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	h, _ := newTestRouter(t, &fakeRecordService{})

	rec := do(t, h, http.MethodGet, "/api/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestVersion(t *testing.T) {
	h, _ := newTestRouter(t, &fakeRecordService{})

	rec := do(t, h, http.MethodGet, "/api/version", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"version":"1.2.3","commit":"abc1234","date":"2026-10-16"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newTestRouter(t, &fakeRecordService{})

	do(t, h, http.MethodGet, "/api/health", "")
	rec := do(t, h, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `route="/api/health"`)
}

func TestMetricsEndpoint_DisabledWithoutRegistry(t *testing.T) {
	h := NewHandler(&service.Services{}, nil, logger.Nop()).Init()

	rec := do(t, h, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	h, _ := newTestRouter(t, &fakeRecordService{})

	rec := do(t, h, http.MethodGet, "/nope", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"route not found"}`, rec.Body.String())
}

func TestUnsupportedMethodIsNotFound(t *testing.T) {
	h, _ := newTestRouter(t, &fakeRecordService{})

	rec := do(t, h, http.MethodPatch, "/api/clients/abc", `{}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTraceID(t *testing.T) {
	h, _ := newTestRouter(t, &fakeRecordService{})

	t.Run("assigned when missing", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/health", "")
		assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
	})

	t.Run("echoed when present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set(traceIDHeader, "trace-1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, "trace-1", rec.Header().Get(traceIDHeader))
	})
}

// ── Record endpoints ────────────────────────────────────────────────────────

func TestListRecords(t *testing.T) {
	var gotType models.EntityType
	var gotParams models.ListParams
	svc := &fakeRecordService{
		listFn: func(_ context.Context, et models.EntityType, params models.ListParams) ([]models.Record, error) {
			gotType, gotParams = et, params
			return []models.Record{{"id": "r1"}}, nil
		},
	}
	h, _ := newTestRouter(t, svc)

	rec := do(t, h, http.MethodGet, "/api/hearing-reports?clientId=c1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":"r1"}]`, rec.Body.String())
	assert.Equal(t, models.EntityHearingReport, gotType)
	assert.Equal(t, models.ListParams{"clientId": "c1"}, gotParams)
}

func TestListRecords_UnknownCollection(t *testing.T) {
	h, _ := newTestRouter(t, &fakeRecordService{})

	rec := do(t, h, http.MethodGet, "/api/invoices", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetRecord(t *testing.T) {
	svc := &fakeRecordService{
		getFn: func(_ context.Context, _ models.EntityType, id string) (models.Record, error) {
			if id == "missing" {
				return nil, fmt.Errorf("%w: %w", service.ErrRecordNotFound, store.ErrRecordNotFound)
			}
			return models.Record{"id": id, "name": "Ann"}, nil
		},
	}
	h, _ := newTestRouter(t, svc)

	rec := do(t, h, http.MethodGet, "/api/clients/c1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"c1","name":"Ann"}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/clients/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateRecord(t *testing.T) {
	svc := &fakeRecordService{
		createFn: func(_ context.Context, et models.EntityType, data models.Record) (models.Record, error) {
			out := models.Record{"id": "new"}
			for k, v := range data {
				out[k] = v
			}
			return out, nil
		},
	}
	h, _ := newTestRouter(t, svc)

	rec := do(t, h, http.MethodPost, "/api/clients", `{"name":"Ann"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":"new","name":"Ann"}`, rec.Body.String())
}

func TestCreateRecord_InvalidJSON(t *testing.T) {
	h, _ := newTestRouter(t, &fakeRecordService{})

	rec := do(t, h, http.MethodPost, "/api/clients", `{"name":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateRecord(t *testing.T) {
	var gotID string
	svc := &fakeRecordService{
		updateFn: func(_ context.Context, _ models.EntityType, id string, data models.Record) (models.Record, error) {
			gotID = id
			return models.Record{"id": id, "done": data["done"]}, nil
		},
	}
	h, _ := newTestRouter(t, svc)

	rec := do(t, h, http.MethodPut, "/api/reminders/rm1", `{"done":true}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "rm1", gotID)
	assert.JSONEq(t, `{"id":"rm1","done":true}`, rec.Body.String())
}

func TestDeleteRecord(t *testing.T) {
	svc := &fakeRecordService{
		deleteFn: func(context.Context, models.EntityType, string) error { return nil },
	}
	h, _ := newTestRouter(t, svc)

	rec := do(t, h, http.MethodDelete, "/api/clients/c1", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestRecordErrorsAreMapped(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid record", fmt.Errorf("%w: name required", service.ErrInvalidRecord), http.StatusBadRequest},
		{"conflict", fmt.Errorf("insert: %w", store.ErrRecordAlreadyExists), http.StatusConflict},
		{"unavailable", fmt.Errorf("%w: %w", service.ErrServiceUnavailable, store.ErrExecutingQuery), http.StatusServiceUnavailable},
		{"unexpected", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeRecordService{
				createFn: func(context.Context, models.EntityType, models.Record) (models.Record, error) {
					return nil, tt.err
				},
			}
			h, _ := newTestRouter(t, svc)

			rec := do(t, h, http.MethodPost, "/api/clients", `{"name":"Ann"}`)

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}
