// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-clinic-keeper/internal/config"
	"github.com/MKhiriev/go-clinic-keeper/internal/logger"
	"github.com/MKhiriev/go-clinic-keeper/models"
)

func newTestAdapter(t *testing.T, serverURL string) EntityAdapter {
	t.Helper()
	a, err := NewHTTPEntityAdapter(config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 2 * time.Second}, logger.Nop())
	require.NoError(t, err)
	return a
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// ── normalizeBaseURL ──────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "localhost:8080", want: "http://localhost:8080"},
		{raw: " https://clinic.example/ ", want: "https://clinic.example"},
		{raw: "", wantErr: true},
		{raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPEntityAdapter_InvalidAddress(t *testing.T) {
	_, err := NewHTTPEntityAdapter(config.ClientAdapter{}, logger.Nop())
	require.Error(t, err)
}

// ── List ──────────────────────────────────────────────────────────────────────

func TestList_SendsFiltersAndDecodesRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/hearing-reports", r.URL.Path)
		assert.Equal(t, "c-1", r.URL.Query().Get("clientId"))

		writeJSON(t, w, http.StatusOK, []models.Record{{"id": "h-1", "clientId": "c-1"}})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).List(context.Background(), models.EntityHearingReport, models.ListParams{"clientId": "c-1"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "h-1", got[0].ID())
}

func TestList_EmptyBodyIsEmptySlice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, []models.Record{})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).List(context.Background(), models.EntityClient, nil)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// ── GetByID ───────────────────────────────────────────────────────────────────

func TestGetByID_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/clients/c-404", r.URL.Path)
		writeJSON(t, w, http.StatusNotFound, map[string]string{"error": "record not found"})
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).GetByID(context.Background(), models.EntityClient, "c-404")
	require.ErrorIs(t, err, ErrNotFound)
	assert.ErrorContains(t, err, "record not found")
}

// ── Create / Update / Delete ──────────────────────────────────────────────────

func TestCreate_PostsPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/clients", r.URL.Path)

		var body models.Record
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "A", body["name"])

		writeJSON(t, w, http.StatusCreated, body.Merge(models.Record{"id": "c-1"}))
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).Create(context.Background(), models.EntityClient, models.Record{"name": "A"})
	require.NoError(t, err)
	assert.Equal(t, models.Record{"id": "c-1", "name": "A"}, got)
}

func TestUpdate_PutsPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/reminders/r-1", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.Record{"id": "r-1", "message": "new"})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).Update(context.Background(), models.EntityReminder, "r-1", models.Record{"message": "new"})
	require.NoError(t, err)
	assert.Equal(t, "new", got["message"])
}

func TestUpdate_ServerErrors(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{status: http.StatusBadRequest, want: ErrBadRequest},
		{status: http.StatusConflict, want: ErrConflict},
		{status: http.StatusInternalServerError, want: ErrInternalServerError},
		{status: http.StatusBadGateway, want: ErrBadGateway},
		{status: http.StatusServiceUnavailable, want: ErrServiceUnavailable},
		{status: http.StatusTeapot, want: ErrUnexpectedStatus},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := newTestAdapter(t, srv.URL).Update(context.Background(), models.EntityClient, "c-1", models.Record{"name": "B"})
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDelete_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/clients/c-1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, newTestAdapter(t, srv.URL).Delete(context.Background(), models.EntityClient, "c-1"))
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestAdapter(t, url).GetByID(context.Background(), models.EntityClient, "c-1")
	require.ErrorIs(t, err, ErrTransport)
}

// ── Prober ────────────────────────────────────────────────────────────────────

func TestProber_Ping(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusOK)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		w.WriteHeader(int(status.Load()))
	}))
	defer srv.Close()

	p, err := NewHTTPProber(config.ClientAdapter{HTTPAddress: srv.URL}, "api/health")
	require.NoError(t, err)

	require.NoError(t, p.Ping(context.Background()))

	status.Store(http.StatusNoContent)
	require.NoError(t, p.Ping(context.Background()))

	status.Store(http.StatusServiceUnavailable)
	require.ErrorIs(t, p.Ping(context.Background()), ErrServiceUnavailable)
}

func TestProber_PingTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	p, err := NewHTTPProber(config.ClientAdapter{HTTPAddress: srv.URL}, "/api/health")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.ErrorIs(t, p.Ping(ctx), ErrTransport)
}
