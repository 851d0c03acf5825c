package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-clinic-keeper/internal/config"
	"github.com/MKhiriev/go-clinic-keeper/internal/logger"
	"github.com/MKhiriev/go-clinic-keeper/internal/utils"
	"github.com/MKhiriev/go-clinic-keeper/models"
)

const apiPrefix = "/api/"

type httpEntityAdapter struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPEntityAdapter constructs an HTTP/REST implementation of
// [EntityAdapter]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and bounds every request by
// adapterCfg.RequestTimeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPEntityAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (EntityAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpEntityAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func collectionPath(entityType models.EntityType) string {
	return apiPrefix + entityType.Path()
}

func itemPath(entityType models.EntityType) string {
	return apiPrefix + entityType.Path() + "/{id}"
}

// List implements [EntityAdapter]. It issues GET /api/{collection} with params
// as query string filters.
func (h *httpEntityAdapter) List(ctx context.Context, entityType models.EntityType, params models.ListParams) ([]models.Record, error) {
	var records []models.Record

	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&records).
		Get(collectionPath(entityType))
	if err = h.check(ctx, "httpEntityAdapter.List", entityType, "", resp, err); err != nil {
		return nil, err
	}

	if records == nil {
		records = []models.Record{}
	}
	return records, nil
}

// GetByID implements [EntityAdapter] via GET /api/{collection}/{id}.
func (h *httpEntityAdapter) GetByID(ctx context.Context, entityType models.EntityType, id string) (models.Record, error) {
	var record models.Record

	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetResult(&record).
		Get(itemPath(entityType))
	if err = h.check(ctx, "httpEntityAdapter.GetByID", entityType, id, resp, err); err != nil {
		return nil, err
	}

	return record, nil
}

// Create implements [EntityAdapter] via POST /api/{collection}.
func (h *httpEntityAdapter) Create(ctx context.Context, entityType models.EntityType, payload models.Record) (models.Record, error) {
	var record models.Record

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		SetResult(&record).
		Post(collectionPath(entityType))
	if err = h.check(ctx, "httpEntityAdapter.Create", entityType, "", resp, err); err != nil {
		return nil, err
	}

	return record, nil
}

// Update implements [EntityAdapter] via PUT /api/{collection}/{id}. The
// backend merges payload into the stored record.
func (h *httpEntityAdapter) Update(ctx context.Context, entityType models.EntityType, id string, payload models.Record) (models.Record, error) {
	var record models.Record

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", id).
		SetBody(payload).
		SetResult(&record).
		Put(itemPath(entityType))
	if err = h.check(ctx, "httpEntityAdapter.Update", entityType, id, resp, err); err != nil {
		return nil, err
	}

	return record, nil
}

// Delete implements [EntityAdapter] via DELETE /api/{collection}/{id}.
func (h *httpEntityAdapter) Delete(ctx context.Context, entityType models.EntityType, id string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		Delete(itemPath(entityType))

	return h.check(ctx, "httpEntityAdapter.Delete", entityType, id, resp, err)
}

// check converts a transport error or a non-2xx response into an error and
// logs it.
func (h *httpEntityAdapter) check(ctx context.Context, fn string, entityType models.EntityType, id string, resp *resty.Response, err error) error {
	if err != nil {
		err = fmt.Errorf("%w: %s %s: %w", ErrTransport, fn, entityType, err)
	} else {
		err = mapHTTPError(resp)
	}
	if err == nil {
		return nil
	}

	logger.FromContext(ctx).Debug().Err(err).
		Str("func", fn).
		Str("entity_type", string(entityType)).
		Str("entity_id", id).
		Msg("remote entity operation failed")

	return err
}

type httpProber struct {
	client     *utils.HTTPClient
	healthPath string
}

// NewHTTPProber constructs a [Prober] issuing GET healthPath against the
// backend named by adapterCfg.HTTPAddress. The probe timeout is left to the
// caller's context.
func NewHTTPProber(adapterCfg config.ClientAdapter, healthPath string) (Prober, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}
	if !strings.HasPrefix(healthPath, "/") {
		healthPath = "/" + healthPath
	}

	return &httpProber{
		client:     utils.NewHTTPClient(baseURL, 0),
		healthPath: healthPath,
	}, nil
}

// Ping implements [Prober].
func (p *httpProber) Ping(ctx context.Context) error {
	resp, err := p.client.R().
		SetContext(ctx).
		Get(p.healthPath)
	if err != nil {
		return fmt.Errorf("%w: health probe: %w", ErrTransport, err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("health probe: %w", mapHTTPError(resp))
	}
	return nil
}
