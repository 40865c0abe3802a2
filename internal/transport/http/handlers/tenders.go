package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pribylovaa/tenders-service/internal/models"
	"github.com/pribylovaa/tenders-service/internal/service"
	apierrors "github.com/pribylovaa/tenders-service/internal/transport/http/errors"
	"github.com/shopspring/decimal"
)

// ListTenders — GET /tenders: выборка из индекса с фильтрами, сортировкой и пагинацией.
func (h *Handlers) ListTenders(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r.URL.Query())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Search(r.Context(), criteria)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listFromDomain(res))
}

// GetTender — GET /tenders/{id}: тендер из текущего снапшота.
func (h *Handlers) GetTender(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	tender, err := h.svc.TenderByID(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	item := tenderFromDomain(*tender)
	writeJSON(w, http.StatusOK, TenderGetResponse{Item: &item})
}

// GetSourceTender — GET /tenders/{id}/source: тендер напрямую из источника.
func (h *Handlers) GetSourceTender(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	tender, err := h.svc.SourceTender(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	item := tenderFromDomain(*tender)
	writeJSON(w, http.StatusOK, TenderGetResponse{Item: &item})
}

// TriggerRefresh — POST /tenders/refresh: фоновая пересборка.
// 202 — запущена, 409 — уже идёт.
func (h *Handlers) TriggerRefresh(w http.ResponseWriter, r *http.Request) {
	if !h.svc.TriggerRefresh(h.baseCtx) {
		apierrors.WriteError(w, r, service.ErrRebuildInProgress)
		return
	}

	writeJSON(w, http.StatusAccepted, RefreshResponse{Status: "started"})
}

func pathID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")

	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, invalid("id", raw)
	}

	return id, nil
}

// parseCriteria разбирает query-параметры выборки.
// Отсутствующий параметр — фильтр не задан; некорректный — ErrInvalidArgument.
func parseCriteria(q url.Values) (models.SearchCriteria, error) {
	var c models.SearchCriteria
	var err error

	if c.PageNumber, err = positiveInt(q, "page_number"); err != nil {
		return c, err
	}

	if c.PageSize, err = positiveInt(q, "page_size"); err != nil {
		return c, err
	}

	if c.MinAmount, err = amount(q, "min_price_eur"); err != nil {
		return c, err
	}

	if c.MaxAmount, err = amount(q, "max_price_eur"); err != nil {
		return c, err
	}

	if c.MinAmount != nil && c.MaxAmount != nil && c.MinAmount.GreaterThan(*c.MaxAmount) {
		return c, invalid("min_price_eur", q.Get("min_price_eur"))
	}

	if c.DateFrom, err = date(q, "date_from"); err != nil {
		return c, err
	}

	if c.DateTo, err = date(q, "date_to"); err != nil {
		return c, err
	}

	if c.DateFrom != nil && c.DateTo != nil && c.DateFrom.Compare(*c.DateTo) > 0 {
		return c, invalid("date_from", q.Get("date_from"))
	}

	if v := q.Get("supplier_id"); v != "" {
		id, convErr := strconv.Atoi(v)
		if convErr != nil || id < 1 {
			return c, invalid("supplier_id", v)
		}
		c.SupplierID = &id
	}

	if c.OrderBy, err = models.ParseOrderBy(q.Get("order_by")); err != nil {
		return c, fmt.Errorf("%w: %s", service.ErrInvalidArgument, err.Error())
	}

	if c.Direction, err = models.ParseOrderDirection(q.Get("order_direction")); err != nil {
		return c, fmt.Errorf("%w: %s", service.ErrInvalidArgument, err.Error())
	}

	return c, nil
}

// positiveInt — необязательный параметр >= 1; 0 означает «не задан».
func positiveInt(q url.Values, key string) (int, error) {
	v := q.Get(key)
	if v == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, invalid(key, v)
	}

	return n, nil
}

func amount(q url.Values, key string) (*decimal.Decimal, error) {
	v := q.Get(key)
	if v == "" {
		return nil, nil
	}

	d, err := decimal.NewFromString(v)
	if err != nil || d.IsNegative() {
		return nil, invalid(key, v)
	}

	return &d, nil
}

func date(q url.Values, key string) (*models.Date, error) {
	v := q.Get(key)
	if v == "" {
		return nil, nil
	}

	d, err := models.ParseDate(v)
	if err != nil {
		return nil, invalid(key, v)
	}

	return &d, nil
}

func invalid(key, value string) error {
	return fmt.Errorf("%w: %s=%q", service.ErrInvalidArgument, key, value)
}
