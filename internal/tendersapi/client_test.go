package tendersapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pribylovaa/tenders-service/internal/service"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(srv.Client(), srv.URL+"/api/pl", opts...)
	require.NoError(t, err)

	return c
}

// TestNew_Validation — базовый URL должен быть абсолютным.
func TestNew_Validation(t *testing.T) {
	t.Parallel()

	for _, bad := range []string{"", "tenders.guru/api", "/api/pl", "://bad"} {
		_, err := New(nil, bad)
		require.Error(t, err, bad)
	}

	c, err := New(nil, "https://tenders.guru/api/pl")
	require.NoError(t, err)
	require.Equal(t, "/api/pl/", c.base.Path)
}

// TestTendersPage_OK — запрос страницы и разбор ответа.
func TestTendersPage_OK(t *testing.T) {
	t.Parallel()

	var got atomic.Pointer[http.Request]
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got.Store(r.Clone(context.Background()))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page_number":7,"page_size":1,"data":[
			{"id":"101","date":"2024-03-04","title":"Bridge","awarded_value_eur":250000.5,
			 "awarded":[{"suppliers":[{"id":"9","name":"Acme"}]}]}
		]}`))
	})

	page, err := c.TendersPage(context.Background(), 7)
	require.NoError(t, err)

	req := got.Load()
	require.NotNil(t, req)
	require.Equal(t, http.MethodGet, req.Method)
	require.Equal(t, "/api/pl/tenders", req.URL.Path)
	require.Equal(t, "7", req.URL.Query().Get("page"))
	require.Equal(t, "application/json", req.Header.Get("Accept"))

	require.Equal(t, 7, page.PageNumber)
	require.Len(t, page.Data, 1)
	require.EqualValues(t, 101, page.Data[0].ID)
	require.Equal(t, "250000.5", page.Data[0].AwardedValueEur.Decimal.String())
	require.EqualValues(t, 9, page.Data[0].Awarded[0].Suppliers[0].ID)
}

// TestTendersPage_BadStatus — не-2xx превращается в StatusError.
func TestTendersPage_BadStatus(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	})

	_, err := c.TendersPage(context.Background(), 1)
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	require.Equal(t, http.StatusInternalServerError, se.Code)
}

// TestTendersPage_EmptyOrNullBody — пустой ответ считается ошибкой.
func TestTendersPage_EmptyOrNullBody(t *testing.T) {
	t.Parallel()

	for _, body := range []string{"", "null", "  \n"} {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(body))
		})

		_, err := c.TendersPage(context.Background(), 1)
		require.Error(t, err, "body %q", body)
	}
}

// TestTendersPage_BadJSON — некорректный JSON.
func TestTendersPage_BadJSON(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"id":"abc"}]}`))
	})

	_, err := c.TendersPage(context.Background(), 1)
	require.Error(t, err)
}

// TestTenderByID — успешное чтение, 404 и прочие ошибки.
func TestTenderByID(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/pl/tenders/5":
			_, _ = w.Write([]byte(`{"id":5,"date":"2023-12-31","title":"Lamps"}`))
		case "/api/pl/tenders/6":
			http.NotFound(w, r)
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	})

	item, err := c.TenderByID(context.Background(), 5)
	require.NoError(t, err)
	require.EqualValues(t, 5, item.ID)
	require.Equal(t, "Lamps", *item.Title)
	require.False(t, item.AwardedValueEur.Valid)

	_, err = c.TenderByID(context.Background(), 6)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, err, service.ErrSourceNotFound)

	_, err = c.TenderByID(context.Background(), 7)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}

// TestTendersPage_ContextCanceled — отмена ctx прерывает запрос.
func TestTendersPage_ContextCanceled(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.TendersPage(ctx, 1)
	require.Error(t, err)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

// TestWithRateLimit — лимитер растягивает серию запросов.
func TestWithRateLimit(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"data":[]}`))
	}, WithRateLimit(20))

	start := time.Now()
	for i := 1; i <= 3; i++ {
		_, err := c.TendersPage(context.Background(), i)
		require.NoError(t, err)
	}

	// burst 1: третий запрос не раньше чем через 2/20 с.
	require.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
	require.EqualValues(t, 3, hits.Load())
}
