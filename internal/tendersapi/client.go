// tendersapi — HTTP-клиент источника tenders.guru.
// Реализует service.TendersSource: постраничную выдачу и чтение тендера по id.
package tendersapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pribylovaa/tenders-service/internal/models"
	"github.com/pribylovaa/tenders-service/internal/service"
	"github.com/pribylovaa/tenders-service/pkg/log"
	"golang.org/x/time/rate"
)

// ErrNotFound — источник ответил 404 на запрос тендера по id.
// Совпадает с service.ErrSourceNotFound, чтобы сервис распознавал её через errors.Is.
var ErrNotFound = service.ErrSourceNotFound

// StatusError — ответ источника с кодом не из 2xx.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status %d", e.Code)
}

// bodySnippetLimit — сколько байт тела ошибки попадает в лог.
const bodySnippetLimit = 512

// Client — клиент источника.
// HTTP-клиент настраивается извне (таймауты, прокси и т.д.).
type Client struct {
	client  *http.Client
	base    *url.URL
	limiter *rate.Limiter
}

// Option настраивает Client.
type Option func(*Client)

// WithRateLimit ограничивает частоту запросов к источнику (rps > 0).
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// New создаёт клиент. baseURL — корень API, например https://tenders.guru/api/pl/.
func New(client *http.Client, baseURL string, opts ...Option) (*Client, error) {
	const op = "tendersapi.New"

	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%s: base url must be absolute: %q", op, baseURL)
	}

	// Без завершающего слэша ResolveReference отбросит последний сегмент пути.
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	c := &Client{client: client, base: base}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// TendersPage загружает страницу выдачи: GET {base}tenders?page=N.
func (c *Client) TendersPage(ctx context.Context, pageNumber int) (*models.TendersPage, error) {
	const op = "tendersapi.TendersPage"

	q := url.Values{}
	q.Set("page", strconv.Itoa(pageNumber))

	var page models.TendersPage
	if err := c.getJSON(ctx, op, "tenders", q, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// TenderByID загружает один тендер: GET {base}tenders/{id}. 404 -> ErrNotFound.
func (c *Client) TenderByID(ctx context.Context, id int) (*models.TenderItem, error) {
	const op = "tendersapi.TenderByID"

	var item models.TenderItem
	err := c.getJSON(ctx, op, "tenders/"+strconv.Itoa(id), nil, &item)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, err
	}

	return &item, nil
}

// getJSON выполняет GET относительно base и декодирует JSON-ответ в dst.
// Пустое тело и литерал null считаются ошибкой.
func (c *Client) getJSON(ctx context.Context, op, path string, q url.Values, dst any) error {
	lg := log.From(ctx)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%s: rate_limit: %w", op, err)
		}
	}

	u := c.base.ResolveReference(&url.URL{Path: path})
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("%s: new_request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: do: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, bodySnippetLimit))
		_, _ = io.Copy(io.Discard, resp.Body)

		if resp.StatusCode != http.StatusNotFound {
			lg.Warn("upstream_bad_status",
				slog.String("op", op),
				slog.String("url", u.String()),
				slog.Int("status", resp.StatusCode),
				slog.String("body", string(snippet)),
			)
		}

		return fmt.Errorf("%s: %w", op, &StatusError{Code: resp.StatusCode})
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read_body: %w", op, err)
	}

	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" || trimmed == "null" {
		return fmt.Errorf("%s: empty response body", op)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%s: decode: %w", op, err)
	}

	return nil
}

// Проверка выполнения контракта верхнего уровня.
var _ service.TendersSource = (*Client)(nil)
