// errors стандартизирует ответы об ошибках HTTP API tenders-service.
// На вход принимает ошибку сервисного слоя, на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей;
//   - для ErrNotReady — рекомендуемую паузу (заголовок Retry-After).
package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/pribylovaa/tenders-service/internal/service"
	"github.com/pribylovaa/tenders-service/internal/tendersapi"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// APIError — единый формат ошибки.
// RetryAfterSeconds заполняется только для not_ready.
type APIError struct {
	Code              string `json:"code"`
	Message           string `json:"message"`
	RequestID         string `json:"request_id,omitempty"`
	RetryAfterSeconds int    `json:"retry_after_seconds,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку сервиса в HTTP-статус и унифицированный ответ.
//
// Маппинг:
//   - ErrNotReady -> 503 (+ retry_after_seconds);
//   - ErrInvalidArgument -> 400;
//   - ErrNotFound -> 404;
//   - ErrRebuildInProgress -> 409;
//   - context.Canceled -> 499, context.DeadlineExceeded -> 504;
//   - tendersapi.StatusError -> 502;
//   - nil и прочее -> 500/internal.
func ToHTTP(err error) (int, ErrorResponse) {
	switch {
	case err == nil:
		return internal()

	case stderrors.Is(err, service.ErrNotReady):
		resp := ErrorResponse{Error: APIError{Code: "not_ready", Message: "index is not ready yet"}}
		resp.Error.RetryAfterSeconds = int(service.DefaultRetryAfter.Seconds())

		var nre *service.NotReadyError
		if stderrors.As(err, &nre) && nre.RetryAfter > 0 {
			resp.Error.RetryAfterSeconds = int(nre.RetryAfter.Seconds())
		}

		return http.StatusServiceUnavailable, resp

	case stderrors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, ErrorResponse{Error: APIError{Code: "invalid_argument", Message: "invalid argument"}}

	case stderrors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Error: APIError{Code: "not_found", Message: "not found"}}

	case stderrors.Is(err, service.ErrRebuildInProgress):
		return http.StatusConflict, ErrorResponse{Error: APIError{Code: "rebuild_in_progress", Message: "rebuild already in progress"}}

	case stderrors.Is(err, context.Canceled):
		return StatusClientClosedRequest, ErrorResponse{Error: APIError{Code: "canceled", Message: "canceled"}}

	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, ErrorResponse{Error: APIError{Code: "deadline_exceeded", Message: "deadline exceeded"}}
	}

	var se *tendersapi.StatusError
	if stderrors.As(err, &se) {
		return http.StatusBadGateway, ErrorResponse{Error: APIError{Code: "upstream_error", Message: "upstream error"}}
	}

	return internal()
}

func internal() (int, ErrorResponse) {
	return http.StatusInternalServerError, ErrorResponse{
		Error: APIError{
			Code:    "internal",
			Message: "internal error",
		},
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет статус и тело, добавляет request_id из заголовка и Retry-After для 503.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	if resp.Error.RetryAfterSeconds > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(resp.Error.RetryAfterSeconds))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
