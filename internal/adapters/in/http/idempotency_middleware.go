package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	stdhttp "net/http"

	"orderflow/internal/core/application/idempotency"

	"github.com/labstack/echo/v4"
)

// HeaderIdempotencyKey carries the client-chosen idempotency key.
const HeaderIdempotencyKey = "Idempotency-Key"

// HeaderIdempotentReplay marks a response that was served from the
// idempotency store instead of re-executing the operation.
const HeaderIdempotentReplay = "X-Idempotent-Replay"

// IdempotencyMiddleware guards mutating routes with at-most-once
// semantics. Requests without a key pass through untouched; requests with
// a key either execute once and have their response recorded, or replay
// the recorded response of the earlier execution.
type IdempotencyMiddleware struct {
	service *idempotency.Service
	logger  *slog.Logger
}

// NewIdempotencyMiddleware creates the middleware over the given service.
func NewIdempotencyMiddleware(service *idempotency.Service, logger *slog.Logger) *IdempotencyMiddleware {
	return &IdempotencyMiddleware{
		service: service,
		logger:  logger.With("component", "idempotency-middleware"),
	}
}

// Guard returns the echo middleware function.
//
// The key is read from the Idempotency-Key header, falling back to the
// idempotencyKey field of a JSON body. The key is scoped to the concrete
// method and path, so the same key on two different orders never
// collides. Responses below 500 are recorded: a deterministic refusal
// (400/409/422) replays the same way a success does; a 5xx is transient
// and the client may retry the real operation.
func (m *IdempotencyMiddleware) Guard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			body, err := m.readBody(ctx)
			if err != nil {
				return ctx.JSON(stdhttp.StatusBadRequest, Error{
					Code:    stdhttp.StatusBadRequest,
					Message: "Failed to read request body",
				})
			}

			key := extractKey(ctx, body)
			if key == "" {
				return next(ctx)
			}

			req := ctx.Request()
			endpoint := req.Method + " " + req.URL.Path

			result, err := m.service.Check(req.Context(), key, endpoint, body)
			if err != nil {
				m.logger.ErrorContext(req.Context(), "idempotency check failed",
					"key", key, "endpoint", endpoint, "error", err)
				return ctx.JSON(stdhttp.StatusInternalServerError, Error{
					Code:    stdhttp.StatusInternalServerError,
					Message: "Internal server error",
				})
			}

			if result.FingerprintMismatch {
				return ctx.JSON(stdhttp.StatusConflict, Error{
					Code:    stdhttp.StatusConflict,
					Message: "Idempotency key reused with a different request body",
				})
			}

			if result.IsDuplicate {
				ctx.Response().Header().Set(HeaderIdempotentReplay, "true")
				return ctx.Blob(result.StatusCode, echo.MIMEApplicationJSON, result.ResponseBody)
			}

			recorder := newResponseRecorder(ctx.Response().Writer)
			ctx.Response().Writer = recorder

			if err = next(ctx); err != nil {
				return err
			}

			status := ctx.Response().Status
			if status >= stdhttp.StatusInternalServerError {
				return nil
			}

			if storeErr := m.service.Store(req.Context(), key, endpoint, body, recorder.body.Bytes(), status); storeErr != nil {
				// The response is already on the wire; the record is
				// advisory at this point.
				m.logger.ErrorContext(req.Context(), "idempotency store failed",
					"key", key, "endpoint", endpoint, "error", storeErr)
			}

			return nil
		}
	}
}

// readBody drains the request body and puts a replayable copy back so the
// handler can bind it normally.
func (m *IdempotencyMiddleware) readBody(ctx echo.Context) ([]byte, error) {
	req := ctx.Request()
	if req.Body == nil {
		return nil, nil
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, err
	}
	req.Body = io.NopCloser(bytes.NewReader(body))

	return body, nil
}

// extractKey prefers the header. The body fallback exists for clients
// behind proxies that strip custom headers.
func extractKey(ctx echo.Context, body []byte) string {
	if key := ctx.Request().Header.Get(HeaderIdempotencyKey); key != "" {
		return key
	}

	if len(body) == 0 {
		return ""
	}

	var envelope struct {
		IdempotencyKey string `json:"idempotencyKey"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}

	return envelope.IdempotencyKey
}

// responseRecorder tees the response body so it can be stored for replay.
type responseRecorder struct {
	stdhttp.ResponseWriter
	body bytes.Buffer
}

func newResponseRecorder(w stdhttp.ResponseWriter) *responseRecorder {
	return &responseRecorder{ResponseWriter: w}
}

func (r *responseRecorder) Write(p []byte) (int, error) {
	r.body.Write(p)
	return r.ResponseWriter.Write(p)
}
