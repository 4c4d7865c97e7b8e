package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxResponseBytes = 10 << 20

// APIError is the single error type for every failed backend call: network
// failure (Status 0), non-2xx response, or a 2xx body reporting success=false.
type APIError struct {
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
}

func (e *APIError) Unwrap() error { return e.Err }

// StatusOf returns the HTTP status of an APIError, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// MessageOf returns the human-readable message shown in page error banners.
func MessageOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// APIClient calls the backend REST API with the session's bearer token.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	breaker    *CircuitBreaker
}

func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	cfg := DefaultCBConfig("backend-api")
	cfg.IsFailure = func(err error) bool {
		s := StatusOf(err)
		return s == 0 || s >= http.StatusInternalServerError
	}
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		breaker:    NewCircuitBreaker(cfg),
	}
}

// Breaker exposes the circuit breaker for health reporting.
func (c *APIClient) Breaker() *CircuitBreaker { return c.breaker }

// WithQuery appends non-empty query values to path.
func WithQuery(path string, q url.Values) string {
	for k, vs := range q {
		if len(vs) == 0 || vs[0] == "" {
			q.Del(k)
		}
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// Do sends body as JSON (nil = no body) and returns the normalized payload:
// the value of "data" when the response is a {data: ...} envelope, the bare
// body otherwise. A 204 or empty body yields nil.
func (c *APIClient) Do(ctx context.Context, token, method, path string, body any) (json.RawMessage, error) {
	var r io.Reader
	contentType := ""
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("api: marshal body: %w", err)
		}
		r = bytes.NewReader(b)
		contentType = "application/json"
	}
	return c.DoRaw(ctx, token, method, path, contentType, r)
}

// DoRaw sends a pre-encoded body (multipart forms) with the given content type.
func (c *APIClient) DoRaw(ctx context.Context, token, method, path, contentType string, body io.Reader) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.breaker.Execute(func() error {
		var err error
		out, err = c.roundTrip(ctx, token, method, path, contentType, body)
		return err
	})
	if errors.Is(err, ErrCircuitOpen) {
		return nil, &APIError{
			Status:  http.StatusServiceUnavailable,
			Message: "El servidor no está disponible. Intente nuevamente en unos segundos.",
			Err:     err,
		}
	}
	return out, err
}

func (c *APIClient) roundTrip(ctx context.Context, token, method, path, contentType string, body io.Reader) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("api: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Message: "No se pudo conectar con el servidor", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &APIError{Status: resp.StatusCode, Message: "Respuesta incompleta del servidor", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := mensajeDe(raw)
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &APIError{Status: resp.StatusCode, Message: msg}
	}
	return normalize(resp.StatusCode, raw)
}

// envelope covers the response shapes the backend uses.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Error   json.RawMessage `json:"error"`
	Detail  string          `json:"detail"`
	Msg     string          `json:"msg"`
}

func normalize(status int, raw []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] != '{' {
		return json.RawMessage(trimmed), nil
	}
	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, &APIError{Status: status, Message: "Respuesta inválida del servidor", Err: err}
	}
	if env.Success != nil && !*env.Success {
		msg := env.mensaje()
		if msg == "" {
			msg = "La operación no se pudo completar"
		}
		return nil, &APIError{Status: status, Message: msg}
	}
	if len(env.Data) > 0 {
		return env.Data, nil
	}
	return json.RawMessage(trimmed), nil
}

func (e envelope) mensaje() string {
	for _, m := range []string{e.Message, e.Detail, e.Msg} {
		if m != "" {
			return m
		}
	}
	var s string
	if len(e.Error) > 0 && json.Unmarshal(e.Error, &s) == nil {
		return s
	}
	var nested struct {
		Message string `json:"message"`
	}
	if len(e.Error) > 0 && json.Unmarshal(e.Error, &nested) == nil {
		return nested.Message
	}
	return ""
}

func mensajeDe(raw []byte) string {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return ""
	}
	return env.mensaje()
}

// Decode unmarshals a normalized payload into T.
func Decode[T any](raw json.RawMessage) (T, error) {
	var v T
	if len(raw) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, &APIError{Message: "Respuesta inválida del servidor", Err: err}
	}
	return v, nil
}

// DecodeList unmarshals a normalized list payload; null or empty yields an
// empty, non-nil slice.
func DecodeList[T any](raw json.RawMessage) ([]T, error) {
	list, err := Decode[[]T](raw)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []T{}
	}
	return list, nil
}
