package rfms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// rawBodyLimit сколько символов не-JSON ответа сохраняется для диагностики
const rawBodyLimit = 2000

// Client клиент RFMS: авторизованные запросы и нормализация ответов
// Ошибки всегда возвращаются значениями, тело ответа можно читать только после проверки ошибки
type Client struct {
	cfg        Config
	httpClient *http.Client
	session    TokenSource
	log        Logger
	metrics    Metrics
}

// NewClient создает новый экземпляр клиента RFMS
func NewClient(cfg Config, httpClient *http.Client, session TokenSource, log Logger, m Metrics) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		session:    session,
		log:        log,
		metrics:    m,
	}
}

// Enabled включена ли интеграция
func (c *Client) Enabled() bool {
	return c.cfg.Enabled()
}

// Call выполняет запрос к RFMS
// При не-2xx ответе возвращает и разобранное тело, и *StatusError
func (c *Client) Call(ctx context.Context, method, endpoint string, payload any) (Body, error) {
	if !c.cfg.Enabled() {
		return Body{}, ErrDisabled
	}

	token := c.session.Token(ctx)
	if token == "" {
		return Body{}, ErrNoSession
	}

	start := time.Now()
	body, err := c.do(ctx, method, endpoint, token, payload)
	c.observe(endpoint, err, time.Since(start))

	return body, err
}

func (c *Client) do(ctx context.Context, method, endpoint, token string, payload any) (Body, error) {
	url := strings.TrimRight(c.cfg.baseURL(), "/") + "/" + strings.TrimLeft(endpoint, "/")

	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return Body{}, fmt.Errorf("%w: failed to encode payload: %v", ErrRequestFailed, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return Body{}, fmt.Errorf("%w: failed to create request: %v", ErrRequestFailed, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", basicAuth(c.cfg.StoreQueue, token))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Body{}, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Body{}, fmt.Errorf("%w: failed to read response: %v", ErrRequestFailed, err)
	}

	body, err := decodeBody(resp.Header.Get("Content-Type"), raw)
	if err != nil {
		return body, fmt.Errorf("%w: failed to decode response: %v", ErrRequestFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := body.ErrorMessage()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return body, &StatusError{StatusCode: resp.StatusCode, Message: msg}
	}

	return body, nil
}

func (c *Client) observe(endpoint string, err error, duration time.Duration) {
	if c.metrics == nil {
		return
	}

	outcome := "ok"
	if err != nil {
		outcome = "error"
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			outcome = "status_error"
		}
	}

	c.metrics.ObserveCRMRequest(endpointLabel(endpoint), outcome, duration)
}

// endpointLabel убирает идентификаторы из пути: "customer/123" -> "customer"
func endpointLabel(endpoint string) string {
	endpoint = strings.Trim(endpoint, "/")
	parts := strings.Split(endpoint, "/")
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" || strings.IndexFunc(part, func(r rune) bool { return r >= '0' && r <= '9' }) >= 0 {
			break
		}
		kept = append(kept, part)
	}
	if len(kept) == 0 {
		return "unknown"
	}
	return strings.Join(kept, "/")
}

// decodeBody разбирает JSON ответ; не-JSON ответ оборачивается в {"raw": text}
func decodeBody(contentType string, raw []byte) (Body, error) {
	if !strings.Contains(contentType, "application/json") {
		return Body{value: map[string]any{"raw": truncate(string(raw), rawBodyLimit)}}, nil
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return Body{value: map[string]any{}}, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return Body{value: map[string]any{"raw": truncate(string(raw), rawBodyLimit)}}, err
	}

	return Body{value: value}, nil
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
