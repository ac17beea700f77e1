package rfms

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	// sessionSafetyMargin токен с меньшим остатком жизни обновляется заранее
	sessionSafetyMargin = 60 * time.Second

	// sessionTTL срок жизни токена. Срок, заявленный сервером, игнорируется
	sessionTTL = 20 * time.Minute

	sessionBeginTimeout = 20 * time.Second
	sessionBeginPath    = "session/begin"
)

// SessionCache хранит один токен сессии RFMS на процесс
// Проверка, обновление и запись выполняются под одним мьютексом, поэтому
// конкурентные вызовы никогда не делают лишних запросов авторизации
type SessionCache struct {
	cfg        Config
	httpClient *http.Client
	log        Logger
	metrics    Metrics
	now        func() time.Time

	mu      sync.Mutex
	token   string
	expires time.Time
}

// NewSessionCache создает кэш сессии
func NewSessionCache(cfg Config, httpClient *http.Client, log Logger, m Metrics) *SessionCache {
	return &SessionCache{
		cfg:        cfg,
		httpClient: httpClient,
		log:        log,
		metrics:    m,
		now:        time.Now,
	}
}

// Token возвращает действующий токен или пустую строку, если получить его не удалось
func (s *SessionCache) Token(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.token != "" && s.expires.After(now.Add(sessionSafetyMargin)) {
		return s.token
	}

	token, err := s.begin(ctx)
	if err != nil {
		s.log.Warn("SessionCache.Token: RFMS session/begin failed: %v", err)
		s.refreshed("failed")
		return ""
	}

	s.token = token
	s.expires = now.Add(sessionTTL)
	s.refreshed("ok")

	return token
}

func (s *SessionCache) refreshed(outcome string) {
	if s.metrics != nil {
		s.metrics.IncCRMSessionRefresh(outcome)
	}
}

func (s *SessionCache) begin(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, sessionBeginTimeout)
	defer cancel()

	url := strings.TrimRight(s.cfg.baseURL(), "/") + "/" + sessionBeginPath

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", basicAuth(s.cfg.StoreQueue, s.cfg.APIKey))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, rawBodyLimit))
		return "", fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}

	var data struct {
		SessionToken string `json:"sessionToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("failed to decode response: %v", err)
	}

	if data.SessionToken == "" {
		return "", fmt.Errorf("response has no sessionToken")
	}

	return data.SessionToken, nil
}

// basicAuth заголовок Authorization для пары "user:password"
func basicAuth(user, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+password))
}
