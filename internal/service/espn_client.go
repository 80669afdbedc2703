package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	espnDefaultBaseURL = "https://site.api.espn.com/apis/site/v2/sports/football/nfl/scoreboard"
	espnRequestTimeout = 10 * time.Second
	espnMaxRetries     = 3
)

// ESPNScoreboard — сырой ответ scoreboard API. Разбираем только нужные
// поля; формат ESPN нестабилен, поэтому все вложенное опционально.
type ESPNScoreboard struct {
	Events []ESPNEvent `json:"events"`
}

type ESPNEvent struct {
	Date         string            `json:"date"`
	Status       ESPNEventStatus   `json:"status"`
	Competitions []ESPNCompetition `json:"competitions"`
}

type ESPNEventStatus struct {
	Type ESPNStatusType `json:"type"`
}

type ESPNStatusType struct {
	State string `json:"state"`
}

type ESPNCompetition struct {
	Competitors []ESPNCompetitor `json:"competitors"`
}

type ESPNCompetitor struct {
	HomeAway string    `json:"homeAway"`
	Score    ESPNScore `json:"score"`
	Team     ESPNTeam  `json:"team"`
}

type ESPNTeam struct {
	Abbreviation string `json:"abbreviation"`
}

// ESPNScore принимает и число, и строку — ESPN отдает счет строкой,
// но полагаться на это нельзя. Непарсимое значение дает nil.
type ESPNScore struct {
	Value *int
}

func (s *ESPNScore) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		s.Value = nil
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		s.Value = nil
		return nil
	}
	s.Value = &n
	return nil
}

// ESPNClient ходит в публичный scoreboard API ESPN
type ESPNClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewESPNClient создает клиента ESPN. Пустой baseURL — боевой endpoint.
func NewESPNClient(baseURL string) *ESPNClient {
	if baseURL == "" {
		baseURL = espnDefaultBaseURL
	}
	return &ESPNClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: espnRequestTimeout,
		},
	}
}

// FetchScoreboard загружает scoreboard для года и недели.
// 5xx ответы ретраятся с нарастающей задержкой.
func (c *ESPNClient) FetchScoreboard(ctx context.Context, year, week int) (*ESPNScoreboard, error) {
	url := fmt.Sprintf("%s?week=%d&year=%d", c.baseURL, week, year)

	var lastErr error
	for attempt := 0; attempt < espnMaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * 300 * time.Millisecond):
			}
		}

		board, retryable, err := c.fetchOnce(ctx, url)
		if err == nil {
			return board, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
	}
	return nil, fmt.Errorf("espn fetch failed after retries: %w", lastErr)
}

func (c *ESPNClient) fetchOnce(ctx context.Context, url string) (*ESPNScoreboard, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		io.Copy(io.Discard, resp.Body)
		return nil, true, fmt.Errorf("espn returned status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, false, fmt.Errorf("espn returned status %d", resp.StatusCode)
	}

	var board ESPNScoreboard
	if err := json.NewDecoder(resp.Body).Decode(&board); err != nil {
		return nil, false, fmt.Errorf("failed to decode espn response: %w", err)
	}
	return &board, false, nil
}
