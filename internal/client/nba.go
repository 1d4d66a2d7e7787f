package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"nbadb/ingestion/internal/metrics"
)

// TransientError marks a failure worth retrying: network errors and
// retryable HTTP statuses that kept failing after the client's own retries.
// The orchestrator gives games that fail this way one more attempt at the
// end of the batch.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient connectivity failure: %v", e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err is (or wraps) a TransientError.
func IsTransient(err error) bool {
	var t *TransientError
	return errors.As(err, &t)
}

// Client is the stats.nba.com API client.
type Client struct {
	statsBaseURL string
	dataBaseURL  string
	httpClient   *http.Client
	rateLimiter  chan struct{}
	maxRetries   int
	retryDelay   time.Duration
}

// NewClient creates a stats API client. statsBaseURL serves the resultSets
// endpoints; dataBaseURL serves the JSONP player-card endpoint.
func NewClient(statsBaseURL, dataBaseURL string, timeout time.Duration) *Client {
	// Rate limiting semaphore: max 10 in-flight requests.
	rateLimiter := make(chan struct{}, 10)
	for i := 0; i < 10; i++ {
		rateLimiter <- struct{}{}
	}

	return &Client{
		statsBaseURL: statsBaseURL,
		dataBaseURL:  dataBaseURL,
		rateLimiter:  rateLimiter,
		maxRetries:   3,
		retryDelay:   1 * time.Second,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// get performs a GET request with retry logic and rate limiting. The stats
// API rejects requests without browser-looking headers.
func (c *Client) get(ctx context.Context, url, endpoint string) ([]byte, error) {
	start := time.Now()

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 1s, 2s, 4s
			backoff := c.retryDelay * time.Duration(1<<uint(attempt-1))
			log.Info().
				Str("url", url).
				Int("attempt", attempt).
				Dur("backoff", backoff).
				Msg("Retrying API request after backoff")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		body, retryable, err := c.doOnce(ctx, url)
		if err == nil {
			metrics.RecordAPICall(endpoint, "ok", time.Since(start).Seconds())
			return body, nil
		}
		lastErr = err
		if !retryable {
			metrics.RecordAPICall(endpoint, "error", time.Since(start).Seconds())
			return nil, err
		}
		if attempt < c.maxRetries {
			log.Warn().
				Str("url", url).
				Int("attempt", attempt+1).
				Err(err).
				Msg("Retryable API failure, will retry")
		}
	}

	metrics.RecordAPICall(endpoint, "transient", time.Since(start).Seconds())
	return nil, &TransientError{Err: lastErr}
}

// doOnce performs a single attempt. The second return value reports whether
// the failure is retryable.
func (c *Client) doOnce(ctx context.Context, url string) ([]byte, bool, error) {
	// Rate limiting: acquire semaphore.
	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case <-c.rateLimiter:
	}
	defer func() { c.rateLimiter <- struct{}{} }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Referer", "https://www.nba.com/")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	log.Debug().
		Str("url", url).
		Msg("Making API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("failed to read response body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		log.Debug().
			Str("url", url).
			Int("status", resp.StatusCode).
			Int("size", len(body)).
			Msg("API request successful")
		return body, false, nil

	case http.StatusTooManyRequests, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return nil, true, fmt.Errorf("API returned retryable status %d: %s", resp.StatusCode, string(body))

	default:
		return nil, false, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}
}

// getJSON fetches url and unmarshals the body into out.
func (c *Client) getJSON(ctx context.Context, url, endpoint string, out interface{}) error {
	body, err := c.get(ctx, url, endpoint)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s response: %w", endpoint, err)
	}
	return nil
}

// getJSONP fetches a JSONP endpoint, strips the callbackWrapper(...) shell,
// and unmarshals the remaining JSON into out.
func (c *Client) getJSONP(ctx context.Context, url, endpoint string, out interface{}) error {
	body, err := c.get(ctx, url, endpoint)
	if err != nil {
		return err
	}
	raw := strings.TrimSpace(string(body))
	raw = strings.TrimPrefix(raw, "callbackWrapper(")
	raw = strings.TrimSuffix(raw, ");")
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("failed to unmarshal %s response: %w", endpoint, err)
	}
	return nil
}

// ResultSet is one named table inside a stats API response: an ordered
// header list plus a row list of heterogeneous cells.
type ResultSet struct {
	Name    string          `json:"name"`
	Headers []string        `json:"headers"`
	RowSet  [][]interface{} `json:"rowSet"`
}

// StatsResponse is the envelope shared by every stats.nba.com endpoint.
type StatsResponse struct {
	ResultSets []ResultSet `json:"resultSets"`
}

// BoxScoreAdvanced fetches the full box score (basic and advanced tables)
// for one game.
func (c *Client) BoxScoreAdvanced(ctx context.Context, gameID int) (*StatsResponse, error) {
	url := fmt.Sprintf(
		"%s/stats/boxscoreadvanced/?StartPeriod=1&EndPeriod=10&GameID=00%d&RangeType=0&StartRange=0&EndRange=10",
		c.statsBaseURL, gameID,
	)
	var resp StatsResponse
	if err := c.getJSON(ctx, url, "boxscoreadvanced", &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch box score for game %d: %w", gameID, err)
	}
	return &resp, nil
}

// TeamYear is one row of the commonteamyears table.
type TeamYear struct {
	TeamID       *float64
	Abbreviation *string
}

// CommonTeamYears fetches the franchise list for a league.
func (c *Client) CommonTeamYears(ctx context.Context, leagueID string) ([]TeamYear, error) {
	url := fmt.Sprintf("%s/stats/commonteamyears/?LeagueID=%s", c.statsBaseURL, leagueID)
	var resp StatsResponse
	if err := c.getJSON(ctx, url, "commonteamyears", &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch teams: %w", err)
	}
	if len(resp.ResultSets) == 0 {
		return nil, fmt.Errorf("commonteamyears response contains no result sets")
	}

	teams := make([]TeamYear, 0, len(resp.ResultSets[0].RowSet))
	for _, raw := range resp.ResultSets[0].RowSet {
		teams = append(teams, TeamYear{
			TeamID:       cell[float64](raw, 1),
			Abbreviation: cell[string](raw, 4),
		})
	}
	return teams, nil
}

// TeamGameLogEntry is one row of a team's game log. The API reports game
// ids as strings.
type TeamGameLogEntry struct {
	GameID   *string
	GameDate *string
}

// TeamGameLog fetches one team's regular-season game log for a season.
func (c *Client) TeamGameLog(ctx context.Context, teamID int, season string) ([]TeamGameLogEntry, error) {
	url := fmt.Sprintf(
		"%s/stats/teamgamelog?TeamId=%d&Season=%s&SeasonType=Regular+Season",
		c.statsBaseURL, teamID, season,
	)
	var resp StatsResponse
	if err := c.getJSON(ctx, url, "teamgamelog", &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch game log for team %d: %w", teamID, err)
	}
	if len(resp.ResultSets) == 0 {
		return nil, fmt.Errorf("teamgamelog response contains no result sets")
	}

	entries := make([]TeamGameLogEntry, 0, len(resp.ResultSets[0].RowSet))
	for _, raw := range resp.ResultSets[0].RowSet {
		entries = append(entries, TeamGameLogEntry{
			GameID:   cell[string](raw, 1),
			GameDate: cell[string](raw, 2),
		})
	}
	return entries, nil
}

// CommonAllPlayer is one row of the commonallplayers roster table.
type CommonAllPlayer struct {
	PersonID   *float64
	PlayerCode *string
}

// CommonAllPlayers fetches the current-season roster for a league.
func (c *Client) CommonAllPlayers(ctx context.Context, leagueID, season string) ([]CommonAllPlayer, error) {
	url := fmt.Sprintf(
		"%s/stats/commonallplayers/?LeagueID=%s&Season=%s&IsOnlyCurrentSeason=1",
		c.statsBaseURL, leagueID, season,
	)
	var resp StatsResponse
	if err := c.getJSON(ctx, url, "commonallplayers", &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch players: %w", err)
	}
	if len(resp.ResultSets) == 0 {
		return nil, fmt.Errorf("commonallplayers response contains no result sets")
	}

	players := make([]CommonAllPlayer, 0, len(resp.ResultSets[0].RowSet))
	for _, raw := range resp.ResultSets[0].RowSet {
		players = append(players, CommonAllPlayer{
			PersonID:   cell[float64](raw, 0),
			PlayerCode: cell[string](raw, 5),
		})
	}
	return players, nil
}

// PlayerCard is the player metadata served by the JSONP player-card
// endpoint.
type PlayerCard struct {
	SportsContent struct {
		Player struct {
			Meta struct {
				FirstName            string `json:"first_name"`
				LastName             string `json:"last_name"`
				PositionGranularFull string `json:"position_granular_full"`
			} `json:"meta"`
		} `json:"player"`
	} `json:"sports_content"`
}

// PlayerCardByCode fetches a player's JSONP card by player code.
func (c *Client) PlayerCardByCode(ctx context.Context, playerCode string) (*PlayerCard, error) {
	url := fmt.Sprintf("%s/jsonp/5s/json/cms/noseason/players/%s/playercard.json", c.dataBaseURL, playerCode)
	var card PlayerCard
	if err := c.getJSONP(ctx, url, "playercard", &card); err != nil {
		return nil, fmt.Errorf("failed to fetch player card for %s: %w", playerCode, err)
	}
	return &card, nil
}

// PlayerAge fetches a player's age from the profile endpoint. An empty
// profile yields zero rather than an error.
func (c *Client) PlayerAge(ctx context.Context, playerID int) (int, error) {
	url := fmt.Sprintf("%s/stats/playerprofilev2/?PlayerID=%d&PerMode=Totals", c.statsBaseURL, playerID)
	var resp StatsResponse
	if err := c.getJSON(ctx, url, "playerprofile", &resp); err != nil {
		return 0, fmt.Errorf("failed to fetch profile for player %d: %w", playerID, err)
	}
	if len(resp.ResultSets) == 0 || len(resp.ResultSets[0].RowSet) == 0 {
		return 0, nil
	}
	rows := resp.ResultSets[0].RowSet
	age := cell[float64](rows[len(rows)-1], 5)
	if age == nil {
		return 0, nil
	}
	return int(*age), nil
}

// cell returns a typed pointer to row[idx], or nil when the cell is
// missing, null, or of a different type.
func cell[T any](row []interface{}, idx int) *T {
	if idx >= len(row) {
		return nil
	}
	if v, ok := row[idx].(T); ok {
		return &v
	}
	return nil
}
