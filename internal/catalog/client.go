// Package catalog queries the external team/league catalog (TheSportsDB).
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the free public TheSportsDB endpoint.
const DefaultBaseURL = "https://www.thesportsdb.com/api/v1/json/3"

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError is returned for non-2xx provider responses.
type StatusError struct {
	Code int
	Path string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Path, e.Code)
}

// Client talks to the catalog provider. Every method reports failures as errors;
// see Lenient for the empty-on-failure surface.
type Client struct {
	client  HTTPClient
	baseURL string
	timeout time.Duration
}

// New creates a Client. A zero timeout means 10 seconds.
func New(client HTTPClient, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
	}
}

// Search looks teams up by free text.
func (c *Client) Search(ctx context.Context, query string) ([]RawTeam, error) {
	var resp teamsResponse
	if err := c.get(ctx, "searchteams.php", url.Values{"t": {query}}, &resp); err != nil {
		return nil, err
	}
	return resp.Teams, nil
}

// LeagueTeams lists all teams of a league by its exact provider name.
func (c *Client) LeagueTeams(ctx context.Context, league string) ([]RawTeam, error) {
	var resp teamsResponse
	if err := c.get(ctx, "search_all_teams.php", url.Values{"l": {league}}, &resp); err != nil {
		return nil, err
	}
	return resp.Teams, nil
}

// LookupTeam fetches a single team by provider id. It returns nil, nil when
// the provider knows no such team.
func (c *Client) LookupTeam(ctx context.Context, id string) (*RawTeam, error) {
	var resp teamsResponse
	if err := c.get(ctx, "lookupteam.php", url.Values{"id": {id}}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Teams) == 0 {
		return nil, nil
	}
	return &resp.Teams[0], nil
}

// LastEvents returns the most recent finished events of a team.
func (c *Client) LastEvents(ctx context.Context, teamID string) ([]RawEvent, error) {
	var resp eventsResponse
	if err := c.get(ctx, "eventslast.php", url.Values{"id": {teamID}}, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqURL := c.baseURL + "/" + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "FootballFollowBot/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("http get %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Path: path}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 5*1024*1024))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
