// Package spotify fetches track metadata through the client-credentials
// flow of the Spotify Web API.
package spotify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"songboard/internal/constants"
	"songboard/internal/httpclient"
)

type Track struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Artists []Artist `json:"artists"`
	Album   Album    `json:"album"`
}

type Artist struct {
	Name string `json:"name"`
}

type Album struct {
	Name   string  `json:"name"`
	Images []Image `json:"images"`
}

type Image struct {
	URL string `json:"url"`
}

// tokenCache holds the current access token. Refreshes happen under the
// mutex so concurrent callers never trigger a refresh storm.
type tokenCache struct {
	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

type Client struct {
	httpClient   *httpclient.Client
	clientID     string
	clientSecret string
	accountsURL  string
	apiURL       string
	cache        tokenCache
}

func NewClient(clientID, clientSecret string) *Client {
	return &Client{
		httpClient:   httpclient.NewClient(nil),
		clientID:     clientID,
		clientSecret: clientSecret,
		accountsURL:  constants.SpotifyAccountsURL,
		apiURL:       constants.SpotifyAPIURL,
	}
}

// SetEndpoints overrides the Spotify URLs, for tests.
func (c *Client) SetEndpoints(accountsURL, apiURL string) {
	c.accountsURL = strings.TrimSuffix(accountsURL, "/")
	c.apiURL = strings.TrimSuffix(apiURL, "/")
}

// GetTrack fetches metadata for a single track.
func (c *Client) GetTrack(ctx context.Context, trackID string) (*Track, error) {
	var track Track
	u := fmt.Sprintf("%s/tracks/%s", c.apiURL, url.PathEscape(trackID))
	if err := c.getJSON(ctx, u, &track); err != nil {
		return nil, fmt.Errorf("failed to fetch track %s: %w", trackID, err)
	}
	return &track, nil
}

type playlistPage struct {
	Items []playlistItem `json:"items"`
	Next  *string        `json:"next"`
}

type playlistItem struct {
	Track *Track `json:"track"`
}

// GetPlaylistTracks fetches every track in a playlist, following paging
// links. Items without a track (e.g. removed songs) are skipped.
func (c *Client) GetPlaylistTracks(ctx context.Context, playlistID string) ([]Track, error) {
	next := fmt.Sprintf("%s/playlists/%s/tracks?limit=100", c.apiURL, url.PathEscape(playlistID))

	var tracks []Track
	for next != "" {
		var page playlistPage
		if err := c.getJSON(ctx, next, &page); err != nil {
			return nil, fmt.Errorf("failed to fetch playlist %s: %w", playlistID, err)
		}
		for _, item := range page.Items {
			if item.Track == nil || item.Track.ID == "" {
				continue
			}
			tracks = append(tracks, *item.Track)
		}
		if page.Next == nil {
			break
		}
		next = *page.Next
	}
	return tracks, nil
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("spotify returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// accessToken returns a valid token, refreshing it when it is within the
// expiry leeway.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.cache.mu.Lock()
	defer c.cache.mu.Unlock()

	if c.cache.token != "" && time.Now().Before(c.cache.expiresAt.Add(-constants.TokenExpiryLeeway)) {
		return c.cache.token, nil
	}

	body := strings.NewReader("grant_type=client_credentials")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.accountsURL, body)
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader("grant_type=client_credentials")), nil
	}
	basic := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Basic "+basic)

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned an empty token")
	}

	c.cache.token = tokenResp.AccessToken
	c.cache.expiresAt = time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
	return c.cache.token, nil
}
