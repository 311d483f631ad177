// Package client is a small HTTP client for a running lifeclock server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/lazypower/lifeclock/internal/engine"
	"github.com/lazypower/lifeclock/internal/longevity"
	"github.com/lazypower/lifeclock/internal/store"
)

const (
	// DefaultServerURL matches the default bind address of `lifeclock serve`.
	DefaultServerURL = "http://127.0.0.1:3000"
	httpTimeout      = 5 * time.Second
)

// Client talks to the lifeclock server.
type Client struct {
	http      *http.Client
	serverURL string
}

// New creates a client for serverURL. An empty serverURL falls back to
// LIFECLOCK_URL and then DefaultServerURL.
func New(serverURL string) *Client {
	if serverURL == "" {
		serverURL = os.Getenv("LIFECLOCK_URL")
	}
	if serverURL == "" {
		serverURL = DefaultServerURL
	}
	return &Client{
		http:      &http.Client{Timeout: httpTimeout},
		serverURL: strings.TrimRight(serverURL, "/"),
	}
}

// URL returns the server base URL.
func (c *Client) URL() string { return c.serverURL }

// Post sends a POST request with JSON body. Returns response body.
func (c *Client) Post(ctx context.Context, path string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("POST %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

// Get sends a GET request. Returns response body.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serverURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	path := req.URL.Path
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response %s: %w", path, err)
	}
	if resp.StatusCode >= 400 {
		return data, &StatusError{Method: req.Method, Path: path, Code: resp.StatusCode, Message: errorMessage(data)}
	}
	return data, nil
}

// StatusError is returned for 4xx and 5xx responses.
type StatusError struct {
	Method  string
	Path    string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Code, e.Message)
}

func errorMessage(data []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &body) == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(data))
}

// Healthy checks if the server is reachable.
func (c *Client) Healthy(ctx context.Context) bool {
	_, err := c.Get(ctx, "/api/health")
	return err == nil
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	data, err := c.Post(ctx, path, body)
	if err != nil {
		return err
	}
	return decode(path, data, out)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	data, err := c.Get(ctx, path)
	if err != nil {
		return err
	}
	return decode(path, data, out)
}

func decode(path string, data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// NutritionScore asks the server to score foodName.
func (c *Client) NutritionScore(ctx context.Context, foodName string) (int, error) {
	var resp struct {
		Score int `json:"score"`
	}
	err := c.postJSON(ctx, "/api/nutrition-score", map[string]string{"foodName": foodName}, &resp)
	return resp.Score, err
}

// LogFood records a food entry.
func (c *Client) LogFood(ctx context.Context, req engine.FoodRequest) (*store.FoodEntry, error) {
	var e store.FoodEntry
	if err := c.postJSON(ctx, "/api/food-entries", req, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// LogExercise records an exercise entry.
func (c *Client) LogExercise(ctx context.Context, req engine.ExerciseRequest) (*store.ExerciseEntry, error) {
	var e store.ExerciseEntry
	if err := c.postJSON(ctx, "/api/exercise-entries", req, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// LogSleep records a sleep entry.
func (c *Client) LogSleep(ctx context.Context, req engine.SleepRequest) (*store.SleepEntry, error) {
	var e store.SleepEntry
	if err := c.postJSON(ctx, "/api/sleep-entries", req, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// User fetches the profile and longevity state.
func (c *Client) User(ctx context.Context) (engine.UserView, error) {
	var u engine.UserView
	err := c.getJSON(ctx, "/api/user", &u)
	return u, err
}

// Countdown fetches the remaining-time breakdown.
func (c *Client) Countdown(ctx context.Context) (longevity.Countdown, error) {
	var cd longevity.Countdown
	err := c.getJSON(ctx, "/api/user/countdown", &cd)
	return cd, err
}

// TodayFood fetches today's food entries.
func (c *Client) TodayFood(ctx context.Context) ([]store.FoodEntry, error) {
	var entries []store.FoodEntry
	err := c.getJSON(ctx, "/api/food-entries/today", &entries)
	return entries, err
}
