package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client wraps HTTP calls to the BigFlix server.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new BigFlix API client.
func NewClient(serverURL, token string) *Client {
	return &Client{
		baseURL: serverURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("server error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("server error %d: %s", e.Status, e.Message)
}

func (c *Client) do(method, path string, body any, result any, ok ...int) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal error: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !accepted(resp.StatusCode, ok) {
		return decodeError(resp)
	}
	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

func accepted(code int, ok []int) bool {
	if len(ok) == 0 {
		return code == http.StatusOK
	}
	for _, c := range ok {
		if c == code {
			return true
		}
	}
	return false
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)
	apiErr := &APIError{Status: resp.StatusCode, Message: string(bytes.TrimSpace(raw))}
	var body struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		apiErr.Code = body.Code
		apiErr.Message = body.Error
	}
	return apiErr
}

func (c *Client) get(path string, result any) error {
	return c.do(http.MethodGet, path, nil, result)
}

// API response types (mirror server types)

type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type ItemResponse struct {
	ID                 int64    `json:"id"`
	Kind               string   `json:"kind"`
	Title              string   `json:"title"`
	Year               int      `json:"year"`
	Overview           string   `json:"overview"`
	Status             string   `json:"status"`
	LibraryAvailable   bool     `json:"libraryAvailable"`
	LibraryServerNames []string `json:"libraryServerNames"`
	ManagerStatus      *string  `json:"managerStatus"`
	Tracked            bool     `json:"tracked"`
}

type SearchResponse struct {
	Query        string         `json:"query"`
	Kind         string         `json:"kind"`
	Page         int            `json:"page"`
	TotalPages   int            `json:"totalPages"`
	TotalResults int            `json:"totalResults"`
	Results      []ItemResponse `json:"results"`
}

type RequestResponse struct {
	ID          int64      `json:"id"`
	UserID      string     `json:"userId"`
	ServerID    string     `json:"serverId"`
	TMDBID      int64      `json:"tmdbId"`
	Kind        string     `json:"kind"`
	Title       string     `json:"title"`
	Year        int        `json:"year"`
	Seasons     []int      `json:"seasons"`
	Status      string     `json:"status"`
	ProcessedBy *string    `json:"processedBy"`
	Notes       *string    `json:"notes"`
	CreatedAt   time.Time  `json:"createdAt"`
	ProcessedAt *time.Time `json:"processedAt"`
}

type FulfillmentResponse struct {
	Success       bool   `json:"success"`
	AlreadyExists bool   `json:"alreadyExists"`
	Error         string `json:"error"`
}

type ResultResponse struct {
	Request     RequestResponse      `json:"request"`
	Fulfillment *FulfillmentResponse `json:"fulfillment"`
	Warning     string               `json:"warning"`
}

type CreateRequest struct {
	ItemID   int64  `json:"itemId"`
	Kind     string `json:"kind"`
	ServerID string `json:"serverId,omitempty"`
	Seasons  []int  `json:"seasons,omitempty"`
}

type ServerResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Primary bool   `json:"primary"`
	Radarr  bool   `json:"radarr"`
	Sonarr  bool   `json:"sonarr"`
}

type EventResponse struct {
	ID         int64           `json:"id"`
	Type       string          `json:"type"`
	EntityType string          `json:"entityType"`
	EntityID   int64           `json:"entityId"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload"`
}

// Client methods

func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.get("/api/v1/status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Search(query, kind string, page int) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("query", query)
	if kind != "" {
		params.Set("kind", kind)
	}
	if page > 1 {
		params.Set("page", strconv.Itoa(page))
	}
	var resp SearchResponse
	if err := c.get("/api/v1/search?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Item(kind string, id int64) (*ItemResponse, error) {
	var resp ItemResponse
	if err := c.get(fmt.Sprintf("/api/v1/items/%s/%d", url.PathEscape(kind), id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CreateRequest(req CreateRequest) (*ResultResponse, error) {
	var resp ResultResponse
	if err := c.do(http.MethodPost, "/api/v1/requests", req, &resp, http.StatusOK, http.StatusCreated); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListRequests(status, server string, mine bool) ([]RequestResponse, error) {
	params := url.Values{}
	if status != "" {
		params.Set("status", status)
	}
	if server != "" {
		params.Set("server", server)
	}
	if mine {
		params.Set("mine", "true")
	}
	path := "/api/v1/requests"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	var resp []RequestResponse
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) GetRequest(id int64) (*RequestResponse, error) {
	var resp RequestResponse
	if err := c.get(fmt.Sprintf("/api/v1/requests/%d", id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Approve(id int64) (*ResultResponse, error) {
	var resp ResultResponse
	if err := c.do(http.MethodPost, fmt.Sprintf("/api/v1/requests/%d/approve", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Reject(id int64, notes string) (*RequestResponse, error) {
	var body any
	if notes != "" {
		body = map[string]string{"notes": notes}
	}
	var resp RequestResponse
	if err := c.do(http.MethodPost, fmt.Sprintf("/api/v1/requests/%d/reject", id), body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Cancel(id int64) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/api/v1/requests/%d", id), nil, nil, http.StatusNoContent, http.StatusOK)
}

func (c *Client) RequestEvents(id int64) ([]EventResponse, error) {
	var resp []EventResponse
	if err := c.get(fmt.Sprintf("/api/v1/requests/%d/events", id), &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) Servers() ([]ServerResponse, error) {
	var resp []ServerResponse
	if err := c.get("/api/v1/servers", &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
