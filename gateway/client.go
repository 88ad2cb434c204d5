package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"roadwaysledger/logger"
	"roadwaysledger/models"
)

// Client issues the ledger's REST calls. Nothing is retried.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

func New(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout}, log)
}

func NewWithHTTPClient(baseURL string, hc *http.Client, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Discard()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		log:     log,
	}
}

type response struct {
	status int
	body   []byte
}

func (r *response) ok() bool { return r.status >= 200 && r.status < 300 }

// do sends one JSON request. A non-nil error means no response arrived.
func (c *Client) do(ctx context.Context, method, path string, payload any) (*response, error) {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("backend unreachable", "method", method, "path", path, "request_id", reqID, "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	c.log.Debug("backend call", "method", method, "path", path, "status", resp.StatusCode,
		"request_id", reqID, "duration_ms", time.Since(start).Milliseconds())
	return &response{status: resp.StatusCode, body: data}, nil
}

// Login posts credentials and returns the backend's user object.
func (c *Client) Login(ctx context.Context, username, password string) (*models.AppUser, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/login", models.Credentials{Username: username, Password: password})
	if err != nil {
		return nil, networkError("Cannot connect to server. Please check your API URL.", err)
	}
	if !resp.ok() {
		fallback := fmt.Sprintf("Error %d: Failed to process login.", resp.status)
		return nil, &Error{Kind: KindAuth, Status: resp.status, Message: backendMessage(resp.status, resp.body, fallback)}
	}

	var user models.AppUser
	if err := json.Unmarshal(resp.body, &user); err != nil {
		return nil, &Error{Kind: KindAuth, Status: resp.status, Message: "Unexpected login response from server.", Err: err}
	}
	if user.Username == "" {
		user.Username = username
	}
	return &user, nil
}

// CreateUser registers a new operator account.
func (c *Client) CreateUser(ctx context.Context, username, password string) error {
	resp, err := c.do(ctx, http.MethodPost, "/api/users", models.Credentials{Username: username, Password: password})
	if err != nil {
		return networkError("Error connecting to server for user creation.", err)
	}
	if !resp.ok() {
		return &Error{Kind: KindAuth, Status: resp.status, Message: backendMessage(resp.status, resp.body, "Failed to create user.")}
	}
	return nil
}

// ListBilty fetches every record.
func (c *Client) ListBilty(ctx context.Context) ([]models.Bilty, error) {
	const msg = "Error loading data. Check backend URL."
	resp, err := c.do(ctx, http.MethodGet, "/api/bilty", nil)
	if err != nil {
		return nil, &Error{Kind: KindLoad, Message: msg, Err: networkError(msg, err)}
	}
	if !resp.ok() {
		return nil, &Error{Kind: KindLoad, Status: resp.status, Message: msg,
			Err: fmt.Errorf("failed to fetch data: status %d", resp.status)}
	}

	var list []models.Bilty
	if err := json.Unmarshal(resp.body, &list); err != nil {
		return nil, &Error{Kind: KindLoad, Status: resp.status, Message: msg, Err: err}
	}
	if list == nil {
		list = []models.Bilty{}
	}
	return list, nil
}

func (c *Client) CreateBilty(ctx context.Context, draft models.BiltyDraft) (*models.Bilty, error) {
	return c.save(ctx, http.MethodPost, "/api/bilty", draft)
}

func (c *Client) UpdateBilty(ctx context.Context, id int64, draft models.BiltyDraft) (*models.Bilty, error) {
	return c.save(ctx, http.MethodPut, "/api/bilty/"+strconv.FormatInt(id, 10), draft)
}

func (c *Client) save(ctx context.Context, method, path string, draft models.BiltyDraft) (*models.Bilty, error) {
	resp, err := c.do(ctx, method, path, draft)
	if err != nil {
		const msg = "Cannot connect to server. Please check your API URL."
		return nil, &Error{Kind: KindSave, Message: msg, Err: networkError(msg, err)}
	}
	if !resp.ok() {
		return nil, &Error{Kind: KindSave, Status: resp.status, Message: backendMessage(resp.status, resp.body, "Failed to save entry")}
	}

	var saved models.Bilty
	if err := json.Unmarshal(resp.body, &saved); err != nil {
		return nil, &Error{Kind: KindSave, Status: resp.status, Message: "Unexpected response from server.", Err: err}
	}
	if saved.ID == 0 {
		return nil, &Error{Kind: KindSave, Status: resp.status, Message: "Unexpected response from server.",
			Err: fmt.Errorf("saved record has no id")}
	}
	return &saved, nil
}

// DeleteBilty removes a record. The response body is ignored.
func (c *Client) DeleteBilty(ctx context.Context, id int64) error {
	const msg = "Error deleting record."
	resp, err := c.do(ctx, http.MethodDelete, "/api/bilty/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return &Error{Kind: KindDelete, Message: msg, Err: networkError(msg, err)}
	}
	if !resp.ok() {
		return &Error{Kind: KindDelete, Status: resp.status, Message: msg,
			Err: fmt.Errorf("failed to delete record: %s", backendMessage(resp.status, resp.body, "status "+strconv.Itoa(resp.status)))}
	}
	return nil
}

// CompanyProfile returns nil, nil when the backend has none saved.
func (c *Client) CompanyProfile(ctx context.Context) (*models.CompanyProfile, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/initial", nil)
	if err != nil {
		return nil, &Error{Kind: KindLoad, Message: "Cannot load company profile.", Err: networkError("Cannot connect to server.", err)}
	}
	if resp.status == http.StatusNotFound {
		return nil, nil
	}
	if !resp.ok() {
		return nil, &Error{Kind: KindLoad, Status: resp.status, Message: backendMessage(resp.status, resp.body, "Cannot load company profile.")}
	}
	var p models.CompanyProfile
	if err := json.Unmarshal(resp.body, &p); err != nil {
		return nil, &Error{Kind: KindLoad, Status: resp.status, Message: "Cannot load company profile.", Err: err}
	}
	return &p, nil
}
