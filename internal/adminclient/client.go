package adminclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxErrorBodyExcerpt caps how much of a non-JSON error body is carried
// into the normalized message.
const maxErrorBodyExcerpt = 200

// Service is the wire representation of one catalog entry. The position
// in the listed sequence is the canonical order; there is no order field.
type Service struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PriceString string `json:"price_string"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// ServiceFields carries the mutable fields for create and update calls.
type ServiceFields struct {
	Name        string `json:"name"`
	PriceString string `json:"price_string"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// LoginResult is the payload of a successful login.
type LoginResult struct {
	Token string `json:"token"`
	User  struct {
		Username string `json:"username"`
	} `json:"user"`
}

// Client issues HTTP requests against the catalog API and normalizes
// every failure into an *APIError.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the API at baseURL.
func NewClient(baseURL string, opts ...func(*Client)) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) func(*Client) {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// ListServices fetches the catalog in canonical order. No auth required.
func (c *Client) ListServices(ctx context.Context) ([]Service, error) {
	resp, err := c.do(ctx, http.MethodGet, "/services", nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.normalizeError(resp)
	}

	// The services field must be a JSON array. Anything else is a
	// malformed response, not an empty catalog.
	var body struct {
		Services json.RawMessage `json:"services"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, serverError("unexpected response from server while listing services")
	}
	raw := bytes.TrimSpace(body.Services)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, serverError("unexpected response from server while listing services")
	}

	var services []Service
	if err := json.Unmarshal(raw, &services); err != nil {
		return nil, serverError("unexpected response from server while listing services")
	}
	return services, nil
}

// CreateService adds a service to the end of the catalog order.
func (c *Client) CreateService(ctx context.Context, fields ServiceFields, token string) (*Service, error) {
	resp, err := c.do(ctx, http.MethodPost, "/services", fields, token)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, c.normalizeError(resp)
	}

	var created Service
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, serverError("unexpected response from server while creating service")
	}
	return &created, nil
}

// UpdateService changes a service's fields. The catalog order is untouched.
func (c *Client) UpdateService(ctx context.Context, id string, fields ServiceFields, token string) (*Service, error) {
	resp, err := c.do(ctx, http.MethodPut, "/services/"+id, fields, token)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.normalizeError(resp)
	}

	var updated Service
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		return nil, serverError("unexpected response from server while updating service")
	}
	return &updated, nil
}

// DeleteService removes a service. A 204 no-content response is success,
// same as a JSON body.
func (c *Client) DeleteService(ctx context.Context, id, token string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/services/"+id, nil, token)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return c.normalizeError(resp)
	}
	return nil
}

// ReorderServices persists a new catalog order. orderedIDs must be the
// full permutation of all current ids; the server rejects anything else.
func (c *Client) ReorderServices(ctx context.Context, orderedIDs []string, token string) error {
	body := map[string][]string{"orderedIds": orderedIDs}
	resp, err := c.do(ctx, http.MethodPut, "/services/order", body, token)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.normalizeError(resp)
	}
	return nil
}

// Login exchanges admin credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	body := map[string]string{"username": username, "password": password}
	resp, err := c.do(ctx, http.MethodPost, "/auth/admin/login", body, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.normalizeError(resp)
	}

	var result LoginResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, serverError("unexpected response from server while logging in")
	}
	if result.Token == "" {
		return nil, serverError("login response did not include a token")
	}
	return &result, nil
}

// SubmitBookingRequest sends a booking enquiry. Fire and forget.
func (c *Client) SubmitBookingRequest(ctx context.Context, form BookingForm) error {
	resp, err := c.do(ctx, http.MethodPost, "/booking-request", form, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.normalizeError(resp)
	}
	return nil
}

// SubmitGeneralEnquiry sends a free-form contact enquiry.
func (c *Client) SubmitGeneralEnquiry(ctx context.Context, form EnquiryForm) error {
	resp, err := c.do(ctx, http.MethodPost, "/general-enquiry", form, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.normalizeError(resp)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, token string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, serverError(fmt.Sprintf("failed to encode request: %v", err))
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, serverError(fmt.Sprintf("failed to build request: %v", err))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, serverError(fmt.Sprintf("could not reach the server: %v", err))
	}
	return resp, nil
}

// normalizeError turns a non-success response into an *APIError. It tries
// a JSON error or message field first, then falls back to the HTTP status
// text with a truncated body excerpt.
func (c *Client) normalizeError(resp *http.Response) *APIError {
	kind := kindForStatus(resp.StatusCode)
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	var parsed struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil {
		if parsed.Error != "" {
			return &APIError{Kind: kind, Message: parsed.Error}
		}
		if parsed.Message != "" {
			return &APIError{Kind: kind, Message: parsed.Message}
		}
	}

	message := fmt.Sprintf("HTTP %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	if excerpt := strings.TrimSpace(string(raw)); excerpt != "" {
		if len(excerpt) > maxErrorBodyExcerpt {
			excerpt = excerpt[:maxErrorBodyExcerpt]
		}
		message = fmt.Sprintf("%s: %s", message, excerpt)
	}
	return &APIError{Kind: kind, Message: message}
}
