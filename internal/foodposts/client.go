package foodposts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const basePath = "/api/food-posts"

// sessionCookie is the cookie name the platform issues at login. The value is
// opaque to this client and is attached to every request.
const sessionCookie = "token"

type Client struct {
	baseURL string
	session string
	http    *http.Client
	logger  *slog.Logger
}

func NewClient(baseURL, session string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: session,
		http:    httpClient,
		logger:  logger,
	}
}

type listEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

type statusEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// List fetches the listings owned by the session's donor.
func (c *Client) List(ctx context.Context) ([]Listing, error) {
	req, err := c.newRequest(ctx, http.MethodGet, basePath, nil, "")
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list food posts request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.httpError(resp)
	}

	var envelope listEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, c.protocolError("list", "malformed envelope: "+err.Error())
	}
	if !envelope.Success {
		return nil, c.protocolError("list", "envelope success flag is false")
	}
	var listings []Listing
	if err := json.Unmarshal(envelope.Data, &listings); err != nil {
		return nil, c.protocolError("list", "envelope data is not a listing sequence")
	}
	return listings, nil
}

// Create submits an encoded multipart payload. The server assigns the
// identifier and is authoritative on the stored record.
func (c *Client) Create(ctx context.Context, payload *CreatePayload) (Listing, error) {
	req, err := c.newRequest(ctx, http.MethodPost, basePath, bytes.NewReader(payload.Body), payload.ContentType)
	if err != nil {
		return Listing{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Listing{}, fmt.Errorf("create food post request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Listing{}, c.httpError(resp)
	}

	var created Listing
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return Listing{}, c.protocolError("create", "created listing is malformed: "+err.Error())
	}
	return created, nil
}

// Remove deletes a listing by identifier. A 2xx response still fails when the
// envelope reports success=false.
func (c *Client) Remove(ctx context.Context, id string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, basePath+"/"+url.PathEscape(id), nil, "")
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("delete food post request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.httpError(resp)
	}

	var envelope statusEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return c.protocolError("delete", "malformed envelope: "+err.Error())
	}
	if !envelope.Success {
		reason := "envelope success flag is false"
		if envelope.Message != "" {
			reason += ": " + envelope.Message
		}
		return c.protocolError("delete", reason)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: c.session})
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

func (c *Client) httpError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var envelope statusEnvelope
	message := ""
	if err := json.Unmarshal(body, &envelope); err == nil {
		message = envelope.Message
	}
	if message == "" {
		message = strings.TrimSpace(string(body))
	}
	return &HTTPError{Status: resp.StatusCode, Message: message}
}

func (c *Client) protocolError(op, reason string) error {
	c.logger.Warn("food posts API contract violation", "op", op, "reason", reason)
	return &ProtocolError{Reason: reason}
}
