package builder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/instantfolio/Backend-Instant-Portfolio/src/models"
)

// Client is the HTTP implementation of PortfolioAPI, talking to the service's
// JSON endpoints with a bearer token.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken installs the bearer token used on authenticated calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

type portfolioEnvelope struct {
	Success   bool              `json:"success"`
	Portfolio *models.Portfolio `json:"portfolio"`
}

type tokenEnvelope struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

func (c *Client) GetPortfolio(ctx context.Context) (*models.Portfolio, error) {
	var env portfolioEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/portfolios/", nil, &env); err != nil {
		return nil, err
	}
	return env.Portfolio, nil
}

func (c *Client) CreatePortfolio(ctx context.Context, patch *models.PortfolioPatch) (*models.Portfolio, error) {
	var env portfolioEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/portfolios/", patch, &env); err != nil {
		return nil, err
	}
	return env.Portfolio, nil
}

func (c *Client) UpdatePortfolio(ctx context.Context, patch *models.PortfolioPatch) (*models.Portfolio, error) {
	var env portfolioEnvelope
	if err := c.do(ctx, http.MethodPut, "/api/portfolios/", patch, &env); err != nil {
		return nil, err
	}
	return env.Portfolio, nil
}

// Register creates an account and installs the returned token.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	body := map[string]string{"name": name, "email": email, "password": password}
	var env tokenEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/users/register", body, &env); err != nil {
		return err
	}
	c.token = env.Token
	return nil
}

// Login authenticates and installs the returned token.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	var env tokenEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/users/login", body, &env); err != nil {
		return err
	}
	c.token = env.Token
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return models.NewInternalError(err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return models.NewInternalError(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return models.NewTransientNetworkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return models.NewInternalError(err)
		}
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var body models.ErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body.Error == "" {
		body.Error = fmt.Sprintf("request failed with status %d", resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusConflict:
		return models.NewConflictError(body.Error)
	case http.StatusNotFound:
		return &models.AppError{Code: models.CodeNotFound, Message: body.Error}
	case http.StatusBadRequest:
		return models.NewValidationError(body.Error)
	case http.StatusUnauthorized:
		return models.NewUnauthorizedError(body.Error)
	default:
		return &models.AppError{Code: models.CodeInternal, Message: body.Error}
	}
}
