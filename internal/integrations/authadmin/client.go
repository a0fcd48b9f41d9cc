package authadmin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/terapiemd/booking-service/internal/domain"
)

// Client reads accounts from the hosted auth admin API
type Client struct {
	baseURL        string
	serviceRoleKey string
	httpClient     *http.Client
	log            Logger
}

// NewClient creates a new auth admin client
func NewClient(baseURL, serviceRoleKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		serviceRoleKey: serviceRoleKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetUser fetches an account by id
func (c *Client) GetUser(ctx context.Context, userID uuid.UUID) (*User, error) {
	url := fmt.Sprintf("%s/auth/v1/admin/users/%s", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.serviceRoleKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceRoleKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrUserNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("%w: service role key rejected (status %d)", ErrInternal, resp.StatusCode)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	// some deployments wrap the account in {"user": {...}}
	if user.ID == "" && user.Wrapped != nil {
		user = *user.Wrapped
	}

	return &user, nil
}

// GetContact resolves the e-mail address and display name of an account
func (c *Client) GetContact(ctx context.Context, userID uuid.UUID) (*domain.Contact, error) {
	user, err := c.GetUser(ctx, userID)
	if err != nil {
		c.log.Warn("authadmin: failed to fetch user %s: %v", userID, err)
		return nil, err
	}

	return &domain.Contact{
		UserID: userID,
		Email:  user.Email,
		Name:   user.DisplayName(),
	}, nil
}
