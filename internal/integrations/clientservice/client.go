package clientservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client calls ClientService for pet records
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient creates a ClientService client
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetPet fetches a client's pet by id
func (c *Client) GetPet(ctx context.Context, clientID, petID int64) (*Pet, error) {
	url := fmt.Sprintf("%s/internal/clients/%d/pets/%d", c.baseURL, clientID, petID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fallthrough to decoding
	case http.StatusNotFound:
		return nil, ErrPetNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var pet Pet
	if err := json.NewDecoder(resp.Body).Decode(&pet); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &pet, nil
}

// GetPetWithGracefulDegradation fetches the pet but converts transport-level
// failures into ErrServiceDegraded. A missing pet stays a hard error (the
// booking references it); an unreachable ClientService only costs the
// denormalized pet name.
func (c *Client) GetPetWithGracefulDegradation(ctx context.Context, clientID, petID int64) (*Pet, error) {
	pet, err := c.GetPet(ctx, clientID, petID)
	if err != nil {
		if errors.Is(err, ErrPetNotFound) {
			c.log.Warn("Pet id=%d not found for client id=%d", petID, clientID)
			return nil, err
		}

		c.log.Error("ClientService unavailable, applying graceful degradation for client=%d pet=%d: %v", clientID, petID, err)
		return nil, fmt.Errorf("%w: client=%d pet=%d: %v", ErrServiceDegraded, clientID, petID, err)
	}

	return pet, nil
}
