package loginsdk

import (
	"context"
	"net/http"
)

// Livez reports process liveness.
func (c *Client) Livez(ctx context.Context) (HealthResponse, error) {
	resp, err := c.get(ctx, "/livez")
	if err != nil {
		return HealthResponse{}, err
	}

	var out HealthResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return HealthResponse{}, err
	}
	return out, nil
}

// Readyz reports whether the service can reach its database.
func (c *Client) Readyz(ctx context.Context) (HealthResponse, error) {
	resp, err := c.get(ctx, "/readyz")
	if err != nil {
		return HealthResponse{}, err
	}

	var out HealthResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return HealthResponse{}, err
	}
	return out, nil
}
