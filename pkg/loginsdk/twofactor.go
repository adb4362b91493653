package loginsdk

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// EnableTwoFactor turns 2FA on for the authenticated account and returns the
// enrolment material. Requires a logged-in client.
func (c *Client) EnableTwoFactor(ctx context.Context) (EnableTwoFactorResponse, error) {
	resp, err := c.postJSON(ctx, "/v1/2fa/enable", nil)
	if err != nil {
		return EnableTwoFactorResponse{}, err
	}

	var out EnableTwoFactorResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return EnableTwoFactorResponse{}, err
	}
	return out, nil
}

// DisableTwoFactor turns 2FA off for the authenticated account.
func (c *Client) DisableTwoFactor(ctx context.Context) error {
	resp, err := c.postJSON(ctx, "/v1/2fa/disable", nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// TwoFactorQR fetches the enrolment QR code as a PNG.
func (c *Client) TwoFactorQR(ctx context.Context) ([]byte, error) {
	resp, err := c.get(ctx, "/v1/2fa/qr")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, parseErrorResponse(resp, body)
	}
	return body, nil
}
