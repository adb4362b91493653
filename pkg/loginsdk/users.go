package loginsdk

import (
	"context"
	"net/http"
)

// Register creates a new account. Anonymous callers always get the CUSTOMER
// role; the Role field is only honoured when the client is logged in as an
// admin.
func (c *Client) Register(ctx context.Context, username, password, role string) (RegisterResponse, error) {
	resp, err := c.postJSON(ctx, "/v1/users", RegisterRequest{
		Username: username,
		Password: password,
		Role:     role,
	})
	if err != nil {
		return RegisterResponse{}, err
	}

	var out RegisterResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return RegisterResponse{}, err
	}
	return out, nil
}

// ChangePassword updates the authenticated account's password.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	resp, err := c.postJSON(ctx, "/v1/users/password", ChangePasswordRequest{
		CurrentPassword: current,
		NewPassword:     next,
	})
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
