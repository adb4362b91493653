package loginsdk

import (
	"context"
	"net/http"
)

// Login attempts a full authentication. code may be empty; accounts with 2FA
// enabled then get StatusSecondFactorRequired back and the pending challenge
// is keyed to this client's session cookie.
//
// A rejected attempt returns *APIError with code "invalid_login"; the server
// never says why.
func (c *Client) Login(ctx context.Context, username, password, code string) (LoginResponse, error) {
	resp, err := c.postJSON(ctx, "/v1/login", LoginRequest{
		Username: username,
		Password: password,
		Code:     code,
	})
	if err != nil {
		return LoginResponse{}, err
	}

	var out LoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return LoginResponse{}, err
	}
	return out, nil
}

// Verify answers the pending second-factor challenge staged by a previous
// Login call on this client.
func (c *Client) Verify(ctx context.Context, code string) (LoginResponse, error) {
	resp, err := c.postJSON(ctx, "/v1/login/verify", VerifyRequest{Code: code})
	if err != nil {
		return LoginResponse{}, err
	}

	var out LoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return LoginResponse{}, err
	}
	return out, nil
}

// Logout drops the session and any pending challenge.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.postJSON(ctx, "/v1/login/logout", nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
