// Package loginsdk is a Go client for the bookshop login service.
//
// The client keeps a cookie jar, so the anonymous session cookie that keys a
// pending second-factor challenge and the signed session cookie issued after
// authentication both flow through subsequent calls automatically:
//
//	client := loginsdk.NewClient("http://localhost:8080")
//	resp, err := client.Login(ctx, "bob", "correct-pw", "")
//	if err != nil {
//		// credentials rejected or transport failure
//	}
//	if resp.Status == loginsdk.StatusSecondFactorRequired {
//		resp, err = client.Verify(ctx, code)
//	}
//
// The same types double as the wire contract for the HTTP handlers.
package loginsdk
