// Package identity wraps the external identity provider: account creation
// and token verification through the Firebase Admin SDK, password sign-in
// through the Identity Toolkit REST endpoint (the Admin SDK has no
// password-grant API).
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
)

const defaultSignInURL = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

// Sentinel errors for caller-visible identity failures
var (
	ErrEmailInUse       = errors.New("email is already in use")
	ErrWrongCredentials = errors.New("wrong credentials")
)

// Client is the gateway to the identity provider
type Client struct {
	auth       *auth.Client
	apiKey     string
	signInURL  string
	httpClient *http.Client
}

// NewClient creates a new identity Client
func NewClient(authClient *auth.Client, apiKey string) *Client {
	return &Client{
		auth:       authClient,
		apiKey:     apiKey,
		signInURL:  defaultSignInURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// VerifyToken verifies a bearer ID token and returns its decoded claims
func (c *Client) VerifyToken(ctx context.Context, idToken string) (*auth.Token, error) {
	return c.auth.VerifyIDToken(ctx, idToken)
}

// CreateUser registers an email/password account with the identity provider
// and returns its subject id
func (c *Client) CreateUser(ctx context.Context, email, password string) (string, error) {
	params := (&auth.UserToCreate{}).Email(email).Password(password)
	record, err := c.auth.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return "", ErrEmailInUse
		}
		return "", err
	}
	return record.UID, nil
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	IDToken string `json:"idToken"`
	Error   struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SignInWithPassword exchanges email/password credentials for an ID token
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (string, error) {
	body, err := json.Marshal(signInRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return "", err
	}

	url := c.signInURL + "?key=" + c.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	var signIn signInResponse
	if err := json.NewDecoder(res.Body).Decode(&signIn); err != nil {
		return "", fmt.Errorf("decoding sign-in response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		if isCredentialError(signIn.Error.Message) {
			return "", ErrWrongCredentials
		}
		return "", fmt.Errorf("sign-in failed: %s", signIn.Error.Message)
	}
	return signIn.IDToken, nil
}

// isCredentialError reports whether the Identity Toolkit error message means
// the email/password pair was wrong rather than the call itself failing
func isCredentialError(message string) bool {
	switch {
	case strings.HasPrefix(message, "EMAIL_NOT_FOUND"),
		strings.HasPrefix(message, "INVALID_PASSWORD"),
		strings.HasPrefix(message, "INVALID_LOGIN_CREDENTIALS"):
		return true
	}
	return false
}
