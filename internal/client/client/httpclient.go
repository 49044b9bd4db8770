package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/google/uuid"
)

const (
	pathSendOTP     = "/api/auth/send-otp"
	pathVerifyOTP   = "/api/auth/verify-otp"
	pathGoogleLogin = "/api/auth/google"
	pathNotes       = "/api/notes"
)

// maxErrorBody caps how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient returns a client for the API rooted at baseURL
// (e.g. "http://localhost:5000"). A non-positive timeout leaves requests
// bounded only by their context.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	c := &http.Client{}
	if timeout > 0 {
		c.Timeout = timeout
	}
	return &HTTPClient{baseURL: strings.TrimRight(baseURL, "/"), http: c}, nil
}

type sendOTPRequest struct {
	Email string `json:"email"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type verifyOTPResponse struct {
	Token string `json:"token"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func (c *HTTPClient) SendOTP(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, pathSendOTP, "", sendOTPRequest{Email: email}, nil)
}

// VerifyOTP exchanges the email/OTP pair for a session token.
func (c *HTTPClient) VerifyOTP(ctx context.Context, email, otp string) (string, error) {
	var resp verifyOTPResponse
	if err := c.do(ctx, http.MethodPost, pathVerifyOTP, "", verifyOTPRequest{Email: email, OTP: otp}, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("verify otp: %w", common.ErrInvalidToken)
	}
	return resp.Token, nil
}

// GoogleLoginURL is where the user's browser must go to start the external
// identity-provider round trip.
func (c *HTTPClient) GoogleLoginURL() string {
	return c.baseURL + pathGoogleLogin
}

func (c *HTTPClient) ListNotes(ctx context.Context, token string) ([]models.Note, error) {
	notes := make([]models.Note, 0)
	if err := c.do(ctx, http.MethodGet, pathNotes, token, nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *HTTPClient) CreateNote(ctx context.Context, token string, in models.NoteInput) error {
	return c.do(ctx, http.MethodPost, pathNotes, token, in, nil)
}

func (c *HTTPClient) UpdateNote(ctx context.Context, token, id string, in models.NoteInput) error {
	return c.do(ctx, http.MethodPut, pathNotes+"/"+url.PathEscape(id), token, in, nil)
}

func (c *HTTPClient) DeleteNote(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, pathNotes+"/"+url.PathEscape(id), token, nil, nil)
}

// do sends one JSON request. out, when non-nil, receives the decoded 2xx
// body; a 2xx with an empty body leaves out untouched.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.mapError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeStatusError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeStatusError(resp *http.Response) error {
	se := &StatusError{Code: resp.StatusCode}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var er errorResponse
	if json.Unmarshal(b, &er) == nil {
		se.Message = er.Message
	}
	return se
}

func (c *HTTPClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
