package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sentinelai/sentinel-cli/internal/common"
	"github.com/sentinelai/sentinel-cli/internal/client/models"
)

// TokenSource yields the current bearer token, or "" when no session
// exists. The client never inspects the token beyond inserting it into the
// Authorization header.
type TokenSource func(ctx context.Context) string

// DefaultPipelineTimeout bounds the synchronous detection run triggered by
// RunPipeline. Every other call relies on the transport default.
const DefaultPipelineTimeout = 120 * time.Second

// HTTPClient is the production Client implementation over net/http.
type HTTPClient struct {
	baseURL         string
	http            *http.Client
	tokens          TokenSource
	pipelineTimeout time.Duration
}

type Option func(*HTTPClient)

// WithHTTPClient substitutes the underlying transport (used in tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *HTTPClient) { c.http = h }
}

// WithPipelineTimeout overrides the RunPipeline deadline.
func WithPipelineTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.pipelineTimeout = d }
}

// NewHTTPClient builds a client for the given API base URL. tokens may be
// nil for a purely unauthenticated client.
func NewHTTPClient(baseURL string, tokens TokenSource, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:         strings.TrimRight(baseURL, "/"),
		http:            &http.Client{},
		tokens:          tokens,
		pipelineTimeout: DefaultPipelineTimeout,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BuildAuthHeaders constructs the header set for an authenticated request.
// The Authorization header is always present, even with an empty token
// ("Bearer "); rejecting that is the server's job. Content-Type is JSON
// unless the request is a multipart upload, which sets its own boundary.
func BuildAuthHeaders(token string, upload bool) http.Header {
	h := http.Header{}
	h.Set(common.AuthorizationHeaderName, "Bearer "+token)
	if !upload {
		h.Set("Content-Type", "application/json")
	}
	return h
}

func (c *HTTPClient) token(ctx context.Context) string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens(ctx)
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body io.Reader, upload bool) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header = BuildAuthHeaders(c.token(ctx), upload)
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	return req, nil
}

// do sends a JSON request and returns the raw response body after status
// mapping. in may be nil for body-less requests.
func (c *HTTPClient) do(ctx context.Context, method, path string, in any) ([]byte, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := c.newRequest(ctx, method, path, body, false)
	if err != nil {
		return nil, err
	}
	return c.send(req)
}

func (c *HTTPClient) send(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("request timed out: %w", ErrUnavailable)
		}
		return nil, fmt.Errorf("%v: %w", err, ErrUnavailable)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", ErrUnavailable)
	}

	if err := statusError(resp.StatusCode, data); err != nil {
		return nil, err
	}
	return data, nil
}

// statusError maps an HTTP status to the package's error taxonomy.
func statusError(status int, body []byte) error {
	switch {
	case status < 400:
		return nil
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	case status == http.StatusNotFound:
		return ErrNotFound
	default:
		return &Error{Status: status, Detail: errorDetail(body)}
	}
}

// errorDetail extracts the server's "detail" field, the FastAPI error
// envelope, tolerating both string and structured values.
func errorDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil {
		return s
	}
	return string(envelope.Detail)
}

// upload sends a multipart request with a single file field plus optional
// query parameters.
func (c *HTTPClient) upload(ctx context.Context, path string, query url.Values, filename string, data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("write form file: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	if len(query) > 0 {
		path = path + "?" + query.Encode()
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, &buf, true)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.send(req)
}

func decodeObject[T any](data []byte) (*T, error) {
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (c *HTTPClient) Signup(ctx context.Context, req SignupRequest) (*models.Profile, error) {
	data, err := c.do(ctx, http.MethodPost, "/users/signup", req)
	if err != nil {
		return nil, err
	}
	return decodeObject[models.Profile](data)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	payload := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{email, password}

	data, err := c.do(ctx, http.MethodPost, "/users/login", payload)
	if err != nil {
		return "", err
	}
	tok, err := decodeObject[tokenResponse](data)
	if err != nil {
		return "", err
	}
	return tok.AccessToken, nil
}

func (c *HTTPClient) GoogleLogin(ctx context.Context, idToken string) (string, error) {
	payload := struct {
		IDToken string `json:"id_token"`
	}{idToken}

	data, err := c.do(ctx, http.MethodPost, "/users/google-login", payload)
	if err != nil {
		return "", err
	}
	tok, err := decodeObject[tokenResponse](data)
	if err != nil {
		return "", err
	}
	return tok.AccessToken, nil
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, email string) error {
	payload := struct {
		Email string `json:"email"`
	}{email}
	_, err := c.do(ctx, http.MethodPost, "/users/forgot-password", payload)
	return err
}

func (c *HTTPClient) ResetPassword(ctx context.Context, token, newPassword string) error {
	payload := struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}{token, newPassword}
	_, err := c.do(ctx, http.MethodPost, "/users/reset-password", payload)
	return err
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/users/logout", nil)
	return err
}

func (c *HTTPClient) Me(ctx context.Context) (*models.Profile, error) {
	data, err := c.do(ctx, http.MethodGet, "/users/me", nil)
	if err != nil {
		return nil, err
	}
	return decodeObject[models.Profile](data)
}

func (c *HTTPClient) UpdateMe(ctx context.Context, upd ProfileUpdate) (*models.Profile, error) {
	data, err := c.do(ctx, http.MethodPatch, "/users/me", upd)
	if err != nil {
		return nil, err
	}
	return decodeObject[models.Profile](data)
}

func (c *HTTPClient) UploadAvatar(ctx context.Context, filename string, data []byte) (*models.Profile, error) {
	resp, err := c.upload(ctx, "/users/upload-avatar", nil, filename, data)
	if err != nil {
		return nil, err
	}
	return decodeObject[models.Profile](resp)
}

func (c *HTTPClient) DeleteAvatar(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodDelete, "/users/delete-avatar", nil)
	return err
}

func (c *HTTPClient) ChangePassword(ctx context.Context, current, updated string) error {
	payload := struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}{current, updated}
	_, err := c.do(ctx, http.MethodPost, "/users/change-password", payload)
	return err
}

func (c *HTTPClient) MyImages(ctx context.Context) ([]models.Image, error) {
	data, err := c.do(ctx, http.MethodGet, "/ip/my-images", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Image](data, "images")
}

// RunPipeline uploads an image and runs detection synchronously. The server
// holds the request open for the whole run, so this call carries its own
// long deadline instead of the transport default.
func (c *HTTPClient) RunPipeline(ctx context.Context, keyword, filename string, data []byte) (*PipelineResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.pipelineTimeout)
	defer cancel()

	query := url.Values{"keyword": {keyword}}
	resp, err := c.upload(ctx, "/ip/run-pipeline", query, filename, data)
	if err != nil {
		return nil, err
	}
	return decodeObject[PipelineResult](resp)
}

func (c *HTTPClient) Matches(ctx context.Context, imageID int64) ([]models.Match, error) {
	data, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/ip/matches/%d", imageID), nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Match](data, "matches")
}

func (c *HTTPClient) ConfirmMatch(ctx context.Context, matchID int64, confirmed bool) error {
	payload := struct {
		UserConfirmed bool `json:"user_confirmed"`
	}{confirmed}
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/ip/confirm-match/%d", matchID), payload)
	return err
}

func (c *HTTPClient) MatchHistory(ctx context.Context) ([]models.Match, error) {
	data, err := c.do(ctx, http.MethodGet, "/ip/match-history", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Match](data, "matches", "history")
}

func (c *HTTPClient) Reports(ctx context.Context) ([]models.Report, error) {
	data, err := c.do(ctx, http.MethodGet, "/ip/dmca/reports", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Report](data, "reports")
}

func (c *HTTPClient) DownloadReport(ctx context.Context, id int64) ([]byte, error) {
	return c.do(ctx, http.MethodGet, fmt.Sprintf("/ip/dmca/report/%d/download", id), nil)
}

func (c *HTTPClient) SendReportEmail(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/ip/dmca/report/%d/send-email", id), nil)
	return err
}

func (c *HTTPClient) Notifications(ctx context.Context) ([]models.Notification, error) {
	data, err := c.do(ctx, http.MethodGet, "/notifications", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Notification](data, "notifications")
}

var _ Client = (*HTTPClient)(nil)
