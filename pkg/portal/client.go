package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Client is the typed gateway to the telehealth API. Every call either
// returns decoded data or fails with a classified error: NetworkError when
// the server is unreachable, HTTPError for a non-2xx response, ParseError
// for an undecodable body. Callers never inspect a raw success flag.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken installs the bearer token used on authenticated calls.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) authToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// errorBody is the error envelope the server uses on failures.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	op := method + " " + path

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &ParseError{Err: err}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := c.authToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb errorBody
		_ = json.Unmarshal(respBody, &eb)
		msg := eb.Error
		if msg == "" {
			msg = eb.Message
		}
		if msg == "" {
			msg = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return &HTTPError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return &ParseError{Err: err}
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// LoginResult is a successful authentication: the identity plus the bearer
// token for subsequent calls.
type LoginResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Login authenticates and installs the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string, userType UserType) (*LoginResult, error) {
	var res struct {
		Success bool   `json:"success"`
		User    User   `json:"user"`
		Token   string `json:"token"`
	}
	body := map[string]string{"email": email, "password": password, "type": string(userType)}
	if err := c.post(ctx, "/api/auth/login", body, &res); err != nil {
		return nil, err
	}
	c.SetToken(res.Token)
	return &LoginResult{User: res.User, Token: res.Token}, nil
}

func (c *Client) SearchMedicines(ctx context.Context, query string, limit int) ([]Medicine, error) {
	q := url.Values{"q": {query}}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var res struct {
		Medicines []Medicine `json:"medicines"`
	}
	if err := c.get(ctx, "/api/medicines/search", q, &res); err != nil {
		return nil, err
	}
	return res.Medicines, nil
}

func (c *Client) Medicine(ctx context.Context, id int) (*Medicine, error) {
	var res struct {
		Medicine Medicine `json:"medicine"`
	}
	if err := c.get(ctx, "/api/medicines/"+strconv.Itoa(id), nil, &res); err != nil {
		return nil, err
	}
	return &res.Medicine, nil
}

// OrderResult is the server's acknowledgement of a placed order: the stored
// order plus the consultation automatically opened for it.
type OrderResult struct {
	Order        Order        `json:"order"`
	Consultation Consultation `json:"consultation"`
}

func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*OrderResult, error) {
	var res OrderResult
	if err := c.post(ctx, "/api/orders", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Orders(ctx context.Context, userID string) ([]Order, error) {
	var res struct {
		Orders []Order `json:"orders"`
	}
	if err := c.get(ctx, "/api/orders/"+url.PathEscape(userID), nil, &res); err != nil {
		return nil, err
	}
	return res.Orders, nil
}

func (c *Client) UserConsultations(ctx context.Context, userID string) ([]Consultation, error) {
	var res struct {
		Consultations []Consultation `json:"consultations"`
	}
	if err := c.get(ctx, "/api/consultations/"+url.PathEscape(userID), nil, &res); err != nil {
		return nil, err
	}
	return res.Consultations, nil
}

func (c *Client) PendingConsultations(ctx context.Context) ([]Consultation, error) {
	var res struct {
		Consultations []Consultation `json:"consultations"`
	}
	if err := c.get(ctx, "/api/consultations/pending", nil, &res); err != nil {
		return nil, err
	}
	return res.Consultations, nil
}

func (c *Client) UpdateConsultation(ctx context.Context, id int, update ConsultationUpdate) (*Consultation, error) {
	var res struct {
		Consultation Consultation `json:"consultation"`
	}
	if err := c.put(ctx, "/api/consultations/"+strconv.Itoa(id), update, &res); err != nil {
		return nil, err
	}
	return &res.Consultation, nil
}

func (c *Client) Notifications(ctx context.Context, userID string, unreadOnly bool, limit int) (*NotificationList, error) {
	q := url.Values{}
	if unreadOnly {
		q.Set("unread_only", "true")
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var res NotificationList
	if err := c.get(ctx, "/api/notifications/"+url.PathEscape(userID), q, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.put(ctx, "/api/notifications/"+url.PathEscape(id)+"/read", nil, nil)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	return c.put(ctx, "/api/notifications/"+url.PathEscape(userID)+"/mark-all-read", nil, nil)
}

func (c *Client) NearbyShops(ctx context.Context) ([]Shop, error) {
	var res struct {
		Shops []Shop `json:"shops"`
	}
	if err := c.get(ctx, "/api/shops/nearby", nil, &res); err != nil {
		return nil, err
	}
	return res.Shops, nil
}

// AnalyzeSymptoms runs AI triage on the server. language is optional; when
// set, the analysis text comes back translated.
func (c *Client) AnalyzeSymptoms(ctx context.Context, symptoms, followUpAnswers, language string) (*SymptomAnalysis, error) {
	body := map[string]string{"symptoms": symptoms}
	if followUpAnswers != "" {
		body["followUpAnswers"] = followUpAnswers
	}
	if language != "" {
		body["language"] = language
	}
	var res SymptomAnalysis
	if err := c.post(ctx, "/api/chat/analyze", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Health(ctx context.Context) (*Health, error) {
	var res Health
	if err := c.get(ctx, "/api/health", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
