// Package backend is the HTTP client of the marketplace order backend.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/and161185/kaspi-console/internal/auth"
	"github.com/and161185/kaspi-console/internal/errs"
	"github.com/and161185/kaspi-console/internal/model"
)

const defaultTimeout = 60 * time.Second

var tabPaths = map[model.Tab]string{
	model.TabCurrent:   "orders",
	model.TabArchive:   "orders/archive",
	model.TabPreOrders: "orders/pre-orders",
	model.TabReturned:  "orders/returned",
}

// Client calls the backend on behalf of the operator whose token is in the
// request context, or with the service token when there is none.
type Client struct {
	baseURL      string
	serviceToken string
	http         *http.Client
}

func NewClient(baseURL, serviceToken string) *Client {
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		serviceToken: serviceToken,
		http:         &http.Client{Timeout: defaultTimeout},
	}
}

func (c *Client) token(ctx context.Context) string {
	if token := auth.TokenFromContext(ctx); token != "" {
		return token
	}
	return c.serviceToken
}

func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *Client) send(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %v: %w", req.Method, req.URL.Path, err, errs.ErrBackend)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		resp.Body.Close()
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, errs.ErrUnauthorized)
	case resp.StatusCode >= 300:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, fmt.Errorf("%s %s: unexpected status code %d: %s: %w",
			req.Method, req.URL.Path, resp.StatusCode, bytes.TrimSpace(msg), errs.ErrBackend)
	}
	return resp, nil
}

// do sends a JSON request and decodes the JSON answer into out when out is not nil.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %v: %w", path, err, errs.ErrBackend)
	}
	return nil
}

func (c *Client) Login(ctx context.Context, creds model.Credentials) (model.LoginResponse, error) {
	var out model.LoginResponse
	err := c.do(ctx, http.MethodPost, "auth/login", creds, &out)
	return out, err
}

func (c *Client) Orders(ctx context.Context, tab model.Tab) (model.OrdersResponse, error) {
	path, ok := tabPaths[tab]
	if !ok {
		return model.OrdersResponse{}, fmt.Errorf("unknown orders tab %q", tab)
	}
	var out model.OrdersResponse
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) UpdateStatus(ctx context.Context, req model.StatusRequest) (model.WaybillResponse, error) {
	var out model.WaybillResponse
	err := c.do(ctx, http.MethodPost, "orders/status", req, &out)
	return out, err
}

func (c *Client) UpdateStatusWithWaybill(ctx context.Context, req model.WaybillRequest) (model.WaybillResponse, error) {
	var out model.WaybillResponse
	err := c.do(ctx, http.MethodPost, "orders/status-with-waybill", req, &out)
	return out, err
}

// GenerateSelfDeliveryWaybill downloads the generated document as is.
func (c *Client) GenerateSelfDeliveryWaybill(ctx context.Context, orderID string) (model.Document, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "orders/waybill/"+url.PathEscape(orderID), nil)
	if err != nil {
		return model.Document{}, err
	}

	resp, err := c.send(req)
	if err != nil {
		return model.Document{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Document{}, fmt.Errorf("read waybill of order %s: %v: %w", orderID, err, errs.ErrBackend)
	}
	return model.Document{ContentType: resp.Header.Get("Content-Type"), Body: body}, nil
}

func (c *Client) UpdateCustomStatus(ctx context.Context, orderID string, status model.Status) (model.Status, error) {
	var out model.CustomStatusResponse
	path := fmt.Sprintf("orders/%s/custom-status", url.PathEscape(orderID))
	if err := c.do(ctx, http.MethodPatch, path, model.CustomStatusRequest{Status: status}, &out); err != nil {
		return "", err
	}
	return out.CustomStatus, nil
}

func (c *Client) SendSecurityCode(ctx context.Context, req model.SecurityCodeRequest) error {
	return c.do(ctx, http.MethodPost, "orders/send-code", req, nil)
}

func (c *Client) CompleteOrder(ctx context.Context, req model.CompleteOrderRequest) (model.CompletedOrder, error) {
	var out model.CompletedOrder
	err := c.do(ctx, http.MethodPost, "orders/complete", req, &out)
	return out, err
}

func commentsPath(orderID string) string {
	return fmt.Sprintf("orders/%s/comments", url.PathEscape(orderID))
}

func (c *Client) AddComment(ctx context.Context, orderID, text string) (model.Comment, error) {
	var out model.Comment
	err := c.do(ctx, http.MethodPost, commentsPath(orderID), model.AddCommentRequest{Text: text}, &out)
	return out, err
}

func (c *Client) Comments(ctx context.Context, orderID string) ([]model.Comment, error) {
	var out model.CommentsResponse
	if err := c.do(ctx, http.MethodGet, commentsPath(orderID), nil, &out); err != nil {
		return nil, err
	}
	return out.Comments, nil
}

func (c *Client) UnreadCommentsCount(ctx context.Context, orderID string) (int, error) {
	var out int
	err := c.do(ctx, http.MethodGet, commentsPath(orderID)+"/unread-count", nil, &out)
	return out, err
}

func (c *Client) MarkCommentsRead(ctx context.Context, orderID string) error {
	return c.do(ctx, http.MethodPost, commentsPath(orderID)+"/mark-read", nil, nil)
}

func (c *Client) Stores(ctx context.Context) ([]model.Store, error) {
	var out []model.Store
	err := c.do(ctx, http.MethodGet, "stores", nil, &out)
	return out, err
}

func (c *Client) AddStore(ctx context.Context, req model.CreateStoreRequest) (model.Store, error) {
	var out model.Store
	err := c.do(ctx, http.MethodPost, "stores", req, &out)
	return out, err
}

func (c *Client) DeleteStore(ctx context.Context, storeID string) error {
	return c.do(ctx, http.MethodDelete, "stores/"+url.PathEscape(storeID), nil, nil)
}

func (c *Client) CreateUser(ctx context.Context, req model.CreateUserRequest) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodPost, "admin/create-user", req, &out)
	return out, err
}

func (c *Client) Users(ctx context.Context) ([]model.User, error) {
	var out []model.User
	err := c.do(ctx, http.MethodGet, "admin/users", nil, &out)
	return out, err
}

func (c *Client) UpdateAllowedStatuses(ctx context.Context, req model.UpdateAllowedStatusesRequest) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodPatch, "admin/update-allowed-statuses", req, &out)
	return out, err
}

func (c *Client) UpdateAllowedCities(ctx context.Context, req model.UpdateAllowedCitiesRequest) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodPatch, "admin/update-allowed-cities", req, &out)
	return out, err
}

func (c *Client) UpdateAllowedStores(ctx context.Context, req model.UpdateAllowedStoresRequest) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodPatch, "admin/update-allowed-stores", req, &out)
	return out, err
}
