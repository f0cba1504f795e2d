// Package client is the canonical HTTP wrapper for the cart endpoints.
// Historically call sites grew two inconsistent shapes for item updates and
// deletion; every consumer now goes through this one surface.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/FabioFebre/tienda-api/services/cart"
)

// Client talks to the storefront API on behalf of one session token.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

// CartView is the wire form of a cart: its lines plus the server-computed
// total.
type CartView struct {
	Items []cart.Line `json:"items"`
	Total float64     `json:"total"`
}

type AddItemRequest struct {
	ProductID uint   `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// FetchCart returns the cart for the given owner (user id or guest id).
// A user who never carted anything gets an empty view, not an error.
func (c *Client) FetchCart(userID string) (CartView, error) {
	var view CartView
	err := c.do(http.MethodGet, "/carrito/"+userID, nil, &view)
	return view, err
}

// AddItem appends a product/variant to the session's cart.
func (c *Client) AddItem(req AddItemRequest) (cart.Line, error) {
	var line cart.Line
	err := c.do(http.MethodPost, "/carrito/add", req, &line)
	return line, err
}

// UpdateQuantity sets a line's quantity. The server clamps values below 1.
func (c *Client) UpdateQuantity(userID string, itemID uint, quantity int) error {
	path := fmt.Sprintf("/carrito/%s/actualizar/%d", userID, itemID)
	return c.do(http.MethodPut, path, updateQuantityRequest{Quantity: quantity}, nil)
}

// RemoveItem deletes a line and returns the refetched cart, so callers stay
// aligned with server-side recalculation instead of patching a local copy.
func (c *Client) RemoveItem(itemID uint) (CartView, error) {
	var view CartView
	err := c.do(http.MethodDelete, fmt.Sprintf("/carrito/item/%d", itemID), nil, &view)
	return view, err
}

// ClearCart drops every line. Used at successful checkout.
func (c *Client) ClearCart(userID string) error {
	return c.do(http.MethodDelete, "/carrito/clear/"+userID, nil, nil)
}

func (c *Client) do(method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("cart API: %s (status %d)", apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("cart API: unexpected status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
