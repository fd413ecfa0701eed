// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"net/http"
	"strconv"

	"farmacia/cli/internal/model"
)

type quantityBody struct {
	Quantity int `json:"cantidad"`
}

type addBody struct {
	ProductID int `json:"productoId"`
	Quantity  int `json:"cantidad"`
}

func (h *HTTP) cartItemPath(itemID int) string {
	return h.endpoints.Cart + "/" + strconv.Itoa(itemID)
}

// Cart calls GET /api/carrito.
func (h *HTTP) Cart(ctx context.Context) ([]model.CartItem, error) {
	var out []model.CartItem
	if err := h.do(ctx, http.MethodGet, h.endpoints.Cart, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddToCart calls POST /api/carrito.
func (h *HTTP) AddToCart(ctx context.Context, productID, quantity int) (*model.CartItem, error) {
	var out model.CartItem
	if err := h.do(ctx, http.MethodPost, h.endpoints.Cart, addBody{ProductID: productID, Quantity: quantity}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCartItem calls PATCH /api/carrito/{id}.
func (h *HTTP) UpdateCartItem(ctx context.Context, itemID, quantity int) (*model.CartItem, error) {
	var out model.CartItem
	if err := h.do(ctx, http.MethodPatch, h.cartItemPath(itemID), quantityBody{Quantity: quantity}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveCartItem calls DELETE /api/carrito/{id}.
func (h *HTTP) RemoveCartItem(ctx context.Context, itemID int) error {
	return h.do(ctx, http.MethodDelete, h.cartItemPath(itemID), nil, nil)
}

// ClearCart calls DELETE /api/carrito.
func (h *HTTP) ClearCart(ctx context.Context) error {
	return h.do(ctx, http.MethodDelete, h.endpoints.Cart, nil, nil)
}

// Checkout calls POST /api/carrito/checkout and returns the created order.
func (h *HTTP) Checkout(ctx context.Context) (*model.Order, error) {
	var out model.Order
	if err := h.do(ctx, http.MethodPost, h.endpoints.Checkout, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
