// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cart

import (
	"context"
	"errors"
	"fmt"

	"farmacia/cli/internal/backend"
	"farmacia/cli/internal/model"
)

// ErrEmptyCart is returned by Checkout when there is nothing to buy.
var ErrEmptyCart = errors.New("cart is empty")

// Cart applies the storefront's client-side cart rules on top of the REST client.
type Cart struct {
	api backend.Cart
}

// New wraps api.
func New(api backend.Cart) *Cart {
	return &Cart{api: api}
}

// Items returns the cart lines and their totals.
func (c *Cart) Items(ctx context.Context) ([]model.CartItem, Totals, error) {
	items, err := c.api.Cart(ctx)
	if err != nil {
		return nil, Totals{}, err
	}
	return items, Compute(items), nil
}

// Add puts quantity units of a product in the cart.
func (c *Cart) Add(ctx context.Context, productID, quantity int) (*model.CartItem, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", model.ErrValidation)
	}
	return c.api.AddToCart(ctx, productID, quantity)
}

// SetQuantity changes a line's quantity. A quantity below 1 removes the line,
// in which case the returned item is nil.
func (c *Cart) SetQuantity(ctx context.Context, itemID, quantity int) (*model.CartItem, error) {
	if quantity < 1 {
		return nil, c.api.RemoveCartItem(ctx, itemID)
	}
	return c.api.UpdateCartItem(ctx, itemID, quantity)
}

// Remove deletes one line.
func (c *Cart) Remove(ctx context.Context, itemID int) error {
	return c.api.RemoveCartItem(ctx, itemID)
}

// Clear empties the cart.
func (c *Cart) Clear(ctx context.Context) error {
	return c.api.ClearCart(ctx)
}

// Checkout turns the cart into an order. An empty cart is refused without
// calling the checkout endpoint.
func (c *Cart) Checkout(ctx context.Context) (*model.Order, Totals, error) {
	items, totals, err := c.Items(ctx)
	if err != nil {
		return nil, Totals{}, err
	}
	if len(items) == 0 {
		return nil, totals, ErrEmptyCart
	}
	order, err := c.api.Checkout(ctx)
	if err != nil {
		return nil, totals, err
	}
	return order, totals, nil
}
