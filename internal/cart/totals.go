// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cart computes shopping cart totals the way the storefront shows them:
// a flat shipping fee below the free-shipping threshold and a fixed discount.
package cart

import (
	"math"

	"farmacia/cli/internal/model"
)

const (
	// FreeShippingOver is the subtotal above which shipping is free.
	FreeShippingOver = 200.0
	// ShippingFee is charged for non-empty carts at or below the threshold.
	ShippingFee = 15.0
	// Discount is subtracted from every order; the total never goes negative.
	Discount = 15.0
)

// Totals is the price breakdown of a cart.
type Totals struct {
	Items    int
	Units    int
	Subtotal float64
	Shipping float64
	Discount float64
	Total    float64
}

// Compute returns the breakdown for items.
func Compute(items []model.CartItem) Totals {
	var t Totals
	for _, it := range items {
		t.Items++
		t.Units += it.Quantity
		t.Subtotal += it.Product.Price * float64(it.Quantity)
	}
	t.Subtotal = round2(t.Subtotal)

	switch {
	case t.Subtotal > FreeShippingOver:
		t.Shipping = 0
	case len(items) > 0:
		t.Shipping = ShippingFee
	}
	t.Discount = Discount
	t.Total = round2(math.Max(t.Subtotal+t.Shipping-t.Discount, 0))
	return t
}

// LineTotal is the price of one cart line.
func LineTotal(it model.CartItem) float64 {
	return round2(it.Product.Price * float64(it.Quantity))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
