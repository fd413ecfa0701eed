// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

package model

// Named is the nested {nombre} shape used for brands and categories.
type Named struct {
	Name string `json:"nombre"`
}

// Product is a catalog entry.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"nombre"`
	Description string  `json:"descripcion,omitempty"`
	Price       float64 `json:"precio"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Brand       Named   `json:"marca"`
	Category    Named   `json:"categoria"`
	Active      bool    `json:"activo"`
}

// Category is a catalog category.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"nombre"`
}

// ProductQuery filters the product listing. Zero values are omitted.
type ProductQuery struct {
	Category string
	Search   string
	Limit    int
}

// CartProduct is the product summary embedded in a cart line.
type CartProduct struct {
	ID       int     `json:"id"`
	Name     string  `json:"nombre"`
	Price    float64 `json:"precio"`
	ImageURL string  `json:"imageUrl,omitempty"`
	Brand    Named   `json:"marca"`
}

// CartItem is one line of the shopping cart.
type CartItem struct {
	ID       int         `json:"id"`
	Quantity int         `json:"cantidad"`
	Product  CartProduct `json:"producto"`
}

// Order is the result of a checkout. Only the fields the client uses are typed.
type Order struct {
	ID    int     `json:"id"`
	Total float64 `json:"total"`
}
