// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"farmacia/cli/internal/model"
)

// Products calls GET /api/public/productos with the non-empty filters of q.
func (h *HTTP) Products(ctx context.Context, q model.ProductQuery) ([]model.Product, error) {
	params := url.Values{}
	if q.Category != "" {
		params.Set("categoria", q.Category)
	}
	if q.Search != "" {
		params.Set("q", q.Search)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	path := h.endpoints.Products
	if enc := params.Encode(); enc != "" {
		path += "?" + enc
	}

	var out []model.Product
	if err := h.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Categories calls GET /api/public/categorias.
func (h *HTTP) Categories(ctx context.Context) ([]model.Category, error) {
	var out []model.Category
	if err := h.do(ctx, http.MethodGet, h.endpoints.Categories, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
