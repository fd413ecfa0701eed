// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"farmacia/cli/internal/model"
)

var productQuery model.ProductQuery

// productsCmd lists catalog products.
var productsCmd = &cobra.Command{
	Use:     "products",
	Aliases: []string{"productos"},
	Short:   "List products in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		var products []model.Product
		err = spin(cmd.OutOrStdout(), "Loading products", func() error {
			var perr error
			products, perr = a.api.Products(cmd.Context(), productQuery)
			return perr
		})
		if err != nil {
			return a.requestFailed(cmd.Context(), err, "loading products")
		}
		if len(products) == 0 {
			pterm.Info.Println("No products match your filters")
			return nil
		}

		rows := pterm.TableData{{"ID", "Product", "Brand", "Category", "Price"}}
		for _, p := range products {
			name := p.Name
			if !p.Active {
				name += " (unavailable)"
			}
			rows = append(rows, []string{strconv.Itoa(p.ID), name, p.Brand.Name, p.Category.Name, formatPrice(p.Price)})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	},
}

// categoriesCmd lists catalog categories.
var categoriesCmd = &cobra.Command{
	Use:     "categories",
	Aliases: []string{"categorias"},
	Short:   "List product categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		cats, err := a.api.Categories(cmd.Context())
		if err != nil {
			return a.requestFailed(cmd.Context(), err, "loading categories")
		}
		rows := pterm.TableData{{"ID", "Category"}}
		for _, c := range cats {
			rows = append(rows, []string{strconv.Itoa(c.ID), c.Name})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	},
}

func init() {
	productsCmd.Flags().StringVarP(&productQuery.Category, "category", "c", "", "Only products in this category")
	productsCmd.Flags().StringVarP(&productQuery.Search, "search", "q", "", "Search text")
	productsCmd.Flags().IntVarP(&productQuery.Limit, "limit", "n", 0, "Maximum number of products")
	rootCmd.AddCommand(productsCmd, categoriesCmd)
}

// formatPrice renders an amount in bolivianos.
func formatPrice(v float64) string {
	return fmt.Sprintf("Bs. %.2f", v)
}
