// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"farmacia/cli/internal/backend"
	"farmacia/cli/internal/cart"
	"farmacia/cli/internal/model"
)

var (
	addQuantity int
	clearYes    bool
)

// cartCmd shows the cart; its subcommands change it.
var cartCmd = &cobra.Command{
	Use:     "cart",
	Aliases: []string{"carrito"},
	Short:   "Show and manage your shopping cart",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCart(cmd, func(a *app, c *cart.Cart) error {
			items, totals, err := c.Items(cmd.Context())
			if err != nil {
				return a.requestFailed(cmd.Context(), err, "loading your cart")
			}
			return renderCart(items, totals)
		})
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add a product to the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		productID, err := parseID(args[0], "product id")
		if err != nil {
			return err
		}
		return withCart(cmd, func(a *app, c *cart.Cart) error {
			item, err := c.Add(cmd.Context(), productID, addQuantity)
			if errors.Is(err, model.ErrValidation) {
				return err
			}
			if err != nil {
				return a.requestFailed(cmd.Context(), err, "adding to your cart")
			}
			pterm.Success.Printf("Added %d × %s to your cart\n", item.Quantity, productName(item))
			return nil
		})
	},
}

var cartUpdateCmd = &cobra.Command{
	Use:   "update <item-id> <quantity>",
	Short: "Change the quantity of a cart line (0 removes it)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID, err := parseID(args[0], "item id")
		if err != nil {
			return err
		}
		qty, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[1])
		}
		return withCart(cmd, func(a *app, c *cart.Cart) error {
			item, err := c.SetQuantity(cmd.Context(), itemID, qty)
			if err != nil {
				return cartItemFailed(cmd, a, err, itemID, "updating your cart")
			}
			if item == nil {
				pterm.Success.Printf("Removed item %d from your cart\n", itemID)
				return nil
			}
			pterm.Success.Printf("%s now × %d\n", productName(item), item.Quantity)
			return nil
		})
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:     "remove <item-id>",
	Aliases: []string{"rm"},
	Short:   "Remove a line from the cart",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID, err := parseID(args[0], "item id")
		if err != nil {
			return err
		}
		return withCart(cmd, func(a *app, c *cart.Cart) error {
			if err := c.Remove(cmd.Context(), itemID); err != nil {
				return cartItemFailed(cmd, a, err, itemID, "removing from your cart")
			}
			pterm.Success.Printf("Removed item %d from your cart\n", itemID)
			return nil
		})
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, err := confirm(os.Stdin, clearYes, "Remove every item from your cart?")
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		return withCart(cmd, func(a *app, c *cart.Cart) error {
			if err := c.Clear(cmd.Context()); err != nil {
				return a.requestFailed(cmd.Context(), err, "emptying your cart")
			}
			pterm.Success.Println("Your cart is empty")
			return nil
		})
	},
}

var cartCheckoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Place an order with the cart contents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCart(cmd, func(a *app, c *cart.Cart) error {
			var (
				order  *model.Order
				totals cart.Totals
			)
			err := spin(cmd.OutOrStdout(), "Placing your order", func() error {
				var cerr error
				order, totals, cerr = c.Checkout(cmd.Context())
				return cerr
			})
			if errors.Is(err, cart.ErrEmptyCart) {
				pterm.Info.Println("Your cart is empty. Add products with 'farmacia cart add <product-id>'.")
				return nil
			}
			if err != nil {
				return a.requestFailed(cmd.Context(), err, "placing your order")
			}
			total := order.Total
			if total == 0 {
				total = totals.Total
			}
			pterm.Success.Printf("Order #%d created. Total: %s\n", order.ID, formatPrice(total))
			return nil
		})
	},
}

func init() {
	cartAddCmd.Flags().IntVarP(&addQuantity, "quantity", "n", 1, "Number of units")
	cartClearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "Do not ask for confirmation")
	cartCmd.AddCommand(cartAddCmd, cartUpdateCmd, cartRemoveCmd, cartClearCmd, cartCheckoutCmd)
	rootCmd.AddCommand(cartCmd)
}

// withCart runs fn with a signed-in session and a cart client.
func withCart(cmd *cobra.Command, fn func(a *app, c *cart.Cart) error) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.requireSession(); err != nil {
		return err
	}
	return fn(a, cart.New(a.api))
}

// cartItemFailed explains a failed change to one cart line.
func cartItemFailed(cmd *cobra.Command, a *app, err error, itemID int, action string) error {
	if errors.Is(err, backend.ErrNotFound) {
		pterm.Error.Printf("Item %d is not in your cart. Run 'farmacia cart' to see the item ids.\n", itemID)
		return err
	}
	return a.requestFailed(cmd.Context(), err, action)
}

func renderCart(items []model.CartItem, totals cart.Totals) error {
	if len(items) == 0 {
		pterm.Info.Println("Your cart is empty")
		return nil
	}
	rows := pterm.TableData{{"Item", "Product", "Brand", "Unit price", "Qty", "Line total"}}
	for _, it := range items {
		rows = append(rows, []string{
			strconv.Itoa(it.ID),
			it.Product.Name,
			it.Product.Brand.Name,
			formatPrice(it.Product.Price),
			strconv.Itoa(it.Quantity),
			formatPrice(cart.LineTotal(it)),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
		return err
	}

	shipping := formatPrice(totals.Shipping)
	if totals.Shipping == 0 {
		shipping = "free"
	}
	pterm.Println()
	pterm.Printf("Subtotal  %s\n", formatPrice(totals.Subtotal))
	pterm.Printf("Shipping  %s\n", shipping)
	pterm.Printf("Discount -%s\n", formatPrice(totals.Discount))
	pterm.Printf("Total     %s\n", pterm.Bold.Sprint(formatPrice(totals.Total)))
	if totals.Shipping > 0 {
		pterm.Info.Printf("Free shipping on orders over %s\n", formatPrice(cart.FreeShippingOver))
	}
	return nil
}

func productName(it *model.CartItem) string {
	if it.Product.Name != "" {
		return it.Product.Name
	}
	return "product #" + strconv.Itoa(it.Product.ID)
}

func parseID(s, what string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", what, s)
	}
	return id, nil
}
