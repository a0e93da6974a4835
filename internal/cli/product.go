package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newProductCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Product catalogue commands",
	}

	cmd.AddCommand(newProductListCmd())
	cmd.AddCommand(newProductGetCmd())
	cmd.AddCommand(newProductCreateCmd())
	cmd.AddCommand(newProductUpdateCmd())
	cmd.AddCommand(newProductDeleteCmd())

	return cmd
}

func newProductListCmd() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/v1/products?limit=%d&offset=%d", limit, offset)

			var result []Product
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "Page offset")

	return cmd
}

func newProductGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id-or-slug>",
		Short: "Show a product by ID or slug",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Product
			if err := client.Get("/api/v1/products/"+url.PathEscape(args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newProductCreateCmd() *cobra.Command {
	var (
		title       string
		price       float64
		description string
		slug        string
		stock       int
		gender      string
		sizes       []string
		tags        []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"title":       title,
				"price":       price,
				"description": description,
				"slug":        slug,
				"stock":       stock,
				"gender":      gender,
				"sizes":       sizes,
				"tags":        tags,
			}

			var result Product
			if err := client.Post("/api/v1/products", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Product title (required)")
	cmd.Flags().Float64Var(&price, "price", 0, "Price")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&slug, "slug", "", "Slug (defaults to a slugged title)")
	cmd.Flags().IntVar(&stock, "stock", 0, "Stock count")
	cmd.Flags().StringVar(&gender, "gender", "", "Gender: men, women, kid, unisex (required)")
	cmd.Flags().StringSliceVar(&sizes, "sizes", nil, "Sizes (comma separated)")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Tags (comma separated)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("gender")

	return cmd
}

func newProductUpdateCmd() *cobra.Command {
	var (
		title       string
		price       float64
		description string
		slug        string
		stock       int
		gender      string
	)

	cmd := &cobra.Command{
		Use:   "update <id-or-slug>",
		Short: "Update a product (only provided flags are changed)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Only send fields whose flags were set so the server
			// leaves everything else untouched
			req := map[string]any{}
			if cmd.Flags().Changed("title") {
				req["title"] = title
			}
			if cmd.Flags().Changed("price") {
				req["price"] = price
			}
			if cmd.Flags().Changed("description") {
				req["description"] = description
			}
			if cmd.Flags().Changed("slug") {
				req["slug"] = slug
			}
			if cmd.Flags().Changed("stock") {
				req["stock"] = stock
			}
			if cmd.Flags().Changed("gender") {
				req["gender"] = gender
			}
			if len(req) == 0 {
				return fmt.Errorf("nothing to update")
			}

			var result Product
			if err := client.Patch("/api/v1/products/"+url.PathEscape(args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Product title")
	cmd.Flags().Float64Var(&price, "price", 0, "Price")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&slug, "slug", "", "Slug")
	cmd.Flags().IntVar(&stock, "stock", 0, "Stock count")
	cmd.Flags().StringVar(&gender, "gender", "", "Gender: men, women, kid, unisex")

	return cmd
}

func newProductDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id-or-slug>",
		Short: "Delete a product (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/products/" + url.PathEscape(args[0])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Product deleted")
			return nil
		},
	}
}
