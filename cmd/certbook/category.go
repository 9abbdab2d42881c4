// Category commands: create, update, delete, get, and list certificate
// categories.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/certbook/internal/hostenv"
	"github.com/mesh-intelligence/certbook/pkg/registry"
	"github.com/mesh-intelligence/certbook/pkg/types"
)

var (
	categoryMetadataJSON string
	categoryListOwner    string
	categoryListFrom     int
	categoryListLimit    int
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage certificate categories",
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <category-id>",
	Short: "Create a new certificate category",
	Long: `Add registers a new certificate category owned by the caller. Only
the category owner may later mint certificates into it.

Example:
  certbook category add golang-basics --metadata '{"title":"Go Basics"}'`,
	Args: cobra.ExactArgs(1),
	RunE: runCategoryAdd,
}

var categorySetCmd = &cobra.Command{
	Use:   "set <category-id>",
	Short: "Update a category's metadata",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategorySet,
}

var categoryRmCmd = &cobra.Command{
	Use:   "rm <category-id>",
	Short: "Delete a certificate category",
	Long: `Rm removes a category and refunds its storage value to the caller.
A category with minted certificates still indexed under it cannot be
deleted. The attached deposit must be exactly 1.`,
	Args: cobra.ExactArgs(1),
	RunE: runCategoryRm,
}

var categoryGetCmd = &cobra.Command{
	Use:   "get <category-id>",
	Short: "Show one certificate category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoryGet,
}

var categoryLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List certificate categories for an owner",
	RunE:  runCategoryLs,
}

func init() {
	categoryAddCmd.Flags().StringVar(&categoryMetadataJSON, "metadata", "", "category metadata as a JSON object")
	categorySetCmd.Flags().StringVar(&categoryMetadataJSON, "metadata", "", "category metadata as a JSON object")

	categoryLsCmd.Flags().StringVar(&categoryListOwner, "owner", "", "owner account to list categories for (required)")
	categoryLsCmd.Flags().IntVar(&categoryListFrom, "from", 0, "number of entries to skip")
	categoryLsCmd.Flags().IntVar(&categoryListLimit, "limit", 0, "maximum entries to return (default 50)")
	_ = categoryLsCmd.MarkFlagRequired("owner")

	categoryCmd.AddCommand(categoryAddCmd)
	categoryCmd.AddCommand(categorySetCmd)
	categoryCmd.AddCommand(categoryRmCmd)
	categoryCmd.AddCommand(categoryGetCmd)
	categoryCmd.AddCommand(categoryLsCmd)
}

func runCategoryAdd(cmd *cobra.Command, args []string) error {
	categoryID := args[0]

	var meta types.CategoryMetadata
	if err := parseMetadataFlag(categoryMetadataJSON, &meta); err != nil {
		return err
	}

	return runMutation(func(reg *registry.Registry, env *hostenv.Local) error {
		if err := reg.CategoryCreate(env, categoryID, meta); err != nil {
			return fmt.Errorf("create category: %w", err)
		}
		if flagJSON {
			return printJSON(reg.CategoryInfo(categoryID))
		}
		fmt.Printf("Created category: %s\n", categoryID)
		return nil
	})
}

func runCategorySet(cmd *cobra.Command, args []string) error {
	categoryID := args[0]

	var meta types.CategoryMetadata
	if err := parseMetadataFlag(categoryMetadataJSON, &meta); err != nil {
		return err
	}

	return runMutation(func(reg *registry.Registry, env *hostenv.Local) error {
		if err := reg.CategoryUpdate(env, categoryID, meta); err != nil {
			return fmt.Errorf("update category: %w", err)
		}
		if flagJSON {
			return printJSON(reg.CategoryInfo(categoryID))
		}
		fmt.Printf("Updated category: %s\n", categoryID)
		return nil
	})
}

func runCategoryRm(cmd *cobra.Command, args []string) error {
	categoryID := args[0]

	return runMutation(func(reg *registry.Registry, env *hostenv.Local) error {
		if err := reg.CategoryDelete(env, categoryID); err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		if flagJSON {
			fmt.Printf("{\"category_id\": %q}\n", categoryID)
		} else {
			fmt.Printf("Deleted category: %s\n", categoryID)
		}
		return nil
	})
}

func runCategoryGet(cmd *cobra.Command, args []string) error {
	categoryID := args[0]

	return runQuery(func(reg *registry.Registry) error {
		view := reg.CategoryInfo(categoryID)
		if view == nil {
			return fmt.Errorf("category %q: %w", categoryID, types.ErrNotFound)
		}
		if flagJSON {
			return printJSON(view)
		}
		fmt.Printf("Category: %s\nOwner:    %s\nTitle:    %s\n",
			view.CategoryID, view.OwnerID, deref(view.Metadata.Title))
		return nil
	})
}

func runCategoryLs(cmd *cobra.Command, args []string) error {
	return runQuery(func(reg *registry.Registry) error {
		views := reg.CategoriesForOwner(categoryListOwner, categoryListFrom, categoryListLimit)
		if flagJSON {
			return printJSON(views)
		}
		for _, v := range views {
			fmt.Printf("%s\t%s\n", v.CategoryID, deref(v.Metadata.Title))
		}
		return nil
	})
}

// deref returns the pointed-to string or "" for nil.
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
