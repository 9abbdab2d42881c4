// Cert commands: mint, update, transfer, delete, and enumerate certificate
// tokens.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/certbook/internal/hostenv"
	"github.com/mesh-intelligence/certbook/pkg/registry"
	"github.com/mesh-intelligence/certbook/pkg/types"
)

var (
	certMetadataJSON  string
	certMintReceiver  string
	certMintCategory  string
	certBulkReceivers []string
	certBulkMetadatas []string
	certSendMemo      string
	certListOwner     string
	certListCategory  string
	certListFrom      int
	certListLimit     int
)

var certCmd = &cobra.Command{
	Use:   "cert",
	Short: "Manage certificate tokens",
}

var certMintCmd = &cobra.Command{
	Use:   "mint",
	Short: "Mint a certificate token into a category",
	Long: `Mint issues one certificate token to the receiver inside the given
category. Only the category owner may mint. Token ids are assigned by the
registry counter and never reused.

Example:
  certbook cert mint --category golang-basics --receiver bob \
    --metadata '{"title":"Go Basics - Bob"}'`,
	RunE: runCertMint,
}

var certBulkMintCmd = &cobra.Command{
	Use:   "bulk-mint",
	Short: "Mint one certificate per receiver in a single operation",
	Long: `Bulk-mint issues one token per --receiver inside the given category,
settled as a single operation. When --metadata values are supplied there
must be exactly one per receiver.

Example:
  certbook cert bulk-mint --category golang-basics \
    --receiver bob --receiver carol`,
	RunE: runCertBulkMint,
}

var certSetCmd = &cobra.Command{
	Use:   "set <token-id>",
	Short: "Update a certificate's metadata",
	Long: `Set overwrites the caller-mutable metadata fields of a certificate.
Authorization belongs to the certificate provider: the owner of the
token's category, not the token holder.`,
	Args: cobra.ExactArgs(1),
	RunE: runCertSet,
}

var certSendCmd = &cobra.Command{
	Use:   "send <token-id> <receiver>",
	Short: "Transfer a certificate to another account",
	Long: `Send moves a certificate from the caller to the receiver. Metadata
and category membership are untouched. Transfers to the current owner are
rejected.

Example:
  certbook cert send 3 carol --memo "congrats"`,
	Args: cobra.ExactArgs(2),
	RunE: runCertSend,
}

var certRmCmd = &cobra.Command{
	Use:   "rm <token-id>",
	Short: "Delete a certificate token",
	Long: `Rm removes a certificate and refunds its storage value to the caller.
Only the token holder may delete. The attached deposit must be exactly 1.`,
	Args: cobra.ExactArgs(1),
	RunE: runCertRm,
}

var certGetCmd = &cobra.Command{
	Use:   "get <token-id>",
	Short: "Show one certificate token",
	Args:  cobra.ExactArgs(1),
	RunE:  runCertGet,
}

var certLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List certificates for an owner",
	RunE:  runCertLs,
}

var certByCategoryCmd = &cobra.Command{
	Use:   "by-category",
	Short: "List certificates minted into a category",
	Long: `By-category enumerates the tokens minted into a category in stable
index order. Transfers do not affect category membership, so a transferred
certificate still shows up here.`,
	RunE: runCertByCategory,
}

func init() {
	certMintCmd.Flags().StringVar(&certMintCategory, "category", "", "category to mint into (required)")
	certMintCmd.Flags().StringVar(&certMintReceiver, "receiver", "", "account receiving the token (required)")
	certMintCmd.Flags().StringVar(&certMetadataJSON, "metadata", "", "token metadata as a JSON object")
	_ = certMintCmd.MarkFlagRequired("category")
	_ = certMintCmd.MarkFlagRequired("receiver")

	certBulkMintCmd.Flags().StringVar(&certMintCategory, "category", "", "category to mint into (required)")
	certBulkMintCmd.Flags().StringArrayVar(&certBulkReceivers, "receiver", nil, "account receiving a token (repeatable, required)")
	certBulkMintCmd.Flags().StringArrayVar(&certBulkMetadatas, "metadata", nil, "token metadata as a JSON object (repeatable, one per receiver)")
	_ = certBulkMintCmd.MarkFlagRequired("category")
	_ = certBulkMintCmd.MarkFlagRequired("receiver")

	certSetCmd.Flags().StringVar(&certMetadataJSON, "metadata", "", "token metadata as a JSON object")

	certSendCmd.Flags().StringVar(&certSendMemo, "memo", "", "memo carried into the transfer event")

	certLsCmd.Flags().StringVar(&certListOwner, "owner", "", "owner account to list certificates for (required)")
	certLsCmd.Flags().IntVar(&certListFrom, "from", 0, "number of entries to skip")
	certLsCmd.Flags().IntVar(&certListLimit, "limit", 0, "maximum entries to return (default 50)")
	_ = certLsCmd.MarkFlagRequired("owner")

	certByCategoryCmd.Flags().StringVar(&certListCategory, "category", "", "category to list certificates for (required)")
	certByCategoryCmd.Flags().IntVar(&certListFrom, "from", 0, "number of entries to skip")
	certByCategoryCmd.Flags().IntVar(&certListLimit, "limit", 0, "maximum entries to return (default 50)")
	_ = certByCategoryCmd.MarkFlagRequired("category")

	certCmd.AddCommand(certMintCmd)
	certCmd.AddCommand(certBulkMintCmd)
	certCmd.AddCommand(certSetCmd)
	certCmd.AddCommand(certSendCmd)
	certCmd.AddCommand(certRmCmd)
	certCmd.AddCommand(certGetCmd)
	certCmd.AddCommand(certLsCmd)
	certCmd.AddCommand(certByCategoryCmd)
}

func runCertMint(cmd *cobra.Command, args []string) error {
	var meta types.TokenMetadata
	if err := parseMetadataFlag(certMetadataJSON, &meta); err != nil {
		return err
	}

	return runMutation(func(reg *registry.Registry, env *hostenv.Local) error {
		tokenID, err := reg.Mint(env, certMintReceiver, certMintCategory, meta)
		if err != nil {
			return fmt.Errorf("mint: %w", err)
		}
		if flagJSON {
			return printJSON(reg.Token(tokenID))
		}
		fmt.Printf("Minted certificate: %s\n", tokenID)
		return nil
	})
}

func runCertBulkMint(cmd *cobra.Command, args []string) error {
	metadatas := make([]types.TokenMetadata, len(certBulkReceivers))
	if len(certBulkMetadatas) > 0 {
		if len(certBulkMetadatas) != len(certBulkReceivers) {
			return fmt.Errorf("bulk-mint: %w", types.ErrLengthMismatch)
		}
		for i, raw := range certBulkMetadatas {
			if err := parseMetadataFlag(raw, &metadatas[i]); err != nil {
				return err
			}
		}
	}

	return runMutation(func(reg *registry.Registry, env *hostenv.Local) error {
		tokenIDs, err := reg.BulkMint(env, certBulkReceivers, certMintCategory, metadatas)
		if err != nil {
			return fmt.Errorf("bulk-mint: %w", err)
		}
		if flagJSON {
			return printJSON(tokenIDs)
		}
		fmt.Printf("Minted certificates: %s\n", strings.Join(tokenIDs, ", "))
		return nil
	})
}

func runCertSet(cmd *cobra.Command, args []string) error {
	tokenID := args[0]

	var meta types.TokenMetadata
	if err := parseMetadataFlag(certMetadataJSON, &meta); err != nil {
		return err
	}

	return runMutation(func(reg *registry.Registry, env *hostenv.Local) error {
		if err := reg.CertUpdate(env, tokenID, meta); err != nil {
			return fmt.Errorf("update certificate: %w", err)
		}
		if flagJSON {
			return printJSON(reg.Token(tokenID))
		}
		fmt.Printf("Updated certificate: %s\n", tokenID)
		return nil
	})
}

func runCertSend(cmd *cobra.Command, args []string) error {
	tokenID, receiver := args[0], args[1]

	var memo *string
	if certSendMemo != "" {
		memo = &certSendMemo
	}

	return runMutation(func(reg *registry.Registry, env *hostenv.Local) error {
		if err := reg.Transfer(env, tokenID, receiver, memo); err != nil {
			return fmt.Errorf("transfer: %w", err)
		}
		if flagJSON {
			return printJSON(reg.Token(tokenID))
		}
		fmt.Printf("Transferred certificate %s to %s\n", tokenID, receiver)
		return nil
	})
}

func runCertRm(cmd *cobra.Command, args []string) error {
	tokenID := args[0]

	return runMutation(func(reg *registry.Registry, env *hostenv.Local) error {
		if err := reg.CertDelete(env, tokenID); err != nil {
			return fmt.Errorf("delete certificate: %w", err)
		}
		if flagJSON {
			fmt.Printf("{\"token_id\": %q}\n", tokenID)
		} else {
			fmt.Printf("Deleted certificate: %s\n", tokenID)
		}
		return nil
	})
}

func runCertGet(cmd *cobra.Command, args []string) error {
	tokenID := args[0]

	return runQuery(func(reg *registry.Registry) error {
		view := reg.Token(tokenID)
		if view == nil {
			return fmt.Errorf("token %q: %w", tokenID, types.ErrNotFound)
		}
		if flagJSON {
			return printJSON(view)
		}
		fmt.Printf("Certificate: %s\nOwner:       %s\nCategory:    %s\nTitle:       %s\n",
			view.TokenID, view.OwnerID, view.CategoryID, deref(view.Metadata.Title))
		return nil
	})
}

func runCertLs(cmd *cobra.Command, args []string) error {
	return runQuery(func(reg *registry.Registry) error {
		views := reg.TokensForOwner(certListOwner, certListFrom, certListLimit)
		if flagJSON {
			return printJSON(views)
		}
		for _, v := range views {
			fmt.Printf("%s\t%s\t%s\n", v.TokenID, v.CategoryID, deref(v.Metadata.Title))
		}
		return nil
	})
}

func runCertByCategory(cmd *cobra.Command, args []string) error {
	return runQuery(func(reg *registry.Registry) error {
		views := reg.CertsByCategory(certListCategory, certListFrom, certListLimit)
		if flagJSON {
			return printJSON(views)
		}
		for _, v := range views {
			fmt.Printf("%s\t%s\t%s\n", v.TokenID, v.OwnerID, deref(v.Metadata.Title))
		}
		return nil
	})
}
