package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/satchelworks/satchelops/usecase/sshkey"
)

func newCmdSSHKey() *cobra.Command {
	c := &cobra.Command{
		Use:                "sshkey",
		Short:              "Manage stored SSH pairs",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	c.AddCommand(newCmdSSHKeyList())
	c.AddCommand(newCmdSSHKeyGenerate())
	c.AddCommand(newCmdSSHKeyRemove())
	return c
}

func newCmdSSHKeyList() *cobra.Command {
	var (
		ownerID string
		scope   string
	)

	cmd := &cobra.Command{
		Use:                "list",
		Short:              "List stored SSH pairs of an owner",
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := buildSSHKeyUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()
			out, err := uc.List(ctx, &sshkey.ListInput{OwnerID: ownerID, Scope: scope})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, it := range out.Pairs {
				if err := enc.Encode(it); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&ownerID, "owner", "", "Owner ID")
	cmd.Flags().StringVar(&scope, "scope", sshkey.InternalScope, "Key scope")
	return cmd
}

func newCmdSSHKeyGenerate() *cobra.Command {
	var (
		ownerID        string
		scope          string
		name           string
		privateKeyFile string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate and store a new SSH pair",
		Long: `Generate and store a new SSH pair for an owner.

The private key is stored but never printed; pass --private-key-file to
write it out once, or rely on provisioning to use the stored material.`,
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := buildSSHKeyUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := uc.Generate(ctx, &sshkey.GenerateInput{OwnerID: ownerID, Scope: scope, Name: name})
			if err != nil {
				return err
			}
			if privateKeyFile != "" {
				if err := os.WriteFile(privateKeyFile, []byte(out.Pair.PrivateKey), 0600); err != nil {
					return fmt.Errorf("writing %s: %w", privateKeyFile, err)
				}
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out.Pair)
		},
	}

	cmd.Flags().StringVar(&ownerID, "owner", "", "Owner ID")
	cmd.Flags().StringVar(&scope, "scope", sshkey.InternalScope, "Key scope")
	cmd.Flags().StringVar(&name, "name", sshkey.DefaultKeyName, "Key name")
	cmd.Flags().StringVar(&privateKeyFile, "private-key-file", "", "Write the private key PEM to this path")
	return cmd
}

func newCmdSSHKeyRemove() *cobra.Command {
	var (
		ownerID string
		scope   string
		name    string
	)

	cmd := &cobra.Command{
		Use:                "remove",
		Short:              "Remove a stored SSH pair",
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := buildSSHKeyUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()
			if _, err := uc.Delete(ctx, &sshkey.DeleteInput{OwnerID: ownerID, Scope: scope, Name: name}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s/%s/%s\n", ownerID, scope, name)
			return nil
		},
	}

	cmd.Flags().StringVar(&ownerID, "owner", "", "Owner ID")
	cmd.Flags().StringVar(&scope, "scope", sshkey.InternalScope, "Key scope")
	cmd.Flags().StringVar(&name, "name", "", "Key name")
	return cmd
}
