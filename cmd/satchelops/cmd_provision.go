package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/satchelworks/satchelops/config/satchelcfg"
	"github.com/satchelworks/satchelops/domain/model"
	"github.com/satchelworks/satchelops/usecase/provision"
)

func newCmdProvision() *cobra.Command {
	var (
		workspaceFile string
		workspaceID   string
		ownerID       string
		namespace     string
		attrs         map[string]string
		dryRun        bool
	)

	cmd := &cobra.Command{
		Use:                "provision",
		Short:              "Provision async storage for a workspace namespace",
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			in, err := resolveProvisionInput(workspaceFile, workspaceID, ownerID, namespace, attrs)
			if err != nil {
				return err
			}
			in.DryRun = dryRun

			uc, err := buildProvisionUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "provision", in.Identity.Namespace)
			defer func() { cleanup(err) }()

			out, err := uc.Provision(ctx, in)
			if err != nil {
				return err
			}
			if dryRun {
				fmt.Fprint(cmd.OutOrStdout(), out.Manifest)
				return nil
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Skipped  bool            `json:"skipped"`
				Created  []string        `json:"created,omitempty"`
				Warnings []model.Warning `json:"warnings,omitempty"`
			}{
				Skipped:  out.Skipped,
				Created:  out.Created,
				Warnings: in.Environment.Warnings,
			})
		},
	}

	cmd.Flags().StringVarP(&workspaceFile, "file", "f", "", "Workspace descriptor YAML (id, ownerId, namespace, attributes)")
	cmd.Flags().StringVar(&workspaceID, "workspace-id", "", "Workspace ID (overrides the descriptor)")
	cmd.Flags().StringVar(&ownerID, "owner-id", "", "Workspace owner ID (overrides the descriptor)")
	cmd.Flags().StringVar(&namespace, "namespace", "", "Target namespace (overrides the descriptor)")
	cmd.Flags().StringToStringVar(&attrs, "attr", nil, "Workspace attribute override (key=value, repeatable)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Render the manifest instead of applying it")
	return cmd
}

// resolveProvisionInput merges the workspace descriptor file with the flag
// overrides. Flags win over file values; attribute overrides merge per key.
func resolveProvisionInput(file, workspaceID, ownerID, namespace string, attrs map[string]string) (*provision.ProvisionInput, error) {
	ws := &satchelcfg.Workspace{}
	if file != "" {
		loaded, err := satchelcfg.LoadWorkspace(file)
		if err != nil {
			return nil, err
		}
		ws = loaded
	}
	if workspaceID != "" {
		ws.ID = workspaceID
	}
	if ownerID != "" {
		ws.OwnerID = ownerID
	}
	if namespace != "" {
		ws.Namespace = namespace
	}
	if len(attrs) > 0 {
		if ws.Attributes == nil {
			ws.Attributes = make(map[string]string, len(attrs))
		}
		for k, v := range attrs {
			ws.Attributes[k] = v
		}
	}
	if ws.Namespace == "" {
		return nil, fmt.Errorf("namespace not specified; use --namespace or set it in the workspace descriptor")
	}

	return &provision.ProvisionInput{
		Identity: &model.RuntimeIdentity{
			WorkspaceID: ws.ID,
			OwnerID:     ws.OwnerID,
			Namespace:   ws.Namespace,
		},
		Environment: &model.WorkspaceEnvironment{Attributes: ws.Attributes},
	}, nil
}
