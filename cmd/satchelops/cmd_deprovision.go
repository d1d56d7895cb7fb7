package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/satchelworks/satchelops/domain/model"
	"github.com/satchelworks/satchelops/usecase/provision"
)

func newCmdDeprovision() *cobra.Command {
	var (
		namespace string
		ownerID   string
		purgeData bool
	)

	cmd := &cobra.Command{
		Use:   "deprovision",
		Short: "Remove async storage resources from a namespace",
		Long: `Remove the async storage service, pod and config map of a namespace.

The shared volume claim and its data survive unless --purge-data is given.
Stored SSH pairs are owner scoped and never removed here; use
'sshkey remove' for those.`,
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if namespace == "" {
				return fmt.Errorf("namespace not specified; use --namespace")
			}
			if ownerID == "" {
				return fmt.Errorf("owner id not specified; use --owner-id")
			}
			uc, err := buildProvisionUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "deprovision", namespace)
			defer func() { cleanup(err) }()

			out, err := uc.Deprovision(ctx, &provision.DeprovisionInput{
				Identity:  &model.RuntimeIdentity{OwnerID: ownerID, Namespace: namespace},
				PurgeData: purgeData,
			})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringVar(&namespace, "namespace", "", "Target namespace")
	cmd.Flags().StringVar(&ownerID, "owner-id", "", "Workspace owner ID (narrows the delete selector)")
	cmd.Flags().BoolVar(&purgeData, "purge-data", false, "Also delete the shared volume claim")
	return cmd
}
