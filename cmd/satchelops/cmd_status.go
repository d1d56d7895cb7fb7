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

func newCmdStatus() *cobra.Command {
	var namespace string

	cmd := &cobra.Command{
		Use:                "status",
		Short:              "Report async storage resources in a namespace",
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if namespace == "" {
				return fmt.Errorf("namespace not specified; use --namespace")
			}
			uc, err := buildProvisionUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := uc.Status(ctx, &provision.StatusInput{
				Identity: &model.RuntimeIdentity{Namespace: namespace},
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
	return cmd
}
