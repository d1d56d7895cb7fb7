package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/satchelworks/satchelops/adapters/kube"
	"github.com/satchelworks/satchelops/usecase/provision"
)

func newCmdLogs() *cobra.Command {
	var (
		namespace string
		follow    bool
		tail      int64
	)

	cmd := &cobra.Command{
		Use:                "logs",
		Short:              "Print logs of the storage pod",
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if namespace == "" {
				return fmt.Errorf("namespace not specified; use --namespace")
			}
			cfg, err := loadConfigOptional(cmd)
			if err != nil {
				return err
			}
			client, err := buildKubeClient(cmd, cfg)
			if err != nil {
				return err
			}
			quietKlog()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			in := &kube.PodLogInput{
				Namespace: namespace,
				Pod:       provision.StorageResourceName,
				Follow:    follow,
				Out:       cmd.OutOrStdout(),
			}
			if cmd.Flags().Changed("tail") {
				in.TailLines = &tail
			}
			return client.PodLog(ctx, in)
		},
	}

	cmd.Flags().StringVar(&namespace, "namespace", "", "Target namespace")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Stream logs until interrupted")
	cmd.Flags().Int64Var(&tail, "tail", 0, "Number of recent lines to show")
	return cmd
}
