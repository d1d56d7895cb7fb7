package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/satchelworks/satchelops/adapters/kube"
	"github.com/satchelworks/satchelops/usecase/provision"
)

func newCmdPortForward() *cobra.Command {
	var (
		namespace string
		localPort int
	)

	cmd := &cobra.Command{
		Use:   "port-forward",
		Short: "Forward a local port to the storage sync port",
		Long: `Forward a local port to port 2222 of the storage pod so sync tooling
can reach it from outside the cluster. Runs until interrupted.`,
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

			res, err := client.PortForward(ctx, &kube.PortForwardOptions{
				Namespace:  namespace,
				PodName:    provision.StorageResourceName,
				LocalPort:  localPort,
				RemotePort: provision.SyncPort,
			})
			if err != nil {
				return err
			}
			defer res.StopFunc()

			fmt.Fprintf(cmd.OutOrStdout(), "Forwarding 127.0.0.1:%d -> %s:%d\n",
				res.LocalPort, provision.StorageResourceName, provision.SyncPort)
			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&namespace, "namespace", "", "Target namespace")
	cmd.Flags().IntVar(&localPort, "local-port", 0, "Local port to bind (0 picks a free port)")
	return cmd
}
