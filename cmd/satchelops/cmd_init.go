package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/satchelworks/satchelops/config/satchelcfg"
)

// initialConfigYAML is the starter configuration written by `satchelops init`.
const initialConfigYAML = `# satchelops configuration
version: v1
cluster:
  # kubeconfig: ~/.kube/config
  ensureNamespace: false
store:
  dbURL: sqlite:./satchelops.db
storage:
  image: ghcr.io/satchelworks/async-storage:0.1.0
  imagePullPolicy: IfNotPresent
  pvc:
    name: claim-satchel
    quantity: 10Gi
    accessMode: ReadWriteOnce
    # storageClassName: standard
    strategy: common
logging:
  format: human
  level: info
`

func newCmdInit() *cobra.Command {
	var forceFlag bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter " + satchelcfg.DefaultFileName,
		Long: `Write a starter ` + satchelcfg.DefaultFileName + ` into the working directory.

Edit storage.image and the pvc section before provisioning. An existing
file is never overwritten unless -f is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, forceFlag)
		},
	}

	cmd.Flags().BoolVarP(&forceFlag, "force", "f", false, "Overwrite existing "+satchelcfg.DefaultFileName)
	return cmd
}

func runInit(cmd *cobra.Command, forceFlag bool) error {
	path := getConfigPath(cmd)

	if !forceFlag {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use -f to overwrite)", path)
		}
	}

	if err := os.WriteFile(path, []byte(initialConfigYAML), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return nil
}
