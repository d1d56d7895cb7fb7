package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/satchelworks/satchelops/adapters/store/inmem"
	"github.com/satchelworks/satchelops/adapters/store/rdb"
	"github.com/satchelworks/satchelops/config/satchelcfg"
	"github.com/satchelworks/satchelops/domain"
)

// findFlag recursively searches parents for a flag.
func findFlag(cmd *cobra.Command, name string) *pflag.Flag {
	for c := cmd; c != nil; c = c.Parent() {
		if f := c.Flags().Lookup(name); f != nil {
			return f
		}
		if f := c.PersistentFlags().Lookup(name); f != nil {
			return f
		}
	}
	return nil
}

// getDBURL resolves the store URL. An explicitly set --db-url wins over the
// config file; the flag default (which already folds in SATCHEL_DB_URL)
// applies last.
func getDBURL(cmd *cobra.Command, cfg *satchelcfg.Root) string {
	f := findFlag(cmd, "db-url")
	if f != nil && f.Changed {
		return f.Value.String()
	}
	if cfg != nil && cfg.Store.DBURL != "" {
		return cfg.Store.DBURL
	}
	if f != nil && f.Value.String() != "" {
		return f.Value.String()
	}
	return satchelcfg.DefaultDBURL
}

// buildSSHPairRepository creates the SSH pair store selected by the db URL.
func buildSSHPairRepository(cmd *cobra.Command, cfg *satchelcfg.Root) (domain.SSHPairRepository, error) {
	dbURL := getDBURL(cmd, cfg)

	switch {
	case strings.HasPrefix(dbURL, "memory:"):
		return inmem.NewSSHPairRepository(), nil

	case strings.HasPrefix(dbURL, "sqlite:") || strings.HasPrefix(dbURL, "sqlite3:"):
		db, err := rdb.OpenFromURL(dbURL)
		if err != nil {
			return nil, err
		}
		if err := rdb.AutoMigrate(db); err != nil {
			return nil, err
		}
		return rdb.NewSSHPairRepository(db), nil

	default:
		return nil, fmt.Errorf("unsupported db scheme: %s", dbURL)
	}
}
