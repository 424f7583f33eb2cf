package main

import (
	"context"
	"fmt"
	"os"

	"github.com/neosam/hashstore/config"
	"github.com/neosam/hashstore/hashio"
	"github.com/neosam/hashstore/internal/dlog"
)

var baseDirFlag string

func init() {
	rootCmd.PersistentFlags().StringVarP(&baseDirFlag, "basedir", "b", "", "store base directory (overrides config)")
}

// openStore resolves the configured base directory (flag, then config file,
// then the current directory) and opens a Store rooted there, returning a
// context carrying the configured logger.
func openStore() (context.Context, *hashio.Store, error) {
	ctx := context.Background()
	base := baseDirFlag

	if configPath != "" {
		fp, err := os.Open(configPath)
		if err != nil {
			return nil, nil, err
		}
		defer fp.Close()

		cfg, err := config.Parse(fp)
		if err != nil {
			return nil, nil, fmt.Errorf("parsing %s: %w", configPath, err)
		}
		if base == "" {
			base = cfg.Store.BaseDir
		}
		logger, err := cfg.Logrus()
		if err != nil {
			return nil, nil, err
		}
		dlog.SetDefaultLogger(logger.WithField("component", "hashstore-cli"))
	}

	if base == "" {
		base = "."
	}
	ctx = dlog.WithStoreBase(ctx, base)

	s, err := hashio.Open(base)
	if err != nil {
		return nil, nil, err
	}
	return ctx, s, nil
}
