package system

import (
	"fmt"
	"strconv"

	"github.com/mlsaran/smarttimetable/internal/cli"
	"github.com/mlsaran/smarttimetable/internal/config"
)

type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(appCtx *cli.Context) error {
	fmt.Printf("config file:       %s\n", config.Path(appCtx.Config.Dir))
	fmt.Printf("server_url:        %s\n", appCtx.Config.ServerURL)
	fmt.Printf("download_dir:      %s\n", appCtx.Config.DownloadDir)
	fmt.Printf("default_variants:  %d\n", appCtx.Config.DefaultVariants)
	return nil
}

type ConfigSetCmd struct {
	Key   string `arg:"" help:"Setting to change (server-url|download-dir|default-variants)." enum:"server-url,download-dir,default-variants"`
	Value string `arg:"" help:"New value."`
}

func (c *ConfigSetCmd) Run(appCtx *cli.Context) error {
	cfg := appCtx.Config
	switch c.Key {
	case "server-url":
		cfg.ServerURL = c.Value
	case "download-dir":
		cfg.DownloadDir = c.Value
	case "default-variants":
		n, err := strconv.Atoi(c.Value)
		if err != nil || n < 1 {
			return fmt.Errorf("default-variants must be a positive integer")
		}
		cfg.DefaultVariants = n
	}
	if err := cfg.Save(); err != nil {
		return err
	}
	// Reload to rerun validation against the saved file.
	if _, err := config.Load(cfg.Dir); err != nil {
		return fmt.Errorf("saved config is invalid: %w", err)
	}
	fmt.Printf("Set %s = %s\n", c.Key, c.Value)
	return nil
}
