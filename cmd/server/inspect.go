package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gyaneshwarpardhi/opsdash/internal/api"
	"github.com/gyaneshwarpardhi/opsdash/internal/config"
	"github.com/gyaneshwarpardhi/opsdash/internal/fixtures"
	"github.com/gyaneshwarpardhi/opsdash/internal/layout"
)

func newLayoutCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:       "layout <view>",
		Short:     "Print the layout of an org view (teams, jobs, forms) as JSON",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{layout.ViewTeams, layout.ViewJobs, layout.ViewForms},
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}
			cfg := loader.Config()
			s, err := openStore(cfg)
			if err != nil {
				return err
			}
			nodes, _, ok := api.ViewNodes(s, args[0])
			if !ok {
				return fmt.Errorf("unknown view %q", args[0])
			}
			l, err := layout.NewEngine(cfg.Layout.Settings()).Compute(args[0], nodes)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(l)
		},
	}
}

func newConfigCmd(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration tools",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Load and validate the config and fixtures",
		RunE: func(cmd *cobra.Command, _ []string) error {
			loader, err := config.NewLoader(*cfgPath)
			if err != nil {
				return err
			}
			cfg := loader.Config()
			seed, err := fixtures.Load(cfg.FixturesPath)
			if err != nil {
				return err
			}
			if err := fixtures.Validate(seed, cfg.Layout.OnDanglingParent); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "config ok (version %s, queue depth %d, dangling parents: %s)\n",
				cfg.Version, cfg.Engine.QueueDepth, cfg.Layout.OnDanglingParent)
			return nil
		},
	})
	return cmd
}
