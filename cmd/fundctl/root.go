package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kailas-cloud/fundex/internal/version"
	"github.com/kailas-cloud/fundex/pkg/client"
)

// app carries state shared by subcommands. It is filled by the root
// PersistentPreRunE before any RunE executes.
type app struct {
	configPath string
	cfg        *viper.Viper
	api        *client.Client
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "fundctl",
		Short: "Browse and edit the fund catalogue",
		Long: `fundctl is an admin client for the fundex API. It lists, filters and
pages through funds, and edits or deletes individual records.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.connect(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: $HOME/.config/fundex/fundctl.yaml)")
	root.PersistentFlags().String("server", "", "fundex API address (default "+defaultServer+")")

	root.AddCommand(
		newListCmd(a),
		newGetCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newEditCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) connect(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.BindPFlag(cfgKeyServer, cmd.Root().PersistentFlags().Lookup("server")); err != nil {
		return fmt.Errorf("bind server flag: %w", err)
	}

	api, err := client.New(cfg.GetString(cfgKeyServer),
		client.WithTimeout(cfg.GetDuration(cfgKeyTimeout)),
		client.WithUserAgent("fundctl/"+version.Version),
	)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.api = api
	return nil
}
