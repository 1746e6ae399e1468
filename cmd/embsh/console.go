package main

import (
	"github.com/spf13/cobra"

	"pkt.systems/embsh/console"
	"pkt.systems/embsh/internal/appconfig"
	"pkt.systems/pslog"
)

func newConsoleCmd() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "console",
		Short: "Run the shell on the local terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := appconfig.Load(cfgPath)
			if err != nil {
				return err
			}
			if err := registerDiagnostics(); err != nil {
				return err
			}
			sh := console.New(console.Config{
				Prompt:    cfg.Console.Prompt,
				NoRawMode: cfg.Console.NoRawMode,
				Logger:    pslog.Ctx(cmd.Context()),
			})
			return sh.Run()
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "config file path")
	return cmd
}
