package main

import (
	"github.com/spf13/cobra"

	"pkt.systems/embsh/internal/appconfig"
	"pkt.systems/embsh/telnetserver"
	"pkt.systems/pslog"
)

func newServeCmd() *cobra.Command {
	var cfgPath string
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the telnet debug server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := pslog.Ctx(cmd.Context())
			cfg, err := appconfig.Load(cfgPath)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Telnet.Port = port
			}
			if err := registerDiagnostics(); err != nil {
				return err
			}

			srv := telnetserver.New(telnetserver.Config{
				Port:         cfg.Telnet.Port,
				MaxSessions:  cfg.Telnet.MaxSessions,
				Prompt:       cfg.Telnet.Prompt,
				Banner:       cfg.Telnet.Banner,
				NoBanner:     cfg.Telnet.NoBanner,
				Username:     cfg.Telnet.Username,
				Password:     cfg.Telnet.Password,
				PasswordHash: cfg.Telnet.PasswordHash,
				Logger:       logger,
			})
			if err := srv.Start(); err != nil {
				return err
			}

			<-cmd.Context().Done()
			srv.Stop()
			return nil
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "config file path")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "override telnet port")
	return cmd
}
