package main

import (
	"github.com/spf13/cobra"

	"pkt.systems/embsh/internal/appconfig"
	"pkt.systems/embsh/serial"
	"pkt.systems/pslog"
)

func newSerialCmd() *cobra.Command {
	var cfgPath string
	var device string
	var baud int
	cmd := &cobra.Command{
		Use:   "serial",
		Short: "Run the shell on a serial device",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := appconfig.Load(cfgPath)
			if err != nil {
				return err
			}
			if device != "" {
				cfg.Serial.Device = device
			}
			if baud > 0 {
				cfg.Serial.Baud = baud
			}
			if err := registerDiagnostics(); err != nil {
				return err
			}
			sh := serial.New(serial.Config{
				Device: cfg.Serial.Device,
				Baud:   cfg.Serial.Baud,
				Prompt: cfg.Serial.Prompt,
				Logger: pslog.Ctx(cmd.Context()),
			})
			if err := sh.Start(); err != nil {
				return err
			}
			<-cmd.Context().Done()
			sh.Stop()
			return nil
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "config file path")
	cmd.Flags().StringVarP(&device, "device", "d", "", "serial device path")
	cmd.Flags().IntVarP(&baud, "baud", "b", 0, "baud rate")
	return cmd
}
