package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pkt.systems/embsh/internal/auth"
)

func newHashpwCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hashpw <password>",
		Short: "Hash a password for telnet.password_hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashPassword(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}
}
