// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"github.com/MKhiriev/go-tenant-vault/internal/config"
	"github.com/spf13/cobra"
)

func (a *App) versionCommand() *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information and the version of the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printf(cmd, "%s", a.buildInfo.String())
			if local {
				return nil
			}

			remote, err := a.newAdapter(config.NewClientConfig(a.cfg), a.logger)
			if err != nil {
				return err
			}

			info, err := remote.Version(cmd.Context())
			if err != nil {
				a.logger.Debug().Err(err).Msg("server version unavailable")
				printf(cmd, "Server: unreachable\n")
				return nil
			}

			printf(cmd, "Server: %s %s (schema %s)\n", info.Name, info.Version, info.Schema)
			return nil
		},
	}
	cmd.Flags().BoolVar(&local, "local", false, "skip asking the server")

	return cmd
}
