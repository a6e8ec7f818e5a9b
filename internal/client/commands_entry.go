// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/MKhiriev/go-tenant-vault/internal/adapter"
	"github.com/MKhiriev/go-tenant-vault/internal/config"
	"github.com/MKhiriev/go-tenant-vault/models"
	"github.com/spf13/cobra"
)

type entryFlags struct {
	username      string
	tenantID      int64
	vaultPassword bool
}

func (a *App) entryCommand() *cobra.Command {
	var flags entryFlags

	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Manage the entries of a tenant vault on a running server",
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.username, "user", "u", "", "tenant user to log in as")
	pf.Int64Var(&flags.tenantID, "tenant", 0, "expected tenant id of the user")
	pf.BoolVar(&flags.vaultPassword, "vault-password", false, "prompt for a vault password that differs from the login password")
	_ = cmd.MarkPersistentFlagRequired("user")

	add := &cobra.Command{
		Use:   "add <name> [value]",
		Short: "Store or replace an entry; the value is prompted for when omitted",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd.Context(), flags, func(ctx context.Context, remote adapter.ServerAdapter) error {
				value := ""
				if len(args) == 2 {
					value = args[1]
				} else {
					var err error
					if value, err = a.secret("Value: "); err != nil {
						return err
					}
				}

				if err := remote.AddEntry(ctx, models.EntryRequest{Name: args[0], Value: value}); err != nil {
					return err
				}
				printf(cmd, "Entry %q saved.\n", args[0])
				return nil
			})
		},
	}

	get := &cobra.Command{
		Use:   "get <name>",
		Short: "Print the value of an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd.Context(), flags, func(ctx context.Context, remote adapter.ServerAdapter) error {
				entry, err := remote.GetEntry(ctx, args[0])
				if err != nil {
					return err
				}
				printf(cmd, "%s\n", entry.Value)
				return nil
			})
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Print every entry; entries that fail to decrypt are marked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSession(cmd.Context(), flags, func(ctx context.Context, remote adapter.ServerAdapter) error {
				results, listErr := remote.ListEntries(ctx)

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				for _, r := range results {
					if r.Failed() {
						fmt.Fprintf(w, "%s\t<%s>\n", r.Name, r.Error)
						continue
					}
					fmt.Fprintf(w, "%s\t%s\n", r.Name, r.Value)
				}
				if err := w.Flush(); err != nil {
					return err
				}

				return listErr
			})
		},
	}

	remove := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd.Context(), flags, func(ctx context.Context, remote adapter.ServerAdapter) error {
				if err := remote.DeleteEntry(ctx, args[0]); err != nil {
					return err
				}
				printf(cmd, "Entry %q deleted.\n", args[0])
				return nil
			})
		},
	}

	cmd.AddCommand(add, get, list, remove)
	return cmd
}

// withSession logs in, runs fn and logs out again whatever fn returns.
func (a *App) withSession(ctx context.Context, flags entryFlags, fn func(context.Context, adapter.ServerAdapter) error) error {
	remote, err := a.newAdapter(config.NewClientConfig(a.cfg), a.logger)
	if err != nil {
		return err
	}

	req := models.LoginRequest{Username: flags.username}
	if req.Password, err = a.secret("Password: "); err != nil {
		return err
	}
	if flags.vaultPassword {
		if req.VaultPassword, err = a.secret("Vault password: "); err != nil {
			return err
		}
	}
	if flags.tenantID != 0 {
		tenantID := flags.tenantID
		req.TenantID = &tenantID
	}

	login, err := remote.Login(ctx, req)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	a.logger.Debug().Str("user", login.User).Time("expires_at", login.ExpiresAt).Msg("session opened")

	defer func() {
		if err := remote.Logout(context.WithoutCancel(ctx)); err != nil {
			a.logger.Warn().Err(err).Msg("failed to close session")
		}
	}()

	return fn(ctx, remote)
}
