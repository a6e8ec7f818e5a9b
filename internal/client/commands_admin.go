// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func (a *App) initCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the vault schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withBackend(cmd.Context(), func(b Backend) error {
				if err := b.Initialize(cmd.Context(), force); err != nil {
					return err
				}
				printf(cmd, "Vault initialized successfully.\n")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "drop an existing schema and every stored entry")

	return cmd
}

func (a *App) tenantCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tenant",
		Short: "Manage tenants",
	}

	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a tenant with a fresh key salt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withBackend(cmd.Context(), func(b Backend) error {
				tenants, err := b.Tenants(cmd.Context())
				if err != nil {
					return err
				}

				tenant, err := tenants.CreateTenant(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printf(cmd, "Created tenant %q with id %d.\n", tenant.Name, tenant.ID)
				return nil
			})
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List tenants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withBackend(cmd.Context(), func(b Backend) error {
				tenants, err := b.Tenants(cmd.Context())
				if err != nil {
					return err
				}

				list, err := tenants.ListTenants(cmd.Context())
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tCREATED")
				for _, t := range list {
					fmt.Fprintf(w, "%d\t%s\t%s\n", t.ID, t.Name, t.CreatedAt.UTC().Format(time.RFC3339))
				}
				return w.Flush()
			})
		},
	}

	remove := &cobra.Command{
		Use:   "delete <tenant-id>",
		Short: "Delete a tenant with its users and entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tenantID, err := parseTenantID(args[0])
			if err != nil {
				return err
			}

			return a.withBackend(cmd.Context(), func(b Backend) error {
				tenants, err := b.Tenants(cmd.Context())
				if err != nil {
					return err
				}

				if err = tenants.DeleteTenant(cmd.Context(), tenantID); err != nil {
					return err
				}
				printf(cmd, "Deleted tenant %d.\n", tenantID)
				return nil
			})
		},
	}

	cmd.AddCommand(create, list, remove)
	return cmd
}

func (a *App) superuserCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "superuser",
		Short: "Manage superusers",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create <username>",
		Short: "Create a superuser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := a.newPassword()
			if err != nil {
				return err
			}

			return a.withBackend(cmd.Context(), func(b Backend) error {
				tenants, err := b.Tenants(cmd.Context())
				if err != nil {
					return err
				}

				user, err := tenants.CreateSuperuser(cmd.Context(), args[0], password)
				if err != nil {
					return err
				}
				printf(cmd, "Created superuser %q.\n", user.Username)
				return nil
			})
		},
	})

	return cmd
}

func (a *App) userCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage tenant users",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create <tenant-id> <username>",
		Short: "Create a user of a tenant",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tenantID, err := parseTenantID(args[0])
			if err != nil {
				return err
			}

			password, err := a.newPassword()
			if err != nil {
				return err
			}

			return a.withBackend(cmd.Context(), func(b Backend) error {
				tenants, err := b.Tenants(cmd.Context())
				if err != nil {
					return err
				}

				user, err := tenants.CreateTenantUser(cmd.Context(), tenantID, args[1], password)
				if err != nil {
					return err
				}
				printf(cmd, "Created user %q in tenant %d.\n", user.Username, tenantID)
				return nil
			})
		},
	})

	return cmd
}

func parseTenantID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTenantID, raw)
	}
	return id, nil
}
