package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Inventario-estoque/internal/application/dto"
	"github.com/jhoicas/Inventario-estoque/internal/domain/entity"
)

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Administración de usuarios (solo admin)",
	}
	cmd.AddCommand(newUsersAddCmd(), newUsersListCmd())
	return cmd
}

func newUsersAddCmd() *cobra.Command {
	var password, role string
	cmd := &cobra.Command{
		Use:   "add <usuario>",
		Short: "Registra un usuario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, a *app, sess entity.Session) error {
				u, err := a.auth.RegisterUser(ctx, sess, dto.RegisterUserRequest{Username: args[0], Password: password, Role: role})
				if err != nil {
					return err
				}
				printOK(cmd.OutOrStdout(), fmt.Sprintf("usuario %s registrado (%s)", u.Username, u.Role))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "contraseña")
	cmd.Flags().StringVarP(&role, "role", "r", entity.RoleRegular, "rol: admin o regular")
	return cmd
}

func newUsersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lista los usuarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, a *app, sess entity.Session) error {
				users, err := a.auth.ListUsers(ctx, sess)
				if err != nil {
					return err
				}
				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "ID\tUSUARIO\tROL")
				for _, u := range users {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", u.ID, u.Username, u.Role)
				}
				return tw.Flush()
			})
		},
	}
}
