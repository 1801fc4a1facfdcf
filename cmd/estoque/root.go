package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Inventario-estoque/internal/application/dto"
	"github.com/jhoicas/Inventario-estoque/internal/application/inventory"
	"github.com/jhoicas/Inventario-estoque/internal/domain/entity"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "estoque",
		Short:         "Control de stock: productos, entradas y salidas",
		Long:          "estoque lleva el saldo de cada producto a partir de entradas y salidas, y avisa cuando cae al mínimo.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(
		newInitCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newUsersCmd(),
		newProductsCmd(),
		newStockCmd(),
	)
	return root
}

// withApp abre las dependencias, ejecuta fn y las cierra.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

// withSession igual que withApp pero exige una sesión iniciada.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, a *app, sess entity.Session) error) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		sess, err := a.session(ctx)
		if err != nil {
			return err
		}
		return fn(ctx, a, sess)
	})
}

func printOK(w io.Writer, message string) {
	fmt.Fprintln(w, inventory.OutcomeOf(nil, message).Message)
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Crea el esquema y el administrador inicial si faltan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(_ context.Context, a *app) error {
				if a.adminCreated {
					printOK(cmd.OutOrStdout(), fmt.Sprintf("almacenamiento listo; administrador %q creado", a.cfg.Bootstrap.AdminUsername))
					return nil
				}
				printOK(cmd.OutOrStdout(), "almacenamiento listo")
				return nil
			})
		},
	}
}

func newLoginCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Inicia sesión y guarda el token local",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && err != io.EOF {
					return err
				}
				password = strings.TrimRight(line, "\r\n")
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				res, err := a.auth.Authenticate(ctx, dto.LoginRequest{Username: username, Password: password})
				if err != nil {
					return err
				}
				if err := a.saveSession(res.Token); err != nil {
					return err
				}
				printOK(cmd.OutOrStdout(), fmt.Sprintf("sesión iniciada como %s (%s)", res.User.Username, res.User.Role))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "nombre de usuario")
	cmd.Flags().StringVarP(&password, "password", "p", "", "contraseña (si se omite se lee de stdin)")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cierra la sesión local",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(_ context.Context, a *app) error {
				if err := a.clearSession(); err != nil {
					return err
				}
				printOK(cmd.OutOrStdout(), "sesión cerrada")
				return nil
			})
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Muestra el usuario de la sesión actual",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(_ context.Context, _ *app, sess entity.Session) error {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", sess.Username, sess.Role)
				return nil
			})
		},
	}
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}
