package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Inventario-estoque/internal/application/dto"
	"github.com/jhoicas/Inventario-estoque/internal/domain/entity"
)

func newProductsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"p"},
		Short:   "Alta, edición y consulta de productos",
	}
	cmd.AddCommand(
		newProductsAddCmd(),
		newProductsUpdateCmd(),
		newProductsListCmd(),
		newProductsLowCmd(),
		newProductsShowCmd(),
		newProductsMovementsCmd(),
		newProductsReconcileCmd(),
	)
	return cmd
}

func newProductsAddCmd() *cobra.Command {
	var in dto.ProductRequest
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Crea un producto con saldo 0",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, a *app, sess entity.Session) error {
				p, err := a.stock.AddProduct(ctx, sess, in)
				if err != nil {
					return err
				}
				printOK(cmd.OutOrStdout(), fmt.Sprintf("producto %q creado: %s", p.Name, p.ID))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&in.Name, "name", "n", "", "nombre (único)")
	cmd.Flags().StringVarP(&in.Description, "description", "d", "", "descripción")
	cmd.Flags().StringVarP(&in.MinQuantity, "min", "m", "", "cantidad mínima de alerta (0 = sin alerta)")
	return cmd
}

// update parte del registro actual: los flags no indicados conservan su valor.
func newProductsUpdateCmd() *cobra.Command {
	var in dto.ProductRequest
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Cambia nombre, descripción o mínimo (nunca el saldo)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, a *app, sess entity.Session) error {
				current, err := a.stock.GetProduct(ctx, sess, args[0])
				if err != nil {
					return err
				}
				flags := cmd.Flags()
				if !flags.Changed("name") {
					in.Name = current.Name
				}
				if !flags.Changed("description") {
					in.Description = current.Description
				}
				if !flags.Changed("min") {
					in.MinQuantity = strconv.FormatInt(current.MinQuantity, 10)
				}
				p, err := a.stock.UpdateProduct(ctx, sess, current.ID, in)
				if err != nil {
					return err
				}
				printOK(cmd.OutOrStdout(), fmt.Sprintf("producto %q actualizado", p.Name))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&in.Name, "name", "n", "", "nombre (único)")
	cmd.Flags().StringVarP(&in.Description, "description", "d", "", "descripción")
	cmd.Flags().StringVarP(&in.MinQuantity, "min", "m", "", "cantidad mínima de alerta")
	return cmd
}

func newProductsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lista todos los productos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, a *app, sess entity.Session) error {
				list, err := a.stock.ListProducts(ctx, sess)
				if err != nil {
					return err
				}
				return printProducts(cmd.OutOrStdout(), list)
			})
		},
	}
}

func newProductsLowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "low",
		Short: "Lista los productos en o bajo su mínimo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, a *app, sess entity.Session) error {
				list, err := a.stock.ListLowStock(ctx, sess)
				if err != nil {
					return err
				}
				if len(list) == 0 {
					printOK(cmd.OutOrStdout(), "ningún producto bajo el mínimo")
					return nil
				}
				return printProducts(cmd.OutOrStdout(), list)
			})
		},
	}
}

func newProductsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Muestra un producto",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, a *app, sess entity.Session) error {
				p, err := a.stock.GetProduct(ctx, sess, args[0])
				if err != nil {
					return err
				}
				return printProducts(cmd.OutOrStdout(), []dto.ProductResponse{*p})
			})
		},
	}
}

func newProductsMovementsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "movements <id>",
		Short: "Historial de entradas y salidas de un producto",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, a *app, sess entity.Session) error {
				movs, err := a.stock.ListMovements(ctx, sess, args[0])
				if err != nil {
					return err
				}
				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "FECHA\tTIPO\tCANTIDAD\tSALDO")
				for _, m := range movs {
					fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", m.Date.Format("2006-01-02 15:04:05"), m.Type, m.Quantity, m.NewQuantity)
				}
				return tw.Flush()
			})
		},
	}
}

func newProductsReconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile <id>",
		Short: "Compara el saldo con la suma del historial",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, a *app, sess entity.Session) error {
				r, err := a.stock.Reconcile(ctx, sess, args[0])
				if err != nil {
					return err
				}
				status := "consistente"
				if !r.Consistent {
					status = "INCONSISTENTE"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "saldo %d, historial %d (entradas %d, salidas %d, %d movimientos): %s\n",
					r.Stored, r.Computed, r.TotalIn, r.TotalOut, r.Movements, status)
				return nil
			})
		},
	}
}

func printProducts(w io.Writer, list []dto.ProductResponse) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNOMBRE\tSALDO\tMÍNIMO\tALERTA")
	for _, p := range list {
		alert := ""
		if p.LowStock {
			alert = "BAJO"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", p.ID, p.Name, p.CurrentQuantity, p.MinQuantity, alert)
	}
	return tw.Flush()
}
