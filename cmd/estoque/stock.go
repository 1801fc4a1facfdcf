package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Inventario-estoque/internal/application/dto"
	"github.com/jhoicas/Inventario-estoque/internal/domain/entity"
)

func newStockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Entradas y salidas de stock",
	}
	cmd.AddCommand(
		newMovementCmd("in <id> <cantidad>", "Registra una entrada", entity.MovementTypeIn),
		newMovementCmd("out <id> <cantidad>", "Registra una salida", entity.MovementTypeOut),
	)
	return cmd
}

func newMovementCmd(use, short, movementType string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, a *app, sess entity.Session) error {
				in := dto.MovementRequest{ProductID: args[0], Quantity: args[1]}
				var (
					res *dto.MovementResponse
					err error
				)
				if movementType == entity.MovementTypeIn {
					res, err = a.stock.ReceiveStock(ctx, sess, in)
				} else {
					res, err = a.stock.IssueStock(ctx, sess, in)
				}
				if err != nil {
					return err
				}
				msg := fmt.Sprintf("movimiento registrado: saldo %d", res.NewQuantity)
				if res.LowStock {
					msg += " (en o bajo el mínimo)"
				}
				printOK(cmd.OutOrStdout(), msg)
				return nil
			})
		},
	}
}
