package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/njchilds90/gopoly"
)

func (a *app) showCmd() *cobra.Command {
	var p []string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the canonical form of a polynomial",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			poly, err := buildPoly(p, a.cfg.Poly.Strict)
			if err != nil {
				return err
			}
			return a.print(cmd, poly)
		},
	}
	cmd.Flags().StringArrayVar(&p, "p", nil, "Term coef:exp (repeatable)")
	return cmd
}

func (a *app) addCmd() *cobra.Command {
	return a.binaryCmd("add", "Print p + q", (*gopoly.Polynomial).Add)
}

func (a *app) mulCmd() *cobra.Command {
	return a.binaryCmd("mul", "Print p * q", (*gopoly.Polynomial).Multiply)
}

func (a *app) binaryCmd(use, short string, op func(p, q *gopoly.Polynomial) *gopoly.Polynomial) *cobra.Command {
	var p, q []string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			left, err := buildPoly(p, a.cfg.Poly.Strict)
			if err != nil {
				return fmt.Errorf("--p: %w", err)
			}
			right, err := buildPoly(q, a.cfg.Poly.Strict)
			if err != nil {
				return fmt.Errorf("--q: %w", err)
			}
			a.logger.Debug("binary operation",
				zap.String("op", use),
				zap.Stringer("p", left),
				zap.Stringer("q", right),
			)
			return a.print(cmd, op(left, right))
		},
	}
	cmd.Flags().StringArrayVar(&p, "p", nil, "Term of p as coef:exp (repeatable)")
	cmd.Flags().StringArrayVar(&q, "q", nil, "Term of q as coef:exp (repeatable)")
	return cmd
}

func (a *app) diffCmd() *cobra.Command {
	var (
		p []string
		n int
	)
	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Print the n-th derivative of p",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if n < 0 {
				return fmt.Errorf("--n must be non-negative, got %d", n)
			}
			poly, err := buildPoly(p, a.cfg.Poly.Strict)
			if err != nil {
				return err
			}
			return a.print(cmd, poly.DerivativeN(n))
		},
	}
	cmd.Flags().StringArrayVar(&p, "p", nil, "Term coef:exp (repeatable)")
	cmd.Flags().IntVar(&n, "n", 1, "Derivative order")
	return cmd
}

func (a *app) evalCmd() *cobra.Command {
	var (
		p []string
		x int
	)
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Print the value of p at integer x",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			poly, err := buildPoly(p, a.cfg.Poly.Strict)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), poly.Eval(x))
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&p, "p", nil, "Term coef:exp (repeatable)")
	cmd.Flags().IntVar(&x, "x", 0, "Evaluation point")
	return cmd
}

func (a *app) print(cmd *cobra.Command, p *gopoly.Polynomial) error {
	out := cmd.OutOrStdout()
	switch a.output {
	case "text":
		fmt.Fprintln(out, p.Format(a.cfg.Poly.Variable))
	case "latex":
		fmt.Fprintln(out, p.LaTeX())
	case "json":
		s, err := gopoly.ToJSON(p)
		if err != nil {
			return fmt.Errorf("failed to encode polynomial: %w", err)
		}
		fmt.Fprintln(out, s)
	default:
		return fmt.Errorf("unknown output format %q (valid: text, latex, json)", a.output)
	}
	return nil
}
