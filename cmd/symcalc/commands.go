package main

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/njchilds90/symcalc"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// parseExpr accepts a JSON expression object, a number literal or a bare
// variable name.
func parseExpr(s string) (*symcalc.Expr, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "{") {
		return symcalc.FromJSON([]byte(s))
	}
	if n, err := symcalc.ParseNumber(s); err == nil {
		return symcalc.FromNumber(n), nil
	}
	if identifier.MatchString(s) {
		return symcalc.NewVariable(s), nil
	}
	return nil, errors.Errorf("cannot parse expression %q", s)
}

func addExprFlags(fs *pflag.FlagSet) {
	fs.String("expr", "", "expression (JSON object, number or variable name)")
	fs.String("var", "x", "variable")
}

func exprAndVar(vip *viper.Viper) (*symcalc.Expr, symcalc.Variable, error) {
	raw := vip.GetString("expr")
	if raw == "" {
		return nil, symcalc.Variable{}, errors.New("--expr is required")
	}
	e, err := parseExpr(raw)
	if err != nil {
		return nil, symcalc.Variable{}, err
	}
	name := vip.GetString("var")
	if !identifier.MatchString(name) {
		return nil, symcalc.Variable{}, errors.Errorf("invalid variable %q", name)
	}
	return e, symcalc.Variable{Name: name}, nil
}

func newTaylorCommand(vip *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taylor",
		Short: "Taylor expansion of an expression",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, v, err := exprAndVar(vip)
			if err != nil {
				return err
			}
			at, err := parseExpr(vip.GetString("at"))
			if err != nil {
				return errors.WithMessage(err, "--at")
			}
			p, err := e.TaylorExpansion(v, at, vip.GetUint64("order"))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p)
			return nil
		},
	}
	addExprFlags(cmd.Flags())
	cmd.Flags().String("at", "0", "expansion point")
	cmd.Flags().Uint64("order", symcalc.DefaultTaylorOrder, "highest order computed")
	return cmd
}

func newLimitCommand(vip *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "limit",
		Short: "Classify the limit of an expression",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, v, err := exprAndVar(vip)
			if err != nil {
				return err
			}
			to, err := parseExpr(vip.GetString("to"))
			if err != nil {
				return errors.WithMessage(err, "--to")
			}
			c, err := e.Limit(v, to, vip.GetUint64("max-order"))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), c)
			return nil
		},
	}
	addExprFlags(cmd.Flags())
	cmd.Flags().String("to", "0", "limit point")
	cmd.Flags().Uint64("max-order", symcalc.DefaultMaxOrder, "derivative budget of the L'Hopital fallback")
	return cmd
}

func newDeriveCommand(vip *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Differentiate an expression",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, v, err := exprAndVar(vip)
			if err != nil {
				return err
			}
			n := vip.GetInt("n")
			if n < 0 || uint64(n) > symcalc.MaxDerivativeOrder {
				return errors.Errorf("--n must be between 0 and %d, got %d", symcalc.MaxDerivativeOrder, n)
			}
			fmt.Fprintln(cmd.OutOrStdout(), e.DerivativeN(v, n))
			return nil
		},
	}
	addExprFlags(cmd.Flags())
	cmd.Flags().Int("n", 1, "order of the derivative")
	return cmd
}
