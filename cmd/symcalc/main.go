// Command symcalc exposes the symcalc kernel on the command line and as an
// HTTP tool endpoint.
//
// Usage:
//
//	symcalc serve --addr :8080
//	symcalc taylor --expr '{"type":"op","op":"exp","args":[{"type":"var","name":"x"}]}' --var x
//	symcalc limit --expr '...' --var x --to 0 --max-order 4
//	symcalc derive --expr '...' --var x
//
// Every flag can also be set through a SYMCALC_ environment variable, e.g.
// SYMCALC_ADDR or SYMCALC_MAX_ORDER.
package main

import (
	goflag "flag"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"
)

const envPrefix = "SYMCALC"

func main() {
	defer klog.Flush()
	if err := newRootCommand().Execute(); err != nil {
		klog.ErrorS(err, "symcalc failed")
		klog.Flush()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	vip := newViper()
	cmd := &cobra.Command{
		Use:           "symcalc",
		Short:         "Symbolic calculus: aggregation, derivatives, limits and Taylor expansions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return vip.BindPFlags(cmd.Flags())
		},
	}

	fs := goflag.NewFlagSet("klog", goflag.ContinueOnError)
	klog.InitFlags(fs)
	cmd.PersistentFlags().AddGoFlagSet(fs)

	cmd.AddCommand(
		newServeCommand(vip),
		newTaylorCommand(vip),
		newLimitCommand(vip),
		newDeriveCommand(vip),
	)
	return cmd
}

// newViper reads flags first and SYMCALC_* variables as the fallback.
func newViper() *viper.Viper {
	vip := viper.New()
	vip.SetEnvPrefix(envPrefix)
	vip.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vip.AutomaticEnv()
	vip.SetDefault("addr", ":8080")
	vip.SetDefault("max-order", 4)
	vip.SetDefault("order", 5)
	vip.SetDefault("at", "0")
	vip.SetDefault("to", "0")
	return vip
}
