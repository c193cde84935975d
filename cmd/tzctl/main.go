// Command tzctl is a cobra-based CLI wrapping the same inspect/convert/
// diff operations as the standalone tzinspect/tzdiff tools, plus config
// binding (--registry-root/--tzdata-root, also settable via env or a
// config file) via viper.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfg = viper.New()

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tzctl",
		Short: "Inspect, convert, and diff time zone rule sets",
	}

	root.PersistentFlags().String("registry-root", "", "filesystem root containing registry YAML fragments")
	root.PersistentFlags().String("tzdata-root", "", "filesystem root containing compiled TZif files (a zoneinfo tree)")
	cfg.BindPFlag("registry-root", root.PersistentFlags().Lookup("registry-root"))
	cfg.BindPFlag("tzdata-root", root.PersistentFlags().Lookup("tzdata-root"))
	cfg.SetEnvPrefix("TZCTL")
	cfg.AutomaticEnv()
	cfg.SetConfigName("tzctl")
	cfg.AddConfigPath(".")
	_ = cfg.ReadInConfig() // config file is optional; flags/env still apply

	root.AddCommand(newInspectCmd())
	root.AddCommand(newConvertCmd())
	root.AddCommand(newDiffCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newFetchCmd())
	return root
}
