package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ngrash/go-tzrules/internal/zonedecode"
	"github.com/ngrash/go-tzrules/tzzone"
)

func newInspectCmd() *cobra.Command {
	var bundle string
	cmd := &cobra.Command{
		Use:   "inspect [zone file]",
		Short: "Decode a zone (TZif, registry YAML, or textual codec) and print its rules",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if bundle != "" {
				zones, err := loadBundle(bundle)
				if err != nil {
					return err
				}
				for _, z := range zones {
					printZone(z)
					fmt.Println()
				}
				return nil
			}
			if len(args) != 1 {
				return fmt.Errorf("inspect requires a zone file or --bundle")
			}
			b, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			id := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			z, err := zonedecode.Decode(id, b)
			if err != nil {
				return err
			}
			printZone(z)
			return nil
		},
	}
	cmd.Flags().StringVar(&bundle, "bundle", "", "YAML zone-bundle manifest to inspect instead of a single file")
	return cmd
}

func printZone(z *tzzone.Zone) {
	fmt.Println("id:", z.ID())
	fmt.Println("baseUtcOffset:", z.BaseUtcOffset())
	fmt.Println("standardName:", z.StandardName())
	fmt.Println("daylightName:", z.DaylightName())
	fmt.Println("supportsDST:", z.SupportsDST())
	fmt.Println("rules:")
	for i, r := range z.Rules() {
		fmt.Printf("  [%d] %s .. %s  baseDelta=%dm daylightDelta=%dm noTransitions=%v\n",
			i, r.DateStart, r.DateEnd, r.BaseUtcOffsetDelta, r.DaylightDelta, r.NoDaylightTransitions)
	}
}
