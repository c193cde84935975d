package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ngrash/go-tzrules/tzzone"
	"github.com/ngrash/go-tzrules/tzzone/dirsource"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every zone under --tzdata-root, sorted by offset then name",
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cfg.GetString("tzdata-root")
			if root == "" {
				return fmt.Errorf("list requires --tzdata-root (or TZCTL_TZDATA_ROOT)")
			}
			src := dirsource.New(root)
			cache := tzzone.NewCache()
			zones, err := tzzone.ListSystemZones(cache, src)
			if err != nil {
				return err
			}
			for _, z := range zones {
				fmt.Printf("%-8v %s\n", z.BaseUtcOffset(), z.ID())
			}
			return nil
		},
	}
	return cmd
}
