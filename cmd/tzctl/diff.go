package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/ngrash/go-tzrules/internal/zonedecode"
	"github.com/ngrash/go-tzrules/tzzone"
)

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <zone file A> <zone file B>",
		Short: "Decode two zones and report whether their rule arrays are identical",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			za, err := decodeZoneFile(args[0])
			if err != nil {
				return fmt.Errorf("decoding %s: %w", args[0], err)
			}
			zb, err := decodeZoneFile(args[1])
			if err != nil {
				return fmt.Errorf("decoding %s: %w", args[1], err)
			}
			if diff := cmp.Diff(za.Rules(), zb.Rules()); diff != "" {
				fmt.Println("rules are different: -A +B")
				fmt.Println(diff)
				return nil
			}
			if za.BaseUtcOffset() != zb.BaseUtcOffset() {
				fmt.Printf("baseUtcOffset differs: A=%v B=%v\n", za.BaseUtcOffset(), zb.BaseUtcOffset())
				return nil
			}
			fmt.Println("zones are identical")
			return nil
		},
	}
	return cmd
}

func decodeZoneFile(path string) (*tzzone.Zone, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return zonedecode.Decode(id, b)
}
