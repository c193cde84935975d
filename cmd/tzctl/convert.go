package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ngrash/go-tzrules/internal/zonedecode"
	"github.com/ngrash/go-tzrules/tztext"
)

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <zone file>",
		Short: "Decode a zone and re-emit it in the textual codec",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			id := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			z, err := zonedecode.Decode(id, b)
			if err != nil {
				return fmt.Errorf("decoding %s: %w", args[0], err)
			}
			fmt.Println(tztext.Serialize(z))
			return nil
		},
	}
	return cmd
}
