// Command tzdiff decodes two zone files all the way down to tzzone.Zone
// and reports whether their rule arrays are identical.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/ngrash/go-tzrules/internal/zonedecode"
	"github.com/ngrash/go-tzrules/tzzone"
)

func main() {
	if err := run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()
	args := flag.Args()
	if len(args) != 2 {
		return fmt.Errorf("usage: tzdiff <zone file A> <zone file B>")
	}

	za, err := decodeZone(args[0])
	if err != nil {
		return fmt.Errorf("decoding %s: %w", args[0], err)
	}
	zb, err := decodeZone(args[1])
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
}

func decodeZone(path string) (*tzzone.Zone, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return zonedecode.Decode(id, b)
}
