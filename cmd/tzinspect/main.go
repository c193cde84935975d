// Command tzinspect decodes a zone from any of its three on-disk shapes —
// a TZif file, a registry YAML fragment, or the textual codec —
// auto-detected by content, and prints the resulting Zone's rule array.
// This exercises the full decode-to-domain-semantics path that
// cmd/tzinfo's raw byte dump and cmd/tzdiff's structural comparison don't.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ngrash/go-tzrules/internal/zonedecode"
	"github.com/ngrash/go-tzrules/tzzone"
)

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) != 1 {
		fmt.Println("Usage: tzinspect <zone file>")
		os.Exit(1)
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Println("reading file:", err)
		os.Exit(1)
	}

	id := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	z, err := zonedecode.Decode(id, b)
	if err != nil {
		fmt.Println("decoding:", err)
		os.Exit(1)
	}

	printZone(z)
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
