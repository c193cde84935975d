// Command tzconv decodes a zone (TZif file, registry YAML fragment, or
// textual codec) and re-emits it through the textual codec, the same
// operation cmd/tzctl's convert subcommand wraps with cobra/viper.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ngrash/go-tzrules/internal/zonedecode"
	"github.com/ngrash/go-tzrules/tztext"
)

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) != 1 {
		log.Fatal("usage: tzconv <zone file>")
	}

	b, err := os.ReadFile(args[0])
	if err != nil {
		log.Fatalf("read %s: %v", args[0], err)
	}
	id := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	z, err := zonedecode.Decode(id, b)
	if err != nil {
		log.Fatalf("decode %s: %v", args[0], err)
	}
	fmt.Println(tztext.Serialize(z))
}
