package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/knusbaum/regasm"
)

// radump parses assembly files and prints the program model and the
// live scopes the allocator would see. No rewriting happens here.

func main() {
	verbose := flag.Bool("v", false, "dump the raw program model")
	flag.Parse()

	if flag.NArg() <= 0 {
		fmt.Printf("Fatal: Expected file name to open.\n")
		os.Exit(1)
	}

	for i := 0; i < flag.NArg(); i++ {
		arg := flag.Arg(i)
		bs, err := os.ReadFile(arg)
		if err != nil {
			fmt.Printf("Failed to read %s: %s\n", arg, err)
			os.Exit(1)
		}
		p, err := regasm.ParseProgram(string(bs))
		if err != nil {
			fmt.Printf("Failed to parse %s: %s\n", arg, err)
			os.Exit(1)
		}

		fmt.Printf("Read from %s\n", arg)
		fmt.Printf("\tRodata: %d lines\n", len(p.Rodata))
		fmt.Printf("\tInstructions:\n")
		for idx, in := range p.Instructions {
			for _, l := range in.Labels {
				fmt.Printf("\t\t%s:\n", l)
			}
			fmt.Printf("\t\t%4d %s %v\n", idx, in.Op, in.Operands)
		}
		fmt.Printf("\tScopes:\n")
		for _, s := range regasm.Scopes(p.Instructions) {
			fmt.Printf("\t\t%v live over [%d, %d]\n", s.Reg, s.Start, s.End)
		}
		if *verbose {
			spew.Dump(p)
		}
	}
}
