package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/knusbaum/regasm"
	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"
)

// Settings resolve in precedence order: flag, then config file, then
// environment, then built-in default.
type config struct {
	Pool   string `yaml:"pool"`
	Mode   string `yaml:"mode"`
	Output string `yaml:"output"`
}

func main() {
	poolFlag := flag.String("pool", "", "physical register pool, e.g. r8-r15 or r8,r9,r12")
	modeFlag := flag.String("mode", "", "allocation strategy: interval or simple")
	outFlag := flag.String("o", "", "output file (default stdout)")
	cfgFlag := flag.String("c", "", "YAML config file")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Printf("Fatal: Expected file name to open.\n")
		os.Exit(1)
	}

	cfg := config{
		Pool:   env.Str("REGASM_POOL", "r8-r15"),
		Mode:   env.Str("REGASM_MODE", "interval"),
		Output: env.Str("REGASM_OUTPUT", ""),
	}
	if *cfgFlag != "" {
		bs, err := os.ReadFile(*cfgFlag)
		if err != nil {
			log.Fatalf("Failed to read config %s: %s", *cfgFlag, err)
		}
		var fc config
		if err := yaml.Unmarshal(bs, &fc); err != nil {
			log.Fatalf("Failed to parse config %s: %s", *cfgFlag, err)
		}
		if fc.Pool != "" {
			cfg.Pool = fc.Pool
		}
		if fc.Mode != "" {
			cfg.Mode = fc.Mode
		}
		if fc.Output != "" {
			cfg.Output = fc.Output
		}
	}
	if *poolFlag != "" {
		cfg.Pool = *poolFlag
	}
	if *modeFlag != "" {
		cfg.Mode = *modeFlag
	}
	if *outFlag != "" {
		cfg.Output = *outFlag
	}

	pool, err := regasm.ParsePool(cfg.Pool)
	if err != nil {
		log.Fatalf("Bad register pool %q: %s", cfg.Pool, err)
	}

	bs, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to read %s: %s", flag.Arg(0), err)
	}
	p, err := regasm.ParseProgram(string(bs))
	if err != nil {
		log.Fatalf("Failed to parse %s: %s", flag.Arg(0), err)
	}

	switch cfg.Mode {
	case "simple":
		p = regasm.SimpleAllocate(pool, p)
	case "interval":
		p = &regasm.Program{
			Instructions: regasm.Allocate(pool, regasm.SelectFirst, p.Instructions),
			Rodata:       p.Rodata,
		}
	default:
		log.Fatalf("Unknown allocation mode: %q", cfg.Mode)
	}

	if cfg.Output == "" {
		fmt.Print(p.Text())
		return
	}
	if err := os.WriteFile(cfg.Output, []byte(p.Text()), 0644); err != nil {
		log.Fatalf("Failed to write %s: %s", cfg.Output, err)
	}
}
