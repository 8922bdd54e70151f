package main

import (
	"flag"
	"fmt"
	"os"

	"lpec/internal/di"
	"lpec/internal/structures"
)

// Version is set at build time via -ldflags "-X main.Version=..."
var Version = "dev"

func main() {
	var flags structures.CliFlags
	flag.StringVar(&flags.ConfigPath, "config", "/etc/lpec/config.yml", "path to YAML config")
	flag.BoolVar(&flags.DebugMode, "debug", false, "enable debug logging")
	flag.BoolVar(&flags.RunOnce, "once", false, "run a single collection then exit")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("lpec " + Version)
		return
	}

	if _, err := di.InitApp(&flags); err != nil {
		fmt.Fprintf(os.Stderr, "lpec: %v\n", err)
		os.Exit(1)
	}
}
