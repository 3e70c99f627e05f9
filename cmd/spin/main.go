package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Makepad-fr/spinwin/internal/cli"
	"github.com/Makepad-fr/spinwin/internal/config"
	"github.com/Makepad-fr/spinwin/internal/ui"
)

var version = "dev"

func main() {
	// Root flags (apply to every subcommand)
	envFile := flag.String("env", "", "load settings from this .env file")
	theme := flag.String("theme", "", "color theme: classic, neon or mono")
	color := flag.Bool("color", false, "force colors")
	noColor := flag.Bool("no-color", false, "disable colors")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Usage = func() { cli.PrintHelp(flag.CommandLine.Output()) }
	flag.Parse()

	if *showVersion {
		fmt.Println("spin", version)
		return
	}

	var files []string
	if *envFile != "" {
		files = append(files, *envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		ui.Fail(os.Stderr, err.Error())
		os.Exit(2)
	}
	if *theme != "" {
		cfg.Theme = *theme
		if err := cfg.Validate(); err != nil {
			ui.Fail(os.Stderr, err.Error())
			os.Exit(2)
		}
	}
	ui.SetColorForcing(*color, *noColor)
	ui.SetTheme(cfg.Theme)

	// Hand the remaining args to the CLI runner.
	code := cli.Run(flag.Args(), cli.Options{
		Config:  cfg,
		Version: version,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
