package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/midbel/cli"
	"github.com/midbel/readelf/internal/env"
	"github.com/midbel/readelf/internal/logging"
	xenv "github.com/xyproto/env/v2"
)

const rcFile = ".readelfrc"

type options struct {
	Mapped bool
	Wide   bool
	Debug  bool
}

// defaultOptions reads the defaults from the environment once the rc file of
// the user has been exported.
func defaultOptions() options {
	if home, err := os.UserHomeDir(); err == nil {
		if err := env.ExportFile(filepath.Join(home, rcFile)); err != nil {
			log.Printf("%s: %s", rcFile, err)
		}
	}
	return options{
		Mapped: xenv.Bool("READELF_MMAP"),
		Wide:   xenv.Bool("READELF_WIDE"),
		Debug:  xenv.Bool("READELF_DEBUG"),
	}
}

// parseOptions registers the common flags of cmd and parses args.
func parseOptions(cmd *cli.Command, args []string) (options, error) {
	opts := defaultOptions()
	cmd.Flag.BoolVar(&opts.Mapped, "m", opts.Mapped, "memory map input files")
	cmd.Flag.BoolVar(&opts.Wide, "w", opts.Wide, "print addresses on 16 digits")
	cmd.Flag.BoolVar(&opts.Debug, "v", opts.Debug, "enable debug logs")
	if err := cmd.Flag.Parse(args); err != nil {
		return opts, err
	}
	logging.ToggleDebugLogs(opts.Debug)
	return opts, nil
}
