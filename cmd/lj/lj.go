package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/signadot/laxjson/ir"
	"github.com/signadot/laxjson/parse"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
)

func ljMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	switch cfg.Color {
	case "on":
		// fatih/color strips escapes on non-terminals unless forced
		color.NoColor = false
	case "auto", "off":
	default:
		return fmt.Errorf("%w: -color must be auto, on, or off, got %q", cli.ErrUsage, cfg.Color)
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// readInput returns the raw bytes of the named file, or of stdin for ""
// and "-".
func readInput(arg string) ([]byte, error) {
	if arg == "" || arg == "-" {
		return io.ReadAll(os.Stdin)
	}
	f, err := os.Open(arg)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", arg, err)
	}
	defer f.Close()
	return io.ReadAll(f)
}

// readDoc reads and parses one document.
func readDoc(arg string) (*ir.Node, error) {
	d, err := readInput(arg)
	if err != nil {
		return nil, err
	}
	y, err := parse.Parse(d)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", argName(arg), err)
	}
	return y, nil
}

func argName(arg string) string {
	if arg == "" || arg == "-" {
		return "stdin"
	}
	return arg
}

// orStdin substitutes stdin when no file arguments were given.
func orStdin(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}
