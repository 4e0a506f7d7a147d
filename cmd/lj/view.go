package main

import (
	"fmt"

	"github.com/signadot/laxjson/encode"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	for _, arg := range orStdin(args) {
		y, err := readDoc(arg)
		if err != nil {
			return err
		}
		if y == nil {
			continue
		}
		if err := encode.Encode(y, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return fmt.Errorf("error encoding %s: %w", argName(arg), err)
		}
		if _, err := cc.Out.Write([]byte("\n")); err != nil {
			return err
		}
	}
	return nil
}
