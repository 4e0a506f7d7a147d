package main

import (
	"errors"
	"fmt"

	"github.com/signadot/laxjson/parse"

	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	failed := 0
	for _, arg := range orStdin(args) {
		d, err := readInput(arg)
		if err != nil {
			return err
		}
		_, perr := parse.Parse(d)
		if perr == nil {
			fmt.Fprintf(cc.Out, "%s: ok\n", argName(arg))
			continue
		}
		failed++
		var serr *parse.SyntaxError
		if !errors.As(perr, &serr) {
			fmt.Fprintf(cc.Out, "%s: %v\n", argName(arg), perr)
			continue
		}
		for i := range serr.Issues {
			fmt.Fprintf(cc.Out, "%s: %s\n", argName(arg), serr.Issues[i].String())
		}
	}
	if failed > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}
