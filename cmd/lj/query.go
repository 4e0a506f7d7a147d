package main

import (
	"fmt"

	"github.com/signadot/laxjson/encode"
	"github.com/signadot/laxjson/gomap"

	"github.com/expr-lang/expr"
	"github.com/scott-cotton/cli"
)

func query(cfg *QueryConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Query.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: query requires an expression argument", cli.ErrUsage)
	}
	src := args[0]
	prg, err := expr.Compile(src, expr.Env(map[string]any{"doc": nil}))
	if err != nil {
		return fmt.Errorf("error compiling %q: %w", src, err)
	}
	for _, arg := range orStdin(args[1:]) {
		y, err := readDoc(arg)
		if err != nil {
			return err
		}
		if y == nil {
			return fmt.Errorf("empty document %s", argName(arg))
		}
		var doc any
		if err := gomap.FromIR(y, &doc); err != nil {
			return fmt.Errorf("error converting %s: %w", argName(arg), err)
		}
		res, err := expr.Run(prg, map[string]any{"doc": doc})
		if err != nil {
			return fmt.Errorf("error querying %s: %w", argName(arg), err)
		}
		out, err := gomap.ToIR(res)
		if err != nil {
			return fmt.Errorf("error converting result for %s: %w", argName(arg), err)
		}
		if err := encode.Encode(out, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return fmt.Errorf("error encoding result for %s: %w", argName(arg), err)
		}
		if _, err := cc.Out.Write([]byte("\n")); err != nil {
			return err
		}
	}
	return nil
}
