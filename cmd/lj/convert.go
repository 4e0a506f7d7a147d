package main

import (
	"fmt"

	"github.com/signadot/laxjson/encode"
	"github.com/signadot/laxjson/gomap"
	"github.com/signadot/laxjson/ir"
	"github.com/signadot/laxjson/parse"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
)

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		return err
	}
	if err := checkFormat(cfg.From); err != nil {
		return err
	}
	if err := checkFormat(cfg.To); err != nil {
		return err
	}
	for _, arg := range orStdin(args) {
		d, err := readInput(arg)
		if err != nil {
			return err
		}
		y, err := decodeAs(cfg.From, arg, d)
		if err != nil {
			return err
		}
		if y == nil {
			continue
		}
		if err := encodeAs(cfg, cc, arg, y); err != nil {
			return err
		}
	}
	return nil
}

func checkFormat(f string) error {
	switch f {
	case "lax", "yaml":
		return nil
	}
	return fmt.Errorf("%w: format must be lax or yaml, got %q", cli.ErrUsage, f)
}

func decodeAs(format, arg string, d []byte) (*ir.Node, error) {
	if format == "lax" {
		y, err := parse.Parse(d)
		if err != nil {
			return nil, fmt.Errorf("error decoding %s: %w", argName(arg), err)
		}
		return y, nil
	}
	var v any
	if err := yaml.Unmarshal(d, &v); err != nil {
		return nil, fmt.Errorf("error decoding yaml %s: %w", argName(arg), err)
	}
	y, err := gomap.ToIR(v)
	if err != nil {
		return nil, fmt.Errorf("error converting %s: %w", argName(arg), err)
	}
	return y, nil
}

func encodeAs(cfg *ConvertConfig, cc *cli.Context, arg string, y *ir.Node) error {
	if cfg.To == "lax" {
		if err := encode.Encode(y, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return fmt.Errorf("error encoding %s: %w", argName(arg), err)
		}
		_, err := cc.Out.Write([]byte("\n"))
		return err
	}
	var v any
	if err := gomap.FromIR(y, &v); err != nil {
		return fmt.Errorf("error converting %s: %w", argName(arg), err)
	}
	out, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("error encoding yaml %s: %w", argName(arg), err)
	}
	_, err = cc.Out.Write(out)
	return err
}
