package main

import (
	"fmt"

	"github.com/signadot/laxjson"
	"github.com/signadot/laxjson/encode"
	"github.com/signadot/laxjson/ir"

	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.PatchFile == "" {
		return fmt.Errorf("%w: patch requires -p <patchfile>", cli.ErrUsage)
	}
	p, err := readDoc(cfg.PatchFile)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("empty patch %s", argName(cfg.PatchFile))
	}
	for _, arg := range orStdin(args) {
		doc, err := readDoc(arg)
		if err != nil {
			return err
		}
		if doc == nil {
			return fmt.Errorf("empty document %s", argName(arg))
		}
		var res *ir.Node
		// an operation array means RFC 6902, anything else a merge patch
		if p.IsArray() {
			res, err = laxjson.ApplyPatch(doc, p)
		} else {
			res, err = laxjson.ApplyMergePatch(doc, p)
		}
		if err != nil {
			return fmt.Errorf("error patching %s: %w", argName(arg), err)
		}
		if err := encode.Encode(res, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return fmt.Errorf("error encoding %s: %w", argName(arg), err)
		}
		if _, err := cc.Out.Write([]byte("\n")); err != nil {
			return err
		}
	}
	return nil
}
