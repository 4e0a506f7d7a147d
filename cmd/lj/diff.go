package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/signadot/laxjson/encode"
	"github.com/signadot/laxjson/ir"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires two arguments", cli.ErrUsage)
	}
	a, err := readDoc(args[0])
	if err != nil {
		return err
	}
	b, err := readDoc(args[1])
	if err != nil {
		return err
	}
	aText, bText := canonical(a), canonical(b)
	if aText == bText {
		return nil
	}
	dmp := diffpatch.New()
	c1, c2, lines := dmp.DiffLinesToChars(aText, bText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(c1, c2, false), lines)
	if err := writeDiffs(cc.Out, diffs, cfg.colorEnabled(cc.Out)); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}

// canonical renders a document in a fixed indented form so that the text
// diff tracks structure rather than input formatting.
func canonical(y *ir.Node) string {
	if y == nil {
		return ""
	}
	return encode.MustString(y, encode.EncodeIndent("  ")) + "\n"
}

func writeDiffs(w io.Writer, diffs []diffpatch.Diff, colored bool) error {
	paintDel, paintIns := fmt.Sprintf, fmt.Sprintf
	if colored {
		paintDel = color.New(color.FgRed).SprintfFunc()
		paintIns = color.New(color.FgGreen).SprintfFunc()
	}
	for _, d := range diffs {
		prefix, paint := " ", fmt.Sprintf
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix, paint = "-", paintDel
		case diffpatch.DiffInsert:
			prefix, paint = "+", paintIns
		}
		text := strings.TrimSuffix(d.Text, "\n")
		for _, line := range strings.Split(text, "\n") {
			if _, err := fmt.Fprintln(w, paint("%s%s", prefix, line)); err != nil {
				return err
			}
		}
	}
	return nil
}
