package main

import (
	"io"
	"os"
	"strings"

	"github.com/signadot/laxjson/encode"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Compact bool   `cli:"name=c aliases=compact desc='compact output'"`
	Indent  int    `cli:"name=indent desc='spaces per indent level'"`
	Color   string `cli:"name=color desc='color output: auto, on, off'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) colorEnabled(w io.Writer) bool {
	switch cfg.Color {
	case "on":
		return true
	case "off":
		return false
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	var res []encode.EncodeOption
	if !cfg.Compact {
		res = append(res, encode.EncodeIndent(strings.Repeat(" ", cfg.Indent)))
	}
	if cfg.colorEnabled(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type ViewConfig struct {
	*MainConfig
	View *cli.Command
}

type CheckConfig struct {
	*MainConfig
	Check *cli.Command
}

type ConvertConfig struct {
	*MainConfig
	From string `cli:"name=from desc='input format: lax or yaml'"`
	To   string `cli:"name=to desc='output format: lax or yaml'"`

	Convert *cli.Command
}

type QueryConfig struct {
	*MainConfig
	Query *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig
	PatchFile string `cli:"name=p aliases=patch desc='file holding an RFC 6902 or merge patch'"`

	Patch *cli.Command
}
