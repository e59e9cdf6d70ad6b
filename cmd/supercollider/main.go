package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"github.com/inful/supercollider/cmd/supercollider/commands"
	"github.com/inful/supercollider/internal/foundation/errors"
	"github.com/inful/supercollider/internal/version"
)

func main() {
	cli := &commands.CLI{}
	global := &commands.Global{Logger: slog.Default()}
	parser := kong.Parse(cli,
		kong.Name("supercollider"),
		kong.Description("Build a style guide from documentation comments in markup, stylesheet and script sources."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(global),
	)

	if err := parser.Run(cli); err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
