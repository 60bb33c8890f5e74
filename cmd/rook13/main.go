package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Play    PlayCmd          `cmd:"" help:"Play an interactive game against three bots"`
	Sim     SimCmd           `cmd:"" help:"Run bot-vs-bot simulations"`
	Serve   ServeCmd         `cmd:"" help:"Run the WebSocket game server"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("rook13"),
		kong.Description("Partnership Rook against three bots"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
