// Command wiki serves the read-only 24 character wiki.
package main

import (
	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/mlwelles/modusGraph24Wiki/internal/logging"
)

// CLI is the command-line surface. With no arguments the wiki is served on
// localhost:8080 against a local Neo4j.
type CLI struct {
	Globals

	Serve ServeCmd `cmd:"" default:"withargs" help:"Serve the wiki over HTTP."`
	Check CheckCmd `cmd:"" help:"Query the store once and report how many characters it holds."`
}

// Globals are flags shared by every command.
type Globals struct {
	LogLevel string     `help:"Log level (${enum})." default:"info" enum:"debug,info,warn,error" env:"WIKI_LOG_LEVEL"`
	Dev      bool       `help:"Human-readable development logging." env:"WIKI_DEV"`
	Store    StoreFlags `embed:""`
}

func (g *Globals) logger() (*zap.Logger, error) {
	return logging.New(g.LogLevel, g.Dev)
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("wiki"),
		kong.Description("Read-only web wiki over a graph of 24 characters."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run(&cli.Globals))
}
