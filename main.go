/* main.go
 * The "main" method for running the matchmaking bot
 * Usage: go run . serve [configs...] [--debug] [--test]
 * Authors: Ahasuerus
 */

package main

import (
	"fmt"
	"os"
	"time"

	"ravens-nest/config"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var CLI struct {
	Debug bool `help:"Whether to enable debug logging."`
	Test  bool `help:"Run with the beta bot token instead of the production one."`

	Serve struct {
		Configs []string `arg:"" optional:"" name:"configs" help:"Configuration files applied over the defaults." type:"existingfile"`
	} `cmd:"" default:"withargs" help:"Start the matchmaking bot and web server."`

	Config struct {
	} `cmd:"" help:"Write the default configuration to standard output."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("no .env file loaded, using the environment")
	}

	ctx := kong.Parse(&CLI,
		kong.Name("ravens-nest"),
		kong.Description("skill-based matchmaking for the Ravens Nest community"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	switch ctx.Command() {
	case "serve", "serve <configs>":
		if err := serveCommand(CLI.Serve.Configs, CLI.Test); err != nil {
			writeError(err)
		}
	case "config":
		os.Stdout.Write(config.DEFAULT)
	}
}
