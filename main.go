package main

import (
	"os"

	"github.com/alecthomas/kong"
	_ "github.com/joho/godotenv/autoload"

	"fuzzyjoin/internal/logging"
)

var cli struct {
	LogLevel string `help:"Log level (debug, info, warn, error)." default:"info" env:"FUZZYJOIN_LOG_LEVEL"`
	Pretty   bool   `help:"Human readable logs on stderr." env:"FUZZYJOIN_LOG_PRETTY"`

	Link    LinkCmd    `cmd:"" help:"Join a source file to a reference file by fuzzy match"`
	Pair    PairCmd    `cmd:"" help:"Compare two columns of the same row, e.g. company against domain"`
	Profile ProfileCmd `cmd:"" help:"Create a profile for CSV"`
	Suggest SuggestCmd `cmd:"" help:"Rank column pairs of two files as candidate match fields"`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("fuzzyjoin"),
		kong.Description("Link records between two tables when no exact key exists."),
	)
	log := logging.New(os.Stderr, cli.LogLevel, cli.Pretty)
	err := ctx.Run(&log)
	ctx.FatalIfErrorf(describe(err))
}
