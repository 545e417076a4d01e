package main

import (
	"bufio"
	"context"
	"io"
	"math/rand/v2"
	"os"
	"strings"

	"twentyone/internal/command"
	"twentyone/internal/config"
	"twentyone/internal/events"
	"twentyone/internal/ledger"
	"twentyone/internal/logging"
	"twentyone/internal/session"
	"twentyone/internal/store"

	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()
	cliCfg, err := config.LoadCLI()
	if err != nil {
		panic(err)
	}
	storageCfg, err := config.LoadStorage()
	if err != nil {
		panic(err)
	}
	gameCfg, err := config.LoadGame()
	if err != nil {
		panic(err)
	}
	// keep the console free for the game; only errors are logged
	closeLog, err := logging.Init(config.LogConfig{Level: "error"})
	if err != nil {
		panic(err)
	}
	defer closeLog()

	ctx := context.Background()
	accounts, err := store.Open(ctx, storageCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open account store failed")
	}
	defer accounts.Close()

	led := ledger.New(accounts, gameCfg.StartBalance)
	sessions := session.New(led, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), events.Noop{})
	d := command.NewDispatcher(sessions, nil)

	printTitle()
	run(ctx, d, cliCfg, os.Stdin, os.Stdout)
}

// run reads commands from in until EOF or /quit and writes rendered replies
// to out.
func run(ctx context.Context, d *command.Dispatcher, cfg config.CLIConfig, in io.Reader, out io.Writer) {
	pterm.SetDefaultOutput(out)
	pterm.Fprintln(out, renderReply(d.Handle(ctx, cfg.ChatID, cfg.UserID, "/start")))

	scanner := bufio.NewScanner(in)
	for {
		pterm.Fprint(out, pterm.LightCyan("> "))
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" || line == "quit" || line == "exit" {
			pterm.Fprintln(out, "Bye!")
			return
		}
		if !strings.HasPrefix(line, "/") {
			line = "/" + line
		}
		pterm.Fprintln(out, renderReply(d.Handle(ctx, cfg.ChatID, cfg.UserID, line)))
	}
}
