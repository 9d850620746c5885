// cmd/mathsprint-tui/main.go
//
// Terminal client for Math Sprint. Runs the same engine and score store as
// the server, against the same SQLite file, but renders locally with Bubble
// Tea. Logs go to a file (or nowhere) because the TUI owns the terminal.

package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"mathsprint/internal/game"
	"mathsprint/internal/kv"
	"mathsprint/internal/scores"
	"mathsprint/internal/tui"
)

func main() {
	_ = godotenv.Load()

	logSink := io.Discard
	if path := os.Getenv("MATHSPRINT_LOG"); path != "" {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			defer f.Close()
			logSink = f
		}
	}
	log.Logger = zerolog.New(logSink).With().Timestamp().Logger()

	store, err := kv.OpenSQLite(getEnv("MATHSPRINT_DB", "./data/mathsprint.db"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "open score database:", err)
		os.Exit(1)
	}
	defer store.Close()

	machine := game.NewMachine(nil, scores.NewStore(store))
	if _, err := tea.NewProgram(tui.New(machine), tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "tui exited:", err)
		os.Exit(1)
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
