package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/calebhart/seedpost/internal/cli"
	"github.com/calebhart/seedpost/internal/generate"
	"github.com/calebhart/seedpost/internal/llm"
	"github.com/calebhart/seedpost/internal/score"
	"github.com/calebhart/seedpost/internal/service"
	"github.com/calebhart/seedpost/internal/state"
)

func main() {
	_ = godotenv.Load()

	llmCfg := llm.LoadConfig()
	observer := llm.Observer(llm.NoopObserver{})
	if llmCfg.LogCalls {
		observer = llm.NewLogObserver(os.Stderr)
	}
	client := llm.NewChatClient(llmCfg, observer)

	var store state.Store
	if path := os.Getenv("SEEDPOST_DB"); path != "" {
		s, err := state.OpenSQLiteStore(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "opening state db: %v\n", err)
			os.Exit(1)
		}
		defer s.Close()
		store = s
	} else {
		store = state.NewMemoryStore()
	}

	opts := generate.DefaultOptions()
	opts.Logf = log.Printf
	if path := os.Getenv("SEEDPOST_WEIGHTS"); path != "" {
		weights, err := score.LoadWeights(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "loading score weights: %v\n", err)
			os.Exit(1)
		}
		opts.Weights = weights
	}

	pipeline := generate.NewPipeline(client, opts)
	svc := service.NewCalendarService(pipeline, store)

	root := cli.NewRootCmd(&cli.App{Calendars: svc})
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
