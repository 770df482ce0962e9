package main

import (
	"context"
	"io"
	"log"
	"os"

	"chat-engine/internal/config"
	"chat-engine/internal/identity"
	"chat-engine/internal/repository"
	"chat-engine/internal/store"

	"github.com/spf13/cobra"
)

type globalFlags struct {
	seed    string
	actor   string
	verbose bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "chatctl",
		Short: "Inspect and drive a chat directory from the terminal",
		Long: `chatctl loads a chat directory (built-in, YAML seed or Postgres, chosen
the same way as the server) and runs one engine command against it.
Changes live for the duration of the command only.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if !g.verbose {
				log.SetOutput(io.Discard)
			} else {
				log.SetOutput(os.Stderr)
			}
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	root.PersistentFlags().StringVar(&g.seed, "seed", "", "YAML seed file (overrides SEED_FILE and DATABASE_URL)")
	root.PersistentFlags().StringVar(&g.actor, "actor", "", "acting user id (overrides ACTOR_ID)")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable engine logging")

	root.AddCommand(
		newChatsCmd(g),
		newShowCmd(g),
		newSearchCmd(g),
		newSendCmd(g),
		newReactCmd(g),
		newForwardCmd(g),
	)
	return root
}

// openStore builds a store the same way the server does.
func openStore(ctx context.Context, g *globalFlags) (*store.Store, error) {
	cfg := config.FromEnv()
	if g.seed != "" {
		cfg.SeedFile = g.seed
		cfg.DatabaseURL = ""
	}
	if g.actor != "" {
		cfg.ActorID = g.actor
	}

	dir, release, err := repository.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer release()

	users, chats, err := dir.Load(ctx)
	if err != nil {
		return nil, err
	}
	return store.New(users, chats, store.Options{
		Actor:      identity.Static(cfg.ActorID),
		EditWindow: cfg.EditWindow,
		Embedded:   cfg.Embedded,
	}), nil
}
