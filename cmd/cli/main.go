package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/code-society-lab/grace/internal/config"
	"github.com/code-society-lab/grace/internal/domain"
	"github.com/code-society-lab/grace/internal/language"
	"github.com/code-society-lab/grace/internal/logging"
	"github.com/code-society-lab/grace/internal/storage"
	"github.com/code-society-lab/grace/internal/storage/seed"
	v "github.com/code-society-lab/grace/internal/version"
)

// app holds what every subcommand needs once the root has loaded config.
type app struct {
	cfg  *config.Config
	repo domain.Repository
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "grace-cli",
		Short:         "Manage " + v.AppName + "'s triggers and puns",
		Version:       v.Release(),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if _, err := logging.Setup(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat}); err != nil {
				return err
			}
			repo, err := storage.Open(cfg.StorageDriver, cfg.StoragePath, cfg.DatabasePath)
			if err != nil {
				return err
			}
			a.cfg, a.repo = cfg, repo
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if a.repo == nil {
				return nil
			}
			return a.repo.Close()
		},
	}

	root.AddCommand(a.triggersCmd(), a.punsCmd(), a.seedCmd())
	return root
}

func (a *app) admin() *language.Admin {
	return language.NewAdmin(a.repo, a.cfg.KeywordTrigger)
}

func printNotice(cmd *cobra.Command, n language.Notice) {
	if n.IsEmpty() {
		return
	}
	out := cmd.OutOrStdout()
	if n.Title != "" {
		fmt.Fprintln(out, n.Title)
	}
	if n.Text != "" {
		fmt.Fprintln(out, n.Text)
	}
}

// noticeRun adapts an admin operation to a cobra RunE.
func noticeRun(fn func(ctx context.Context, args []string) (language.Notice, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		n, err := fn(cmd.Context(), args)
		if err != nil {
			return err
		}
		printNotice(cmd, n)
		return nil
	}
}

func (a *app) triggersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "triggers",
		Short: "List or edit the keyword trigger words",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List trigger words",
			Args:  cobra.NoArgs,
			RunE: noticeRun(func(ctx context.Context, _ []string) (language.Notice, error) {
				return a.admin().ListTriggers(ctx)
			}),
		},
		&cobra.Command{
			Use:   "add <word>",
			Short: "Add a trigger word",
			Args:  cobra.ExactArgs(1),
			RunE: noticeRun(func(ctx context.Context, args []string) (language.Notice, error) {
				return a.admin().AddTrigger(ctx, args[0])
			}),
		},
		&cobra.Command{
			Use:   "remove <word>",
			Short: "Remove a trigger word",
			Args:  cobra.ExactArgs(1),
			RunE: noticeRun(func(ctx context.Context, args []string) (language.Notice, error) {
				return a.admin().RemoveTrigger(ctx, args[0])
			}),
		},
	)
	return cmd
}

func parsePunID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a valid pun id", s)
	}
	return id, nil
}

func (a *app) punsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "puns",
		Short: "List or edit puns and their words",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List puns",
			Args:  cobra.NoArgs,
			RunE: noticeRun(func(ctx context.Context, _ []string) (language.Notice, error) {
				return a.admin().ListPuns(ctx)
			}),
		},
		&cobra.Command{
			Use:   "add <text...>",
			Short: "Add a pun",
			Args:  cobra.MinimumNArgs(1),
			RunE: noticeRun(func(ctx context.Context, args []string) (language.Notice, error) {
				return a.admin().AddPun(ctx, strings.Join(args, " "))
			}),
		},
		&cobra.Command{
			Use:   "remove <id>",
			Short: "Remove a pun",
			Args:  cobra.ExactArgs(1),
			RunE: noticeRun(func(ctx context.Context, args []string) (language.Notice, error) {
				id, err := parsePunID(args[0])
				if err != nil {
					return language.Notice{}, err
				}
				return a.admin().RemovePun(ctx, id)
			}),
		},
		&cobra.Command{
			Use:   "add-word <id> <word> <emoji>",
			Short: "Add a word that triggers a pun",
			Args:  cobra.ExactArgs(3),
			RunE: noticeRun(func(ctx context.Context, args []string) (language.Notice, error) {
				id, err := parsePunID(args[0])
				if err != nil {
					return language.Notice{}, err
				}
				return a.admin().AddPunWord(ctx, id, args[1], args[2])
			}),
		},
		&cobra.Command{
			Use:   "remove-word <id> <word>",
			Short: "Remove a word from a pun",
			Args:  cobra.ExactArgs(2),
			RunE: noticeRun(func(ctx context.Context, args []string) (language.Notice, error) {
				id, err := parsePunID(args[0])
				if err != nil {
					return language.Notice{}, err
				}
				return a.admin().RemovePunWord(ctx, id, args[1])
			}),
		},
	)
	return cmd
}

func (a *app) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed [file]",
		Short: "Create the default triggers and apply an optional seed file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := seed.Apply(ctx, a.repo, seed.Defaults(a.cfg.NameTrigger, a.cfg.KeywordTrigger)); err != nil {
				return err
			}

			path := a.cfg.SeedPath
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				log.Info().Msg("Default triggers seeded")
				return nil
			}

			f, err := seed.Load(path)
			if err != nil {
				return err
			}
			if err := seed.Apply(ctx, a.repo, f); err != nil {
				return err
			}
			log.Info().Str("path", path).Int("triggers", len(f.Triggers)).Int("puns", len(f.Puns)).Msg("Seed applied")
			return nil
		},
	}
}
