// cmd/discord/main.go
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/code-society-lab/grace/datastore"
	"github.com/code-society-lab/grace/internal/commands/general"
	langcmd "github.com/code-society-lab/grace/internal/commands/language"
	"github.com/code-society-lab/grace/internal/config"
	"github.com/code-society-lab/grace/internal/core"
	"github.com/code-society-lab/grace/internal/discord"
	"github.com/code-society-lab/grace/internal/domain"
	"github.com/code-society-lab/grace/internal/github"
	"github.com/code-society-lab/grace/internal/httpserver"
	"github.com/code-society-lab/grace/internal/language"
	"github.com/code-society-lab/grace/internal/logging"
	"github.com/code-society-lab/grace/internal/metrics"
	"github.com/code-society-lab/grace/internal/sentiment"
	"github.com/code-society-lab/grace/internal/storage"
	"github.com/code-society-lab/grace/internal/storage/seed"
	"github.com/code-society-lab/grace/internal/tokenize"
	v "github.com/code-society-lab/grace/internal/version"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Discord bot failed")
	}
	log.Info().Msg("Discord bot exited cleanly")
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.ValidateBot(); err != nil {
		return err
	}

	closer, err := logging.Setup(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err != nil {
		return err
	}
	defer closer.Close()

	log.Info().Str("release", v.Release()).Msgf("Starting %v bot...", v.AppName)

	color, _ := cfg.EmbedColor()
	core.EmbedColor = color

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	repo, err := storage.Open(cfg.StorageDriver, cfg.StoragePath, cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := applySeeds(ctx, cfg, repo); err != nil {
		return err
	}

	reg := metrics.NewRegistry()
	m := metrics.New(reg)

	dg, err := discord.NewSession(cfg.DiscordToken)
	if err != nil {
		return err
	}

	reactor := language.NewReactor(
		language.ReactorConfig{NameTrigger: cfg.NameTrigger, KeywordTrigger: cfg.KeywordTrigger},
		repo,
		discord.NewChat(dg),
		tokenize.New(),
		sentiment.NewClassifier(sentiment.NewVader()),
		m,
	)

	registry := core.NewRegistry()
	mws := []core.Middleware{
		core.WithUserPermissionCheck(),
		core.WithCommandLogger(m),
	}
	general.Register(registry, cfg.CommandPrefix, github.New(cfg.GitHubToken), mws...)
	langcmd.Register(registry, language.NewAdmin(repo, cfg.KeywordTrigger), cfg.CommandPrefix,
		append([]core.Middleware{core.WithGuildOnly()}, mws...)...)

	var hashes discord.HashStore
	if cfg.CommandCachePath != "" {
		ds, err := datastore.New(cfg.CommandCachePath)
		if err != nil {
			return err
		}
		defer ds.Close()
		hashes = discord.NewDataStoreHashes(ds)
	}

	bot := discord.New(dg, discord.Options{
		Prefix:            cfg.CommandPrefix,
		InitSlashCommands: cfg.InitSlashCommands,
		GuildBlacklist:    cfg.DiscordGuildBlacklist,
	}, registry, reactor, hashes)

	errCh := make(chan error, 2)
	running := 1
	if cfg.HTTPAddr != "" {
		srv := httpserver.New(cfg.HTTPAddr, bot.Ready, metrics.Handler(reg))
		running++
		go func() { errCh <- srv.Run(ctx) }()
	}
	go func() { errCh <- bot.Run(ctx) }()

	// The first failure stops the other runner; storage closes after both return.
	var runErr error
	for range running {
		if err := <-errCh; err != nil && runErr == nil {
			runErr = err
			cancel()
		}
	}
	if runErr == nil {
		log.Info().Msg("Shutting down...")
	}
	return runErr
}

func applySeeds(ctx context.Context, cfg *config.Config, repo domain.Repository) error {
	if err := seed.Apply(ctx, repo, seed.Defaults(cfg.NameTrigger, cfg.KeywordTrigger)); err != nil {
		return err
	}
	if cfg.SeedPath == "" {
		return nil
	}

	f, err := seed.Load(cfg.SeedPath)
	if errors.Is(err, os.ErrNotExist) {
		log.Warn().Str("path", cfg.SeedPath).Msg("Seed file not found, skipping")
		return nil
	}
	if err != nil {
		return err
	}
	return seed.Apply(ctx, repo, f)
}
