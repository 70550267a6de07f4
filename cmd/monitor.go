package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"mangasio/internal/buildinfo"
	"mangasio/internal/config"
	"mangasio/internal/domain"
	"mangasio/internal/files"
	"mangasio/internal/logger"
	"mangasio/internal/parse"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Monitor the configured manga for new chapters",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// read config
		cfg := config.New(configPath, buildinfo.Version)

		// init new logger
		log := logger.New(cfg.Config)

		if err := cfg.UpdateConfig(); err != nil {
			log.Error().Err(err).Msgf("error updating config")
		}

		// init dynamic config
		cfg.DynamicReload(log)

		if err := files.IsValidLocation(cfg.Config.DownloadLocation); err != nil {
			log.Fatal().Err(err).Msgf("invalid download location")
		}

		var plugins []domain.Plugin

		for mangaName, monitoredManga := range cfg.Config.MonitoredManga {
			p, err := newPlugin(monitoredManga.URL, cfg.Config, log.Zerolog())
			if err != nil {
				log.Error().Err(err).Msgf("unusable monitored manga %s", mangaName)
				continue
			}

			// the first call logs in, the others reuse the cached token
			if err := p.Authenticate(ctx); err != nil {
				log.Fatal().Err(err).Msgf("could not authenticate with %s", p)
			}

			plugins = append(plugins, p)
		}

		log.Info().Int("manga", len(plugins)).Msg("starting to monitor configured manga")

		interval := time.Duration(cfg.Config.CheckInterval) * time.Minute
		if interval <= 0 {
			interval = 15 * time.Minute
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		wg := sync.WaitGroup{}
		quit := make(chan bool, 1)

		check := func() {
			runLog := log.With().Str("run", uuid.NewString()).Logger()

			for _, p := range plugins {
				wg.Add(1)

				go func() {
					defer wg.Done()
					checkLatest(ctx, cfg.Config, p, runLog)
				}()
			}

			wg.Wait()
		}

		go func() {
			check()

			for {
				select {
				case <-quit:
					return
				case <-ticker.C:
					check()
				}
			}
		}()

		// set up a channel to catch signals for graceful shutdown
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)

		fmt.Printf("received signal: %s, stopping monitoring.\n", <-sigCh)
		quit <- true
		cancel()
		wg.Wait()
	},
}

// checkLatest downloads the latest chapter of the series p points into if it
// is not on disk yet.
func checkLatest(ctx context.Context, cfg *domain.Config, p domain.Plugin, log zerolog.Logger) {
	infos := p.GetBookInfos(ctx)
	if infos.Empty() {
		log.Error().Str("source", p.String()).Msg("error getting manga")
		return
	}
	mLog := log.With().Str("manga", infos.Title).Str("source", p.String()).Logger()

	_, latestNr, err := parse.GetMinAndMax(infos.SeriesChapters)
	if err != nil {
		mLog.Error().Err(err).Msg("error finding latest chapter")
		return
	}

	latestPlugin, latestInfos := p, infos
	if formatChapter(latestNr) != infos.Chapter {
		latestPlugin = p.ForChapter(latestNr)
		latestInfos = latestPlugin.GetBookInfos(ctx)
	}

	if latestInfos.Empty() {
		mLog.Error().Float64("chapter", latestNr).Msg("error getting latest chapter")
		return
	}

	err = downloadChapter(ctx, cfg, latestPlugin, latestInfos, mLog)
	switch {
	case errors.Is(err, errAlreadyDownloaded):
		mLog.Debug().Float64("chapter", latestNr).Msg("chapter has already been downloaded, skipping")
	case err != nil:
		mLog.Error().Err(err).Float64("chapter", latestNr).Msg("error downloading chapter")
	}
}
