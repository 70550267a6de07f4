package cmd

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"mangasio/internal/buildinfo"
	"mangasio/internal/config"
	"mangasio/internal/files"
	"mangasio/internal/logger"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var downloadCmd = &cobra.Command{
	Use:   "download <url>",
	Short: "Download the chapter behind a reader url, or a selection of its series",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg := config.New(configPath, buildinfo.Version)

		if cmd.Flags().Changed("downloadDirectory") {
			cfg.Config.DownloadLocation = downloadDirectory
		}
		if cmd.Flags().Changed("naming") {
			cfg.Config.NamingTemplate = naming
		}
		if cmd.Flags().Changed("format") {
			cfg.Config.OutputFormat = outputFormat
		}
		if cfg.Config.DownloadLocation == "" {
			cfg.Config.DownloadLocation = "."
		}

		log := logger.New(cfg.Config)
		runLog := log.With().Str("run", uuid.NewString()).Logger()

		if err := files.IsValidLocation(cfg.Config.DownloadLocation); err != nil {
			log.Fatal().Err(err).Msg("invalid download location")
		}

		plugin, err := newPlugin(args[0], cfg.Config, runLog)
		if err != nil {
			log.Fatal().Err(err).Msgf("could not handle %s", args[0])
		}

		if err := plugin.Authenticate(ctx); err != nil {
			log.Fatal().Err(err).Msgf("could not authenticate with %s", plugin)
		}

		infos := plugin.GetBookInfos(ctx)
		if infos.Empty() {
			runLog.Error().Str("url", args[0]).Msg("no chapter found")
			os.Exit(1)
		}
		mLog := runLog.With().Str("manga", infos.Title).Logger()

		selected, err := selectChapters(infos, chapterSelection{
			chapters: chapterNumbers,
			first:    first,
			latest:   latest,
		})
		if err != nil {
			mLog.Fatal().Err(err).Msg("could not parse chapter selection")
		}

		if len(selected) == 0 {
			mLog.Error().Str("chapters", chapterNumbers).Msg("no matching chapters in range")
			return
		}

		current := infos.Chapter

		wg := sync.WaitGroup{}

		for _, num := range selected {
			wg.Add(1)

			go func() {
				defer wg.Done()

				p, chapterInfos := plugin, infos
				if formatChapter(num) != current {
					p = plugin.ForChapter(num)
					chapterInfos = p.GetBookInfos(ctx)
				}

				if chapterInfos.Empty() {
					mLog.Error().Float64("chapter", num).Msg("no chapter found")
					return
				}

				err := downloadChapter(ctx, cfg.Config, p, chapterInfos, mLog)
				switch {
				case errors.Is(err, errAlreadyDownloaded):
					mLog.Info().Float64("chapter", num).Msg("chapter has already been downloaded, skipping")
				case err != nil:
					mLog.Error().Err(err).Float64("chapter", num).Msg("error downloading chapter")
				}
			}()
		}

		wg.Wait()
	},
}
