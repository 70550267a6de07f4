package cmd

import (
	"fmt"

	"mangasio/internal/auth"
	"mangasio/internal/buildinfo"
	"mangasio/internal/config"
	"mangasio/internal/logger"
	"mangasio/internal/source"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to mangas.io and cache the session token",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		cfg := config.New(configPath, buildinfo.Version)
		log := logger.New(cfg.Config)

		if forceLogin {
			// an empty token is never accepted, the next authentication logs in
			if err := auth.NewTokenCache(cfg.Config.CacheFolder, source.MangasIOCacheKey).Save(""); err != nil {
				log.Fatal().Err(err).Msg("could not reset cached token")
			}
		}

		plugin := source.NewMangasIO("", sourceOptions(cfg.Config, log.Zerolog()))
		if err := plugin.Authenticate(ctx); err != nil {
			log.Fatal().Err(err).Msgf("could not authenticate with %s", plugin)
		}

		fmt.Println("Logged in to", plugin)
	},
}
