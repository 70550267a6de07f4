package cmd

import (
	"fmt"
	"os"
	"strings"

	"mangasio/internal/buildinfo"
	"mangasio/internal/config"
	"mangasio/internal/logger"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <url>",
	Short: "Print the metadata of the chapter behind a reader url",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		cfg := config.New(configPath, buildinfo.Version)
		log := logger.New(cfg.Config)

		plugin, err := newPlugin(args[0], cfg.Config, log.Zerolog())
		if err != nil {
			log.Fatal().Err(err).Msgf("could not handle %s", args[0])
		}

		if err := plugin.Authenticate(ctx); err != nil {
			log.Fatal().Err(err).Msgf("could not authenticate with %s", plugin)
		}

		infos := plugin.GetBookInfos(ctx)
		if infos.Empty() {
			fmt.Println("No chapter found for", args[0])
			os.Exit(1)
		}

		name, contentPath := chapterPath(cfg.Config, infos)

		fmt.Println("Title:", infos.Title)
		fmt.Println("Authors:", infos.Authors)
		fmt.Println("Volume:", infos.Volume)
		fmt.Println("Chapter:", infos.Chapter)
		fmt.Println("Chapter title:", infos.ChapterTitle)
		fmt.Println("Pages:", infos.Pages)
		fmt.Println("Read direction:", infos.ReadDirection)
		fmt.Println("Description:", infos.Description)

		chapters := make([]string, 0, len(infos.SeriesChapters))
		for _, n := range infos.SeriesChapters {
			chapters = append(chapters, formatChapter(n))
		}
		fmt.Println("Series chapters:", strings.Join(chapters, ", "))
		fmt.Println("Name:", name)
		fmt.Println("Path:", contentPath)

		if !showPages {
			return
		}

		fmt.Println()
		for i := range infos.PageURLs {
			url := plugin.PageURL(ctx, i)
			if url == "" {
				url = "-"
			}
			fmt.Printf("%03d %s\n", i+1, url)
		}
	},
}
