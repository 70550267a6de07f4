package cmd

var (
	configPath        string
	naming            string
	downloadDirectory string
	outputFormat      string

	chapterNumbers string
	first          bool
	latest         bool

	showPages  bool
	forceLogin bool
)

func initRootFlags() {
	rootCmd.PersistentFlags().StringVarP(
		&configPath,
		"config",
		"c",
		"",
		"specifies the path to your config file",
	)
}

func initDownloadFlags() {
	downloadCmd.Flags().StringVarP(
		&downloadDirectory,
		"downloadDirectory",
		"d",
		"",
		"specifies the directory where you want to save your downloads to. default: downloadLocation from config",
	)
	downloadCmd.Flags().StringVarP(
		&naming,
		"naming",
		"n",
		"",
		"specifies the naming template you want to use for naming chapters. default: namingTemplate from config",
	)
	downloadCmd.Flags().StringVarP(
		&outputFormat,
		"format",
		"f",
		"",
		"specifies the output format, cbz or pdf. default: outputFormat from config",
	)

	downloadCmd.Flags().StringVarP(
		&chapterNumbers,
		"chapters",
		"C",
		"",
		"specifies the chapter numbers of the series you want to download, e.g. 1-5,7.5",
	)
	downloadCmd.Flags().BoolVarP(
		&first,
		"first",
		"1",
		false,
		"download the first chapter of the series",
	)
	downloadCmd.Flags().BoolVarP(
		&latest,
		"latest",
		"L",
		false,
		"download the latest chapter of the series",
	)

	downloadCmd.MarkFlagsMutuallyExclusive("first", "chapters")
	downloadCmd.MarkFlagsMutuallyExclusive("latest", "chapters")
	downloadCmd.MarkFlagsMutuallyExclusive("first", "latest")
}

func initInfoFlags() {
	infoCmd.Flags().BoolVarP(
		&showPages,
		"pages",
		"p",
		false,
		"resolve and print the image url of every page",
	)
}

func initLoginFlags() {
	loginCmd.Flags().BoolVarP(
		&forceLogin,
		"force",
		"F",
		false,
		"discard the cached token and log in again",
	)
}
