package domain

type Config struct {
	Version          string
	ConfigPath       string
	DownloadLocation string                     `yaml:"downloadLocation"`
	NamingTemplate   string                     `yaml:"namingTemplate"`
	OutputFormat     string                     `yaml:"outputFormat"`
	CacheFolder      string                     `yaml:"cacheFolder"`
	Email            string                     `yaml:"email"`
	Password         string                     `yaml:"password"`
	LoginAttempts    int                        `yaml:"loginAttempts"`
	MetadataCacheTTL int                        `yaml:"metadataCacheTTL"` // in seconds
	PageConcurrency  int                        `yaml:"pageConcurrency"`
	CheckInterval    int                        `yaml:"checkInterval"`
	MonitoredManga   map[string]*MonitoredManga `yaml:"monitoredManga"`
	LogPath          string                     `yaml:"logPath"`
	LogLevel         string                     `yaml:"LogLevel"`
	LogMaxSize       int                        `yaml:"logMaxSize"` // in megabytes
	LogMaxBackups    int                        `yaml:"logMaxBackups"`
}

type MonitoredManga struct {
	URL string `yaml:"url"`
}
