package config

// Config is the top-level scholia configuration, corresponding to .scholia.yml.
type Config struct {
	ContentDir string       `yaml:"content_dir" koanf:"content_dir"`
	OutputDir  string       `yaml:"output_dir" koanf:"output_dir"`
	PublicDir  string       `yaml:"public_dir" koanf:"public_dir"`
	DataDir    string       `yaml:"data_dir" koanf:"data_dir"`
	Site       SiteConfig   `yaml:"site" koanf:"site"`
	Server     ServerConfig `yaml:"server" koanf:"server"`
	Reader     ReaderConfig `yaml:"reader" koanf:"reader"`
	Log        LogConfig    `yaml:"log" koanf:"log"`
}

// SiteConfig holds presentation settings shared by every page.
type SiteConfig struct {
	Title   string `yaml:"title" koanf:"title"`
	BaseURL string `yaml:"base_url" koanf:"base_url"`
}

// ServerConfig holds settings for scholia serve.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	Watch           bool `yaml:"watch" koanf:"watch"`
}

// ReaderConfig tunes the in-browser reader. Its values travel to the
// browser in each volume manifest.
type ReaderConfig struct {
	LookAheadPx          float64 `yaml:"look_ahead_px" koanf:"look_ahead_px"`
	LastSectionViewports float64 `yaml:"last_section_viewports" koanf:"last_section_viewports"`
	FadeMS               int     `yaml:"fade_ms" koanf:"fade_ms"`
	TruncateAt           int     `yaml:"truncate_at" koanf:"truncate_at"`
}

// LogConfig selects the logger level and encoding.
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
}

// Log formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// DefaultConfigFile is the config file looked up in the working directory.
const DefaultConfigFile = ".scholia.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ContentDir: "content",
		OutputDir:  "dist",
		PublicDir:  "public",
		DataDir:    ".scholia",
		Site: SiteConfig{
			Title: "Renaissance Research Labs",
		},
		Server: ServerConfig{
			Port: 8080,
		},
		Reader: ReaderConfig{
			LookAheadPx:          200,
			LastSectionViewports: 2,
			FadeMS:               200,
			TruncateAt:           280,
		},
		Log: LogConfig{
			Level:  "info",
			Format: FormatJSON,
		},
	}
}
