package config

import "path/filepath"

const (
	defaultWorkDir        = "~/.local/share/audiocut/work"
	defaultLogDir         = "~/.local/share/audiocut/logs"
	defaultOutputTemplate = "{source}-cut"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir: defaultWorkDir,
			LogDir:  defaultLogDir,
		},
		Output: Output{
			Template: defaultOutputTemplate,
		},
		TableCache: TableCache{
			Enabled: true,
			Path:    filepath.Join(defaultCacheDir(), "tables.db"),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
