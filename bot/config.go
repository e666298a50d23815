package bot

import coreconfig "github.com/m3rciful/ginabot/core/config"

// LessonConfig points at an optional catalog override.
type LessonConfig struct {
	CatalogPath string `yaml:"catalog_path" envconfig:"LESSON_CATALOG_PATH"`
}

// Config is the application configuration: the shared core plus lesson settings.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Lesson LessonConfig `yaml:"lesson"`
}

// CoreConfig exposes the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config { return &c.Config }

// LoadConfig reads the optional YAML file at path, overlays the environment and validates the result.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if err := coreconfig.Load(path, &cfg, &cfg.Config); err != nil {
		return nil, err
	}
	return &cfg, nil
}
