package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"

	"github.com/wgdzlh/resutils/log"
)

// Config holds the toolbox configuration.
type Config struct {
	Classify  ClassifyConfig  `yaml:"classify" mapstructure:"classify"`
	Raster    RasterConfig    `yaml:"raster" mapstructure:"raster"`
	Indicator IndicatorConfig `yaml:"indicator" mapstructure:"indicator"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// ClassifyConfig configures the quantile classifier.
type ClassifyConfig struct {
	Quantiles      int     `yaml:"quantiles" mapstructure:"quantiles"`
	Precision      int     `yaml:"precision" mapstructure:"precision"`
	MaxExtraDigits int     `yaml:"max_extra_digits" mapstructure:"max_extra_digits"`
	Palette        string  `yaml:"palette" mapstructure:"palette"`
	Opacity        float64 `yaml:"opacity" mapstructure:"opacity"`
}

// RasterConfig configures raster output.
type RasterConfig struct {
	CreationOptions []string `yaml:"creation_options" mapstructure:"creation_options"`
	TmpDir          string   `yaml:"tmp_dir" mapstructure:"tmp_dir"`
}

// IndicatorConfig configures the indicator aggregator.
type IndicatorConfig struct {
	EnergyUnit string `yaml:"energy_unit" mapstructure:"energy_unit"`
	PowerShift int    `yaml:"power_shift" mapstructure:"power_shift"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("classify.quantiles", 5)
	v.SetDefault("classify.precision", 2)
	v.SetDefault("classify.max_extra_digits", 6)
	v.SetDefault("classify.palette", "extended_blackbody")
	v.SetDefault("classify.opacity", 1.0)
	v.SetDefault("raster.creation_options", []string{"TILED=YES", "COMPRESS=DEFLATE"})
	v.SetDefault("raster.tmp_dir", "")
	v.SetDefault("indicator.energy_unit", "kWh/year")
	v.SetDefault("indicator.power_shift", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Default returns the built-in configuration without reading files or env.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(eris.Wrap(err, "config: decode defaults"))
	}
	return &cfg
}

// Load reads configuration from resutils.yaml in the given directories
// (the working directory when none are given) and RESUTILS_* env vars.
func Load(dirs ...string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("resutils")
	v.SetConfigType("yaml")
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	for _, d := range dirs {
		v.AddConfigPath(d)
	}

	v.SetEnvPrefix("RESUTILS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges the classifier relies on.
func (c *Config) Validate() error {
	if c.Classify.Quantiles < 2 {
		return eris.Errorf("config: classify.quantiles must be >= 2, got %d", c.Classify.Quantiles)
	}
	if c.Classify.Precision < 0 {
		return eris.Errorf("config: classify.precision must be >= 0, got %d", c.Classify.Precision)
	}
	if c.Classify.MaxExtraDigits < 0 {
		return eris.Errorf("config: classify.max_extra_digits must be >= 0, got %d", c.Classify.MaxExtraDigits)
	}
	if c.Classify.Opacity < 0 || c.Classify.Opacity > 1 {
		return eris.Errorf("config: classify.opacity must be in [0,1], got %g", c.Classify.Opacity)
	}
	return nil
}

// InitLogger applies the log section to the global logger.
func InitLogger(cfg LogConfig) error {
	if err := log.Init(cfg.Level, cfg.Format); err != nil {
		return eris.Wrap(err, "config: init logger")
	}
	return nil
}
