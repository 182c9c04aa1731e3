package cli

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/matzehuels/planwright/pkg/errors"
)

// Settings are application settings, as opposed to the planner
// configuration: where to cache, where to write, where to listen.
type Settings struct {
	CacheDir  string
	RedisURL  string
	OutputDir string
	Listen    string
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() *Settings {
	dir, err := cacheDir()
	if err != nil {
		dir = ""
	}
	return &Settings{CacheDir: dir, OutputDir: ".", Listen: ":8080"}
}

// LoadSettings reads .planwright.yaml from the working directory, the
// directory named by PLANWRIGHT_CONFIG_PATH or the home directory, then
// applies PLANWRIGHT_* environment variables on top. A missing file is not
// an error.
func LoadSettings() (*Settings, error) {
	def := DefaultSettings()

	v := viper.New()
	v.SetDefault("cache_dir", def.CacheDir)
	v.SetDefault("output_dir", def.OutputDir)
	v.SetDefault("listen", def.Listen)
	v.SetDefault("redis_url", "")
	v.SetConfigName("." + appName) // .yaml is implicit
	v.SetEnvPrefix(appName)
	v.AutomaticEnv()

	if override := os.Getenv("PLANWRIGHT_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read settings")
		}
	}

	cacheDir, err := expandPath(v.GetString("cache_dir"))
	if err != nil {
		return nil, err
	}
	outputDir, err := expandPath(v.GetString("output_dir"))
	if err != nil {
		return nil, err
	}
	return &Settings{
		CacheDir:  cacheDir,
		RedisURL:  v.GetString("redis_url"),
		OutputDir: outputDir,
		Listen:    v.GetString("listen"),
	}, nil
}

// expandPath resolves a leading ~ to the home directory.
func expandPath(p string) (string, error) {
	out, err := homedir.Expand(p)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "expand %q", p)
	}
	return out, nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/planwright/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
