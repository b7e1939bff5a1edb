package config

import (
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load loads the configuration from the directory or config.yaml file at
// path. Fields missing from the file keep their default values.
func Load(fs afero.Fs, path string) (*Configuration, error) {
	// If given a directory, look for config.yaml inside it.
	if isDir, _ := afero.IsDir(fs, path); isDir {
		path = filepath.Join(path, ConfigurationName)
	}

	configContents, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	out := Default()
	if err := yaml.UnmarshalStrict(configContents, out); err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// FromEnv loads the configuration named by the PARALLEL_CONFIG environment
// variable, or the defaults if it's unset.
func FromEnv(fs afero.Fs, getenv func(string) string) (*Configuration, error) {
	path := getenv(EnvConfigPath)
	if path == "" {
		return Default(), nil
	}
	return Load(fs, path)
}
