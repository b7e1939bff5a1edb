package config

import (
	_ "embed"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"
	// EnvConfigPath names the environment variable holding the config path.
	EnvConfigPath = "PARALLEL_CONFIG"
)

const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

type Configuration struct {
	BufferSize      int    `json:"buffer_size" validate:"gte=1,lte=67108864"`
	TempDir         string `json:"temp_dir" validate:""`
	KeepBackingFile bool   `json:"keep_backing_file"`
	LogFormat       string `json:"log_format" validate:"oneof=console json"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// Default returns the built-in configuration.
func Default() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
