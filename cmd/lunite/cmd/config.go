package cmd

import (
	"os"

	"github.com/goccy/go-yaml"
)

// ProjectConfig is the optional `lunite.yaml` project file (SPEC_FULL.md
// §2.2): naming the entry script, the build output name, and a list of host
// module names under `preload`, which is parsed but not read by any command.
// Its absence is never an error — callers fall back to CLI-argument
// defaults.
type ProjectConfig struct {
	Entry   string   `yaml:"entry"`
	Output  string   `yaml:"output"`
	Preload []string `yaml:"preload"`
}

// loadProjectConfig reads lunite.yaml from the current directory, if
// present. A missing file returns a zero-value config and no error.
func loadProjectConfig() (*ProjectConfig, error) {
	data, err := os.ReadFile("lunite.yaml")
	if os.IsNotExist(err) {
		return &ProjectConfig{}, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
