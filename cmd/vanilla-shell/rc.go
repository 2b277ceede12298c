package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// rcConfig is the YAML startup file: default environment variables, aliases
// and the prompt.
type rcConfig struct {
	Env     map[string]string `yaml:"env"`
	Aliases map[string]string `yaml:"aliases"`
	Prompt  string            `yaml:"prompt"`
}

const rcBasename = ".vanillashellrc.yaml"

// loadRC reads the startup file. A missing default file is not an error; a
// missing explicit --rcfile is.
func loadRC() (*rcConfig, error) {
	rc := &rcConfig{}
	if flagNoRc {
		return rc, nil
	}

	path := flagRcFile
	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return rc, nil
		}
		path = filepath.Join(home, rcBasename)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return rc, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, rc); err != nil {
		return nil, err
	}
	debugLog.Printf("loaded rc file %s", path)
	return rc, nil
}
