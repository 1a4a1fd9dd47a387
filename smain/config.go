/*
© 2025–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package smain

import (
	"os"

	"gopkg.in/yaml.v2"
)

// Config is the on-disk program configuration a [smain] driver loads
// before building its [Executable], mirroring the teacher's pattern of
// a small YAML settings file alongside the binary.
type Config struct {
	Program    string `yaml:"program"`
	AuditPath  string `yaml:"audit_path"`
	LineLength int    `yaml:"line_length"`
}

// LoadConfig reads and parses a YAML config file at path. A missing
// file is not an error; it returns the zero Config so callers can
// layer defaults on top.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
