package config

import (
	"fmt"
	"os"
)

func Template() string {
	return defaultTemplate
}

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(defaultTemplate), 0o644)
}

const defaultTemplate = `# bitsctl configuration
# input = "assets/day_16_input.txt"
format = "text"
# log_level = "info"
metrics_textfile = ""

[decoder]
max_depth = 256
require_zero_padding = false
`
