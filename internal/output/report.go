package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rpgo/college-planner/internal/domain"
	"gopkg.in/yaml.v3"
)

// allFormats are written, in order, by the "all" pseudo-format.
var allFormats = []string{"console", "json", "detailed-csv", "html"}

// GenerateReport writes the report in the named format to a timestamped file
// in dir and returns the files written. "all" writes every file format.
func GenerateReport(report *domain.PlanReport, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var written []string
		for _, name := range allFormats {
			f := GetFormatterByName(name)
			path, err := WriteFormatted(f, report, dir, extensionFor(name))
			if err != nil {
				return written, fmt.Errorf("%s report: %w", name, err)
			}
			written = append(written, path)
		}
		return written, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		// enrich error with available formatters and aliases
		return nil, fmt.Errorf("%w: %q. Try one of: %s, all (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	path, err := WriteFormatted(f, report, dir, extensionFor(f.Name()))
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// SaveConfiguration writes a configuration as YAML, or TOML when filename
// ends in .toml.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	var b []byte
	if strings.EqualFold(filepath.Ext(filename), ".toml") {
		var sb strings.Builder
		if err := toml.NewEncoder(&sb).Encode(config); err != nil {
			return err
		}
		b = []byte(sb.String())
	} else {
		var err error
		if b, err = yaml.Marshal(config); err != nil {
			return err
		}
	}
	return os.WriteFile(filename, b, 0644)
}
