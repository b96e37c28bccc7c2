package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/homewise/affordability/internal/domain"
	"gopkg.in/yaml.v3"
)

// GenerateReport writes the report in the named format to a timestamped
// file in dir and returns its path. "all" writes the verbose console and
// detailed CSV reports.
func GenerateReport(report *domain.Report, format, dir string) ([]string, error) {
	if strings.EqualFold(strings.TrimSpace(format), "all") {
		var files []string
		for _, name := range []string{"console", "detailed-csv"} {
			path, err := WriteFormatted(GetFormatterByName(name), report, dir, Extension(name))
			if err != nil {
				return files, err
			}
			files = append(files, path)
		}
		return files, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format,
			strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	path, err := WriteFormatted(f, report, dir, Extension(format))
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// SaveConfiguration writes an input configuration as YAML.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
