package configparser

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var ErrNoFilePath = errors.New("no file path provided")

// LoadDotEnv loads variables from the given .env files. Missing files are ignored,
// variables that are already set are kept.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("could not load env file %s: %w", f, err)
		}
	}
	return nil
}

// LoadYamlFile reads a YAML file and loads variables into the environment.
// Nested keys are joined with "_" and upper-cased: database.host -> DATABASE_HOST.
func LoadYamlFile(filepath string) error {
	if filepath == "" {
		return ErrNoFilePath
	}

	data, err := os.ReadFile(filepath)
	if err != nil {
		return fmt.Errorf("could not open YAML file: %w", err)
	}

	vars, err := FlattenYaml(data)
	if err != nil {
		return err
	}

	// deterministic order keeps error messages stable
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		// Set the environment variable only if it's not already set
		if os.Getenv(key) != "" {
			continue
		}
		if err := os.Setenv(key, vars[key]); err != nil {
			return fmt.Errorf("could not set env var %s: %w", key, err)
		}
	}

	return nil
}

// FlattenYaml turns a YAML document into env-style KEY=value pairs.
func FlattenYaml(data []byte) (map[string]string, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error reading YAML file: %w", err)
	}

	out := make(map[string]string)
	flatten(nil, doc, out)
	return out, nil
}

func flatten(prefix []string, node map[string]any, out map[string]string) {
	for key, val := range node {
		path := append(append([]string{}, prefix...), key)
		switch v := val.(type) {
		case map[string]any:
			flatten(path, v, out)
		case nil:
			// empty values don't represent environment variables
		default:
			out[strings.ToUpper(strings.Join(path, "_"))] = substitute(fmt.Sprint(v))
		}
	}
}

// substitute handles the ${VAR:-default} syntax.
func substitute(value string) string {
	if !strings.HasPrefix(value, "${") || !strings.HasSuffix(value, "}") || !strings.Contains(value, ":-") {
		return value
	}

	inner := value[2 : len(value)-1]
	parts := strings.SplitN(inner, ":-", 2)
	if envValue := os.Getenv(strings.TrimSpace(parts[0])); envValue != "" {
		return envValue
	}
	return strings.TrimSpace(parts[1])
}

// LoadAndParseYaml loads .env and the YAML file (if present) into the environment and
// fills cfg from its env/default struct tags.
func LoadAndParseYaml(filepath string, cfg any) error {
	if err := LoadDotEnv(".env"); err != nil {
		return err
	}

	if filepath != "" {
		if err := LoadYamlFile(filepath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	return ParseEnv(cfg)
}
