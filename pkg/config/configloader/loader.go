package configloader

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigFile is read when no explicit path is given.
const DefaultConfigFile = "config.yaml"

// DotEnvFile is read from the working directory when present.
const DotEnvFile = ".env"

type Validator interface {
	Validate() error
}

// Load builds T from, in increasing priority, a yaml file, the .env file and
// process environment variables prefixed with envPrefix (e.g. "BEER_").
// Missing files are skipped; a yaml file that exists but cannot be parsed is an error.
func Load[T Validator](configFile, envPrefix string) (T, error) {
	var cfg T
	if configFile == "" {
		configFile = DefaultConfigFile
	}

	k := koanf.New(".")
	transform := EnvTransformer(envPrefix)

	if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("error loading config file %s: %w", configFile, err)
	}
	if dotEnv, err := readDotEnv(DotEnvFile, envPrefix, transform); err != nil {
		log.Printf("WARN: ignoring %s: %v", DotEnvFile, err)
	} else if err := k.Load(confmap.Provider(dotEnv, "."), nil); err != nil {
		return cfg, fmt.Errorf("error loading %s: %w", DotEnvFile, err)
	}
	if err := k.Load(env.Provider(envPrefix, ".", transform), nil); err != nil {
		return cfg, fmt.Errorf("error loading environment: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// readDotEnv returns the prefixed entries of path keyed like the env provider
// keys them. A missing file yields an empty map.
func readDotEnv(path, envPrefix string, transform func(string) string) (map[string]any, error) {
	entries, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(entries))
	for key, value := range entries {
		if strings.HasPrefix(strings.ToUpper(key), strings.ToUpper(envPrefix)) {
			out[transform(key)] = value
		}
	}
	return out, nil
}

// EnvTransformer maps BEER_DATABASE_URL to database.url.
func EnvTransformer(envPrefix string) func(string) string {
	prefix := strings.ToLower(envPrefix)
	return func(key string) string {
		key = strings.TrimPrefix(strings.ToLower(key), prefix)
		return strings.ReplaceAll(key, "_", ".")
	}
}
