package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Server   Server   `koanf:"server"`
	Frontend Frontend `koanf:"frontend"`
	Database Database `koanf:"db"`
	Webhook  Webhook  `koanf:"webhook"`
	OpenAI   OpenAI   `koanf:"openai"`
}

type Server struct {
	Addr string `koanf:"addr"`
}

type Frontend struct {
	Enabled bool `koanf:"enabled"`
}

type Database struct {
	// Driver selects the storage backend: "sqlite" (embedded) or "postgres".
	Driver string `koanf:"driver"`
	// Path is the sqlite database file; ignored for postgres.
	Path   string `koanf:"path"`
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

type Webhook struct {
	// URL is the reminder webhook endpoint. Empty disables dispatch.
	URL            string `koanf:"url"`
	TimeoutSeconds int    `koanf:"timeoutseconds"`
}

type OpenAI struct {
	APIKey    string `koanf:"apikey"`
	URL       string `koanf:"url"`
	Model     string `koanf:"model"`
	MaxTokens int    `koanf:"maxtokens"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Server: Server{
			Addr: ":8181",
		},
		Frontend: Frontend{
			Enabled: true,
		},
		Database: Database{
			Driver: "sqlite",
			Path:   "storage/menelogium.db",
			Host:   "localhost",
			Port:   5432,
			User:   "menelogium",
			Pass:   "",
			Name:   "menelogium",
			Schema: "menelogium",
		},
		Webhook: Webhook{
			TimeoutSeconds: 10,
		},
		OpenAI: OpenAI{
			URL:       "https://api.openai.com/v1/chat/completions",
			Model:     "gpt-4",
			MaxTokens: 256,
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "MENELOGIUM_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "MENELOGIUM_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
