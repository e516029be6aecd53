package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const (
	ModePolling = "polling"
	ModeWebhook = "webhook"

	SessionMemory   = "memory"
	SessionPostgres = "postgres"
)

type Application struct {
	Telegram Telegram `koanf:"telegram"`
	Google   Google   `koanf:"google"`
	Sheets   Sheets   `koanf:"sheets"`
	Access   Access   `koanf:"access"`
	Session  Session  `koanf:"session"`
	Database Database `koanf:"db"`
	HTTP     HTTP     `koanf:"http"`
	Log      Log      `koanf:"log"`
	Timezone string   `koanf:"timezone"`
}

// Telegram.WebhookSecret is checked against the secret token header of every
// webhook delivery. A random one is generated per run when empty.
type Telegram struct {
	Token         string `koanf:"token"`
	Mode          string `koanf:"mode"`
	WebhookUrl    string `koanf:"webhookurl"`
	WebhookPath   string `koanf:"webhookpath"`
	WebhookSecret string `koanf:"webhooksecret"`
	PollTimeout   int    `koanf:"polltimeout"`
	Debug         bool   `koanf:"debug"`
}

type Google struct {
	CredentialsPath string `koanf:"credentialspath"`
	SpreadsheetId   string `koanf:"spreadsheetid"`
}

type Sheets struct {
	EventsTable string `koanf:"eventstable"`
	EventsRange string `koanf:"eventsrange"`
	AccessTable string `koanf:"accesstable"`
	AccessRange string `koanf:"accessrange"`
}

type Access struct {
	// CacheTTL bounds how long a revoked chat may keep access. Zero re-reads
	// the allow-list on every check.
	CacheTTL time.Duration `koanf:"cachettl"`
}

type Session struct {
	Backend string `koanf:"backend"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

type HTTP struct {
	Addr string `koanf:"addr"`
}

type Log struct {
	File string `koanf:"file"`
}

// legacyEnv maps the variable names of the first deployment of the bot onto
// config keys. SHEETCAL_ variables take precedence.
var legacyEnv = map[string]string{
	"TELEGRAM_BOT_TOKEN":      "telegram.token",
	"GOOGLE_SHEETS_ID":        "google.spreadsheetid",
	"GOOGLE_CREDENTIALS_PATH": "google.credentialspath",
	"SHEET_NAME":              "sheets.accesstable",
}

func Defaults() Application {
	return Application{
		Telegram: Telegram{
			Mode:        ModePolling,
			WebhookPath: "/telegram/webhook",
			PollTimeout: 60,
		},
		Google: Google{
			CredentialsPath: "credentials.json",
		},
		Sheets: Sheets{
			EventsTable: "Events",
			EventsRange: "A:C",
			AccessTable: "Sheet1",
			AccessRange: "H:H",
		},
		Session: Session{
			Backend: SessionMemory,
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "sheetcal",
			Pass:   "",
			Name:   "sheetcal",
			Schema: "sheetcal",
		},
		HTTP: HTTP{
			Addr: ":8181",
		},
		Timezone: "Local",
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("unable to load .env file: %v", err)
	}

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
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
		TransformFunc: func(k, v string) (string, any) {
			if key, ok := legacyEnv[k]; ok {
				return key, v
			}
			// other variables are dropped
			return "", nil
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from legacy envs: %v", err)
		return Application{}, err
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "SHEETCAL_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "SHEETCAL_")), "_", ".")
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

// Location resolves the configured timezone used for "today" and the
// current month.
func (a Application) Location() *time.Location {
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		log.Warnf("unknown timezone %q, falling back to local time: %v", a.Timezone, err)
		return time.Local
	}
	return loc
}
