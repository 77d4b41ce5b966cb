package common

import (
	"io/ioutil"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Http     Http
	Database Database
	Session  Session
	Redis    Redis
	Auth     Auth
}

type Http struct {
	Addr          string `yaml:"addr"`
	SecretKey     string `yaml:"secret_key"`
	SessionExpire int    `yaml:"session_expire"` // seconds
	TemplateGlob  string `yaml:"template_glob"`
	AssetsDir     string `yaml:"assets_dir"`
}

type Database struct {
	Driver      string `yaml:"driver"` // sqlite | mysql
	DSN         string `yaml:"dsn"`    // overrides everything below when set
	Path        string `yaml:"path"`   // sqlite file
	Host        string `yaml:"host"`
	Port        string `yaml:"port"`
	Database    string `yaml:"database"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	MaxIdleCons int    `yaml:"max_idle_cons"`
	MaxOpenCons int    `yaml:"max_open_cons"`
	MaxLifetime int    `yaml:"max_lifetime"`
	Charset     string `yaml:"charset"`
	Loc         string `yaml:"loc"`
}

type Session struct {
	Backend string `yaml:"backend"` // memory | redis
}

type Redis struct {
	Addr         string `yaml:"addr"`
	Password     string `yaml:"password"`
	ReadTimeout  int    `yaml:"read_timeout"`
	WriteTimeout int    `yaml:"write_timeout"`
	DB           int    `yaml:"db"`
}

type Auth struct {
	Cost int `yaml:"bcrypt_cost"`
}

// InitConfig loads the yaml config file and applies environment overrides.
func InitConfig(filename string) (*Config, error) {
	var (
		err     error
		content []byte
		conf    Config
	)

	if content, err = ioutil.ReadFile(filename); err != nil {
		return nil, err
	}

	if err = yaml.Unmarshal(content, &conf); err != nil {
		return nil, err
	}

	// APP_SECRET and DB_URL win over the file
	if secret := os.Getenv("APP_SECRET"); secret != "" {
		conf.Http.SecretKey = secret
	}
	if dsn := os.Getenv("DB_URL"); dsn != "" {
		conf.Database.DSN = dsn
	}

	conf.applyDefaults()

	return &conf, nil
}

func (c *Config) applyDefaults() {
	if c.Http.Addr == "" {
		c.Http.Addr = ":8000"
	}
	if c.Http.SessionExpire == 0 {
		c.Http.SessionExpire = 7 * 24 * 3600
	}
	if c.Http.TemplateGlob == "" {
		c.Http.TemplateGlob = "templates/*"
	}
	if c.Http.AssetsDir == "" {
		c.Http.AssetsDir = "assets"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Path == "" {
		c.Database.Path = "tasks.db"
	}
	if c.Session.Backend == "" {
		c.Session.Backend = "memory"
	}
	if c.Auth.Cost == 0 {
		c.Auth.Cost = bcrypt.DefaultCost
	}
}
