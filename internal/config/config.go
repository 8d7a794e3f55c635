// Package config contains utilities for loading configs
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

const (
	DefaultConfigFilePath = "/data/cookbox.yaml"
)

const (
	EnvProd = "PROD"
	EnvDev  = "DEV"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	BackendLocal = "local"
	BackendS3    = "s3"
)

const (
	defaultServerHost    = "0.0.0.0"
	defaultServerPort    = 3000
	defaultDatabaseHost  = "localhost"
	defaultDatabasePort  = 5432
	defaultDatabasePath  = "/data/cookbox.db"
	defaultVolume        = "/data/uploads"
	defaultURLPrefix     = "/uploads"
	defaultMaxUploadSize = 64 << 20 // 64 MiB
)

func splitFieldList(param string) []string {
	// "A,B,C" or "A B C"
	param = strings.ReplaceAll(param, " ", ",")
	parts := strings.Split(param, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// allOrNothing implements a cross-field validator for go-playground/validator.
//
// The validator succeeds only if all fields listed in the tag parameter are
// zero-valued, or all of them are non-zero. It must be attached to a
// placeholder field and inspects the parent struct. Field names are given as
// a comma- or space-separated list (e.g. `validate:"allOrNothing=A,B,C"`).
//
// Nil pointers and interfaces count as zero; non-nil ones are dereferenced
// before the check. A missing field name or a non-struct parent fails the
// validation to signal misconfiguration.
func allOrNothing(fl validator.FieldLevel) bool {
	parent := fl.Parent()
	if parent.Kind() == reflect.Pointer {
		if parent.IsNil() {
			return true // nothing to validate
		}
		parent = parent.Elem()
	}
	if parent.Kind() != reflect.Struct {
		return false
	}

	names := splitFieldList(fl.Param())
	if len(names) == 0 {
		return false
	}

	hasZero := false
	hasNonZero := false

	for _, name := range names {
		f := parent.FieldByName(name)
		if !f.IsValid() {
			return false // field name typo / not found
		}

		for (f.Kind() == reflect.Pointer || f.Kind() == reflect.Interface) && !f.IsNil() {
			f = f.Elem()
		}

		if f.IsZero() {
			hasZero = true
		} else {
			hasNonZero = true
		}

		if hasZero && hasNonZero {
			return false
		}
	}

	return true
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("allOrNothing", allOrNothing)
	return v
}

func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	for _, e := range validationErrs {
		switch e.Tag() {
		case "allOrNothing":
			// e.g. "Config.Fileserver.S3.Validate" -> "S3"
			parts := strings.Split(e.Namespace(), ".")
			var structName string
			//nolint:mnd
			if len(parts) >= 2 {
				structName = parts[len(parts)-2]
			}

			var fields string
			switch structName {
			case "S3":
				fields = "Endpoint, AccessKey, SecretKey, and Bucket"
			default:
				fields = "all related fields"
			}

			return fmt.Errorf(
				"%s configuration is incomplete: either all fields must be set (%s) or all must be empty",
				structName, fields)
		case "required_if":
			return fmt.Errorf("%s is required when %s", e.Namespace(), strings.ReplaceAll(e.Param(), " ", " is "))
		}
	}

	return err
}

type Server struct {
	Host       string `yaml:"host" validate:"required"`
	Port       uint16 `yaml:"port" validate:"required"`
	TrustProxy bool   `yaml:"trust_proxy"`
}

// Addr returns the address the HTTP server listens on.
func (s Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" validate:"min=1"`
}

type Database struct {
	Driver      string `yaml:"driver" validate:"oneof=postgres sqlite"`
	Port        uint16 `yaml:"port"`
	Host        string `yaml:"host" validate:"omitempty,hostname_rfc1123"`
	Database    string `yaml:"database" validate:"required_if=Driver postgres"`
	User        string `yaml:"user" validate:"required_if=Driver postgres"`
	Password    string `yaml:"password"`
	Path        string `yaml:"path" validate:"required_if=Driver sqlite"`
	AutoMigrate *bool  `yaml:"auto_migrate"`
}

// ShouldMigrate reports whether the embedded migrations run at startup.
func (d Database) ShouldMigrate() bool {
	return d.AutoMigrate == nil || *d.AutoMigrate
}

type S3 struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`

	Validate struct{} `yaml:"-" validate:"allOrNothing=Endpoint AccessKey SecretKey Bucket"`
}

type Fileserver struct {
	Backend       string `yaml:"backend" validate:"oneof=local s3"`
	Volume        string `yaml:"volume" validate:"required_if=Backend local"`
	URLPrefix     string `yaml:"url_prefix" validate:"startswith=/,ne=/"`
	MaxUploadSize int64  `yaml:"max_upload_size" validate:"gt=0"`
	S3            S3     `yaml:"s3"`
}

type Config struct {
	Server     Server     `yaml:"server"`
	CORS       CORS       `yaml:"cors"`
	Database   Database   `yaml:"database"`
	Fileserver Fileserver `yaml:"fileserver"`
	Env        string     `yaml:"env" validate:"omitempty,oneof=DEV PROD"`
	LogLevel   string     `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

func (c *Config) setDefaults() {
	if c.Env == "" {
		c.Env = EnvDev
	}
	if c.LogLevel == "" {
		if c.Env == EnvProd {
			c.LogLevel = "info"
		} else {
			c.LogLevel = "debug"
		}
	}
	if c.Server.Host == "" {
		c.Server.Host = defaultServerHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = defaultServerPort
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverPostgres
	}
	if c.Database.Host == "" {
		c.Database.Host = defaultDatabaseHost
	}
	if c.Database.Port == 0 {
		c.Database.Port = defaultDatabasePort
	}
	if c.Database.Path == "" {
		c.Database.Path = defaultDatabasePath
	}
	if c.Fileserver.Backend == "" {
		c.Fileserver.Backend = BackendLocal
	}
	if c.Fileserver.Volume == "" {
		c.Fileserver.Volume = defaultVolume
	}
	if c.Fileserver.URLPrefix == "" {
		c.Fileserver.URLPrefix = defaultURLPrefix
	}
	c.Fileserver.URLPrefix = "/" + strings.Trim(c.Fileserver.URLPrefix, "/")
	if c.Fileserver.MaxUploadSize == 0 {
		c.Fileserver.MaxUploadSize = defaultMaxUploadSize
	}
}

func (c *Config) validate() error {
	if err := newValidator().Struct(c); err != nil {
		return formatValidationError(err)
	}
	if c.Fileserver.Backend == BackendS3 && c.Fileserver.S3.Bucket == "" {
		return errors.New("S3 configuration is required when the fileserver backend is s3")
	}
	return nil
}

func loadWithDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseUint16(key, value string) (uint16, error) {
	if value == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(value, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid %s (%q): %w", key, value, err)
	}
	return uint16(v), nil
}

func parseBool(key, value string) (bool, error) {
	if value == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s (%q): %w", key, value, err)
	}
	return b, nil
}

func loadConfigFromEnv() (Config, error) {
	var conf Config
	var err error

	conf.Env = loadWithDefault("ENV", "")
	conf.LogLevel = loadWithDefault("LOG_LEVEL", "")

	// Server
	conf.Server.Host = loadWithDefault("SERVER_HOST", "")
	if conf.Server.Port, err = parseUint16("SERVER_PORT", os.Getenv("SERVER_PORT")); err != nil {
		return conf, err
	}
	if conf.Server.TrustProxy, err = parseBool("SERVER_TRUST_PROXY", os.Getenv("SERVER_TRUST_PROXY")); err != nil {
		return conf, err
	}

	// CORS
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		conf.CORS.AllowedOrigins = splitFieldList(origins)
	}

	// Database
	conf.Database = Database{
		Driver:   loadWithDefault("DATABASE_DRIVER", ""),
		Host:     loadWithDefault("DATABASE_HOST", ""),
		Database: loadWithDefault("DATABASE", ""),
		User:     loadWithDefault("DATABASE_USER", ""),
		Password: loadWithDefault("DATABASE_PASSWORD", ""),
		Path:     loadWithDefault("DATABASE_PATH", ""),
	}
	if conf.Database.Port, err = parseUint16("DATABASE_PORT", os.Getenv("DATABASE_PORT")); err != nil {
		return conf, err
	}
	if v := os.Getenv("DATABASE_AUTO_MIGRATE"); v != "" {
		b, err := parseBool("DATABASE_AUTO_MIGRATE", v)
		if err != nil {
			return conf, err
		}
		conf.Database.AutoMigrate = &b
	}

	// Fileserver
	conf.Fileserver = Fileserver{
		Backend:   loadWithDefault("FILESERVER_BACKEND", ""),
		Volume:    loadWithDefault("FILESERVER_VOLUME", ""),
		URLPrefix: loadWithDefault("FILESERVER_URL_PREFIX", ""),
		S3: S3{
			Endpoint:  loadWithDefault("S3_ENDPOINT", ""),
			AccessKey: loadWithDefault("S3_ACCESS_KEY", ""),
			SecretKey: loadWithDefault("S3_SECRET_KEY", ""),
			Bucket:    loadWithDefault("S3_BUCKET", ""),
		},
	}
	if v := os.Getenv("FILESERVER_MAX_UPLOAD_SIZE"); v != "" {
		size, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return conf, fmt.Errorf("invalid FILESERVER_MAX_UPLOAD_SIZE (%q): %w", v, err)
		}
		conf.Fileserver.MaxUploadSize = size
	}
	if conf.Fileserver.S3.UseSSL, err = parseBool("S3_USE_SSL", os.Getenv("S3_USE_SSL")); err != nil {
		return conf, err
	}

	conf.setDefaults()
	if err := conf.validate(); err != nil {
		return conf, err
	}

	return conf, nil
}

func loadConfigFromFile(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(contents, &config); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}

	config.setDefaults()
	if err := config.validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

func configFileExists(path string) bool {
	f, err := os.Lstat(path)
	if err != nil {
		return false
	}

	return !f.IsDir()
}

// LoadConfig reads the YAML file at path when it exists and falls back to
// environment variables otherwise.
func LoadConfig(path string) (Config, error) {
	if path != "" && configFileExists(path) {
		return loadConfigFromFile(path)
	}

	return loadConfigFromEnv()
}
