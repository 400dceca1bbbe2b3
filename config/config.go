package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port         string   `yaml:"port"`
	AllowOrigins []string `yaml:"allowOrigins"`
}

type DatabaseConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Database string `yaml:"database"`
}

type UploadConfig struct {
	// Dir is where uploaded menu images are written.
	Dir string `yaml:"dir"`
	// PublicPrefix is the URL prefix stored on menu items and served as
	// a static route.
	PublicPrefix string `yaml:"publicPrefix"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Upload   UploadConfig   `yaml:"upload"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:         "8000",
			AllowOrigins: []string{"http://localhost:9000"},
		},
		Database: DatabaseConfig{
			Username: "root",
			Host:     "localhost",
			Port:     "3306",
			Database: "restaurant",
		},
		Upload: UploadConfig{
			Dir:          "assets/menuIcons",
			PublicPrefix: "/public/menuIcons",
		},
	}
}

// Load reads the YAML config file when present and then applies environment
// overrides. A missing file is not an error; the defaults stand.
func Load(filename string) (Config, error) {
	config := Default()

	file, err := os.Open(filename)
	if err == nil {
		defer file.Close()
		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(&config); err != nil {
			return config, fmt.Errorf("parsing %s: %w", filename, err)
		}
	} else if !os.IsNotExist(err) {
		return config, err
	}

	applyEnv(&config)
	return config, nil
}

func applyEnv(config *Config) {
	if port := os.Getenv("PORT"); port != "" {
		config.Server.Port = port
	}
	if user := os.Getenv("DB_USER"); user != "" {
		config.Database.Username = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		config.Database.Password = password
	}
	if host := os.Getenv("DB_HOST"); host != "" {
		config.Database.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		config.Database.Port = port
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		config.Database.Database = name
	}
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		config.Upload.Dir = dir
	}
}

// DSN builds the MySQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.Username,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}
