package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Uploads  UploadConfig
	Weather  WeatherConfig
	Gemini   GeminiConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	SecretKey         string
	Port              string
	ExpirationMinutes int
}

type DatabaseConfig struct {
	Host         string
	Username     string
	Password     string
	DatabaseName string
	Port         string
}

type UploadConfig struct {
	Dir string
}

type WeatherConfig struct {
	APIKey string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type CORSConfig struct {
	Origins string
}

// Load reads the configuration from environment variables, falling back to
// local-development defaults.
func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SECRET_KEY", "dev-secret-key")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("JWT_EXPIRATION_MINUTES", 50)
	viper.SetDefault("DATABASE_HOST", "localhost")
	viper.SetDefault("DATABASE_PORT", "5432")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "")
	viper.SetDefault("DATABASE_NAME", "farmigo")
	viper.SetDefault("UPLOAD_FOLDER", "uploads")
	viper.SetDefault("OPENWEATHER_API_KEY", "")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("CORS_ORIGINS", "*")

	cfg := &Config{
		Server: ServerConfig{
			SecretKey:         viper.GetString("SECRET_KEY"),
			Port:              viper.GetString("SERVER_PORT"),
			ExpirationMinutes: viper.GetInt("JWT_EXPIRATION_MINUTES"),
		},
		Database: DatabaseConfig{
			Host:         viper.GetString("DATABASE_HOST"),
			Username:     viper.GetString("DATABASE_USER"),
			Password:     viper.GetString("DATABASE_PASSWORD"),
			DatabaseName: viper.GetString("DATABASE_NAME"),
			Port:         viper.GetString("DATABASE_PORT"),
		},
		Uploads: UploadConfig{
			Dir: viper.GetString("UPLOAD_FOLDER"),
		},
		Weather: WeatherConfig{
			APIKey: viper.GetString("OPENWEATHER_API_KEY"),
		},
		Gemini: GeminiConfig{
			APIKey: viper.GetString("GEMINI_API_KEY"),
			Model:  viper.GetString("GEMINI_MODEL"),
		},
		CORS: CORSConfig{
			Origins: viper.GetString("CORS_ORIGINS"),
		},
	}
	return cfg, nil
}
