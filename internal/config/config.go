package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Port          string `mapstructure:"PORT"`
	DatabasePath  string `mapstructure:"DATABASE_PATH"`
	EnableCORS    bool   `mapstructure:"ENABLE_CORS"`
	DashboardTopN int    `mapstructure:"DASHBOARD_TOP_N"`
}

func LoadConfig() *Config {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_PATH", "cantina.db")
	viper.SetDefault("DASHBOARD_TOP_N", 5)

	viper.BindEnv("PORT")
	viper.BindEnv("DATABASE_PATH")
	viper.BindEnv("ENABLE_CORS")
	viper.BindEnv("DASHBOARD_TOP_N")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	return &config
}
