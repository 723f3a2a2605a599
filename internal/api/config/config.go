package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg，环境变量 ATLANIA_* 可覆盖文件中的值
func LoadConfig() error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.SetEnvPrefix("ATLANIA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	Cfg = &cfg

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.api_prefix", "/api/v1")
	v.SetDefault("server.project_name", "Atlania API")
	v.SetDefault("security.algorithm", "HS256")
	v.SetDefault("security.access_token_expire_minutes", DefaultAccessTokenExpireMinutes)
	v.SetDefault("google.timeout_seconds", 10)
	v.SetDefault("minio.root_folder", "atlania")
	v.SetDefault("frontend.url", "http://localhost:3000")
	v.SetDefault("log.level", "info")

	// 显式绑定，保证只通过环境变量提供时也能被 Unmarshal 识别
	for _, key := range []string{
		"database.dsn",
		"redis.addr",
		"redis.password",
		"security.secret_key",
		"google.client_id",
		"google.client_secret",
		"google.redirect_uri",
		"minio.access_key",
		"minio.secret_key",
		"bootstrap.admin_password",
	} {
		_ = v.BindEnv(key)
	}
}
