package config

import (
	"errors"
	"fmt"
	"time"
)

// DefaultAccessTokenExpireMinutes 默认会话有效期 8 天
const DefaultAccessTokenExpireMinutes = 60 * 24 * 8

var supportedAlgorithms = map[string]struct{}{
	"HS256": {},
	"HS384": {},
	"HS512": {},
}

// Config 配置主体
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	DB        DBConfig        `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Security  SecurityConfig  `mapstructure:"security"`
	Google    GoogleConfig    `mapstructure:"google"`
	MinIO     MinIOConfig     `mapstructure:"minio"`
	Frontend  FrontendConfig  `mapstructure:"frontend"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Bootstrap BootstrapConfig `mapstructure:"bootstrap"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port        int    `mapstructure:"port"`
	APIPrefix   string `mapstructure:"api_prefix"`
	ProjectName string `mapstructure:"project_name"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// SecurityConfig 会话令牌配置，启动后不可变
type SecurityConfig struct {
	SecretKey                string `mapstructure:"secret_key"`
	Algorithm                string `mapstructure:"algorithm"`
	AccessTokenExpireMinutes int    `mapstructure:"access_token_expire_minutes"`
}

// TokenLifetime 会话默认有效期
func (s SecurityConfig) TokenLifetime() time.Duration {
	return time.Duration(s.AccessTokenExpireMinutes) * time.Minute
}

// GoogleConfig Google 单点登录配置
type GoogleConfig struct {
	ClientID       string `mapstructure:"client_id"`
	ClientSecret   string `mapstructure:"client_secret"`
	RedirectURI    string `mapstructure:"redirect_uri"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// Enabled 是否配置了 Google 登录
func (g GoogleConfig) Enabled() bool {
	return g.ClientID != "" && g.ClientSecret != ""
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	InternalEndpoint string `mapstructure:"internal_endpoint"`
	ExternalEndpoint string `mapstructure:"external_endpoint"`
	AccessKey        string `mapstructure:"access_key"`
	SecretKey        string `mapstructure:"secret_key"`
	MainBucket       string `mapstructure:"main_bucket"`
	RootFolder       string `mapstructure:"root_folder"`
	InternalUseSSL   bool   `mapstructure:"internal_use_ssl"`
	ExternalUseSSL   bool   `mapstructure:"external_use_ssl"`
	TimeoutSeconds   int    `mapstructure:"timeout_seconds"`
}

// FrontendConfig 前端地址，OAuth 回调后重定向使用
type FrontendConfig struct {
	URL string `mapstructure:"url"`
}

// CORSConfig 跨域白名单，为空时回显请求来源
type CORSConfig struct {
	Origins []string `mapstructure:"origins"`
}

// BootstrapConfig 启动时的初始化数据
type BootstrapConfig struct {
	AdminEmail    string   `mapstructure:"admin_email"`
	AdminPassword string   `mapstructure:"admin_password"`
	AdminName     string   `mapstructure:"admin_name"`
	Categories    []string `mapstructure:"categories"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level    string         `mapstructure:"level"`
	Logstash LogstashConfig `mapstructure:"logstash"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

// Validate 校验关键配置
func (c *Config) Validate() error {
	if c.Security.SecretKey == "" {
		return errors.New("security.secret_key must be set")
	}
	if _, ok := supportedAlgorithms[c.Security.Algorithm]; !ok {
		return fmt.Errorf("unsupported token algorithm %q", c.Security.Algorithm)
	}
	if c.Security.AccessTokenExpireMinutes <= 0 {
		c.Security.AccessTokenExpireMinutes = DefaultAccessTokenExpireMinutes
	}
	return nil
}
