package config

type Config interface {
	EnvConfig
	CorsConfig
	SecurityConfig
	RateLimitConfig
	AnalysisConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetAppVersion() string
	GetReportsFolder() string
	GetEnv() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	Security
	RateLimit
	Analysis
}

func New() Config {
	return mainConfig{}
}
