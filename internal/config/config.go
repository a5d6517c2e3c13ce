package config

type Config interface {
	EnvConfig
	ClientConfig
}

type EnvConfig interface {
	GetBaseURL() string
	GetAppName() string
	GetCredentialsFile() string
	GetLogLevel() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	Client
}

func New() Config {
	return mainConfig{}
}
