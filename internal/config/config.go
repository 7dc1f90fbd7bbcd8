package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	CORS     CORSConfig     `yaml:"cors"`
	Log      LogConfig      `yaml:"log"`
	Model    ModelConfig    `yaml:"model"`
	Features FeaturesConfig `yaml:"features"`
	LLM      LLMConfig      `yaml:"llm"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8000"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"   env:"SERVER_MAX_BODY_BYTES"   env-default:"1048576"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// ModelConfig points at the trained artifacts loaded at startup.
type ModelConfig struct {
	CRFPath       string `yaml:"crf_path"        env:"MODEL_CRF_PATH"        env-default:"./models/crf_model.json"`
	LemmaDictPath string `yaml:"lemma_dict_path" env:"MODEL_LEMMA_DICT_PATH"`
	LexiconPath   string `yaml:"lexicon_path"    env:"MODEL_LEXICON_PATH"`
}

// FeaturesConfig selects the feature groups fed to the CRF. They must match
// the settings the model was trained with.
type FeaturesConfig struct {
	WindowSize       int  `yaml:"window_size"       env:"FEATURES_WINDOW_SIZE"       env-default:"3"`
	IncludeSentiment bool `yaml:"include_sentiment" env:"FEATURES_INCLUDE_SENTIMENT" env-default:"true"`
	Lemmatize        bool `yaml:"lemmatize"         env:"FEATURES_LEMMATIZE"         env-default:"true"`
}

// LLMConfig holds settings of the recommendation model.
type LLMConfig struct {
	APIKey      string        `yaml:"api_key"     env:"ANTHROPIC_API_KEY" env-required:"true"`
	Model       string        `yaml:"model"       env:"LLM_MODEL"         env-default:"claude-sonnet-4-5"`
	MaxTokens   int64         `yaml:"max_tokens"  env:"LLM_MAX_TOKENS"    env-default:"200"`
	Temperature float64       `yaml:"temperature" env:"LLM_TEMPERATURE"   env-default:"0.7"`
	Timeout     time.Duration `yaml:"timeout"     env:"LLM_TIMEOUT"       env-default:"30s"`
}
