package config

import "time"

// HoursConfig represents the opening-hours evaluator configuration
type HoursConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
	Locale       string
}

// StoreConfig represents the spot store configuration
type StoreConfig struct {
	Type        string
	SQLitePath  string
	MySQLDSN    string
	PostgresDSN string
}

// NormalizerConfig represents the hours normalizer configuration
type NormalizerConfig struct {
	Enabled       bool
	Provider      string
	RatePerSecond float64
	Burst         int
}

// ServerConfig represents the HTTP API configuration
type ServerConfig struct {
	ListenAddress   string
	ShutdownTimeout time.Duration
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region       string
	ModelID      string
	MaxTokens    int
	Temperature  float32
	MaxInputSize int
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey       string
	ModelName    string
	MaxTokens    int
	Temperature  float32
	MaxInputSize int
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey       string
	ModelName    string
	MaxTokens    int
	Temperature  float32
	MaxInputSize int
}

// GetHours returns the opening-hours configuration
func (c *Config) GetHours() (HoursConfig, error) {
	ttl, err := c.GetDuration("hours.cache_ttl")
	if err != nil {
		return HoursConfig{}, err
	}
	return HoursConfig{
		CacheEnabled: c.GetBool("hours.cache_enabled"),
		CacheTTL:     ttl,
		Locale:       c.GetString("hours.locale"),
	}, nil
}

// GetStore returns the spot store configuration
func (c *Config) GetStore() StoreConfig {
	return StoreConfig{
		Type:        c.GetString("store.type"),
		SQLitePath:  c.GetString("store.sqlite_path"),
		MySQLDSN:    c.GetString("store.mysql_dsn"),
		PostgresDSN: c.GetString("store.postgres_dsn"),
	}
}

// GetNormalizer returns the hours normalizer configuration
func (c *Config) GetNormalizer() NormalizerConfig {
	return NormalizerConfig{
		Enabled:       c.GetBool("normalizer.enabled"),
		Provider:      c.GetString("normalizer.provider"),
		RatePerSecond: c.GetFloat64("normalizer.rate_per_second"),
		Burst:         c.GetInt("normalizer.burst"),
	}
}

// GetServer returns the HTTP API configuration
func (c *Config) GetServer() (ServerConfig, error) {
	timeout, err := c.GetDuration("server.shutdown_timeout")
	if err != nil {
		return ServerConfig{}, err
	}
	return ServerConfig{
		ListenAddress:   c.GetString("server.listen_address"),
		ShutdownTimeout: timeout,
	}, nil
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:       c.GetString("bedrock.region"),
		ModelID:      c.GetString("bedrock.model_id"),
		MaxTokens:    c.GetInt("bedrock.max_tokens"),
		Temperature:  float32(c.GetFloat64("bedrock.temperature")),
		MaxInputSize: c.GetInt("bedrock.max_input_size"),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:       c.GetString("gemini.api_key"),
		ModelName:    c.GetString("gemini.model_name"),
		MaxTokens:    c.GetInt("gemini.max_tokens"),
		Temperature:  float32(c.GetFloat64("gemini.temperature")),
		MaxInputSize: c.GetInt("gemini.max_input_size"),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:       c.GetString("openai.api_key"),
		ModelName:    c.GetString("openai.model_name"),
		MaxTokens:    c.GetInt("openai.max_tokens"),
		Temperature:  float32(c.GetFloat64("openai.temperature")),
		MaxInputSize: c.GetInt("openai.max_input_size"),
	}
}
