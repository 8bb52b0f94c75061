package config

import (
	"fmt"
	"time"
)

// WeightConfig is one keyword entry of the relevance table
type WeightConfig struct {
	Keyword string `mapstructure:"keyword"`
	Score   int    `mapstructure:"score"`
}

// ExtractorConfig represents the extraction policy
type ExtractorConfig struct {
	Denylist        []string
	Suffixes        []string
	SuffixTLDs      []string
	Weights         []WeightConfig
	CompanyBonus    int
	DecodeEntities  bool
	FoldUnicode     bool
	WebsiteDenylist []string
	PortalDomains   map[string][]string
	IgnoredDomains  []string
}

// ServerConfig represents the intake server configuration
type ServerConfig struct {
	IntakeType     string
	ListenAddress  string
	RequestTimeout time.Duration
}

// SMTPConfig represents the SMTP intake configuration
type SMTPConfig struct {
	ListenAddress   string
	Domain          string
	MaxMessageBytes int64
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
}

// StoreConfig represents the result store configuration
type StoreConfig struct {
	Type             string
	Enabled          bool
	TTL              time.Duration
	CleanupFrequency time.Duration
	SQLitePath       string
	MySQLDSN         string
	PostgresURL      string
}

// AssistConfig represents the LLM fallback configuration
type AssistConfig struct {
	Enabled     bool
	Provider    string
	RateLimit   float64
	Burst       int
	Timeout     time.Duration
	MaxBodySize int
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// TelegramConfig represents the Telegram notifier configuration
type TelegramConfig struct {
	Enabled bool
	Token   string
	ChatID  int64
}

// MXConfig represents the MX verification configuration
type MXConfig struct {
	Enabled bool
	Servers []string
	Timeout time.Duration
}

// GetExtractor returns the extractor configuration
func (c *Config) GetExtractor() (ExtractorConfig, error) {
	var weights []WeightConfig
	if err := c.v.UnmarshalKey("extractor.weights", &weights); err != nil {
		return ExtractorConfig{}, fmt.Errorf("invalid extractor weights: %w", err)
	}

	return ExtractorConfig{
		Denylist:        c.GetStringSlice("extractor.denylist"),
		Suffixes:        c.GetStringSlice("extractor.suffixes"),
		SuffixTLDs:      c.GetStringSlice("extractor.suffix_tlds"),
		Weights:         weights,
		CompanyBonus:    c.GetInt("extractor.company_bonus"),
		DecodeEntities:  c.GetBool("extractor.decode_entities"),
		FoldUnicode:     c.GetBool("extractor.fold_unicode"),
		WebsiteDenylist: c.GetStringSlice("extractor.website_denylist"),
		PortalDomains:   c.v.GetStringMapStringSlice("extractor.portal_domains"),
		IgnoredDomains:  c.GetStringSlice("extractor.ignored_domains"),
	}, nil
}

// GetServer returns the intake server configuration
func (c *Config) GetServer() (ServerConfig, error) {
	timeout, err := c.GetDuration("server.request_timeout")
	if err != nil {
		return ServerConfig{}, err
	}

	return ServerConfig{
		IntakeType:     c.GetString("server.intake_type"),
		ListenAddress:  c.GetString("server.listen_address"),
		RequestTimeout: timeout,
	}, nil
}

// GetSMTP returns the SMTP intake configuration
func (c *Config) GetSMTP() (SMTPConfig, error) {
	readTimeout, err := c.GetDuration("smtp.read_timeout")
	if err != nil {
		return SMTPConfig{}, err
	}
	writeTimeout, err := c.GetDuration("smtp.write_timeout")
	if err != nil {
		return SMTPConfig{}, err
	}

	return SMTPConfig{
		ListenAddress:   c.GetString("smtp.listen_address"),
		Domain:          c.GetString("smtp.domain"),
		MaxMessageBytes: c.GetInt64("smtp.max_message_bytes"),
		ReadTimeout:     readTimeout,
		WriteTimeout:    writeTimeout,
	}, nil
}

// GetStore returns the result store configuration
func (c *Config) GetStore() (StoreConfig, error) {
	ttl, err := c.GetDuration("store.ttl")
	if err != nil {
		return StoreConfig{}, err
	}
	cleanupFreq, err := c.GetDuration("store.cleanup_frequency")
	if err != nil {
		return StoreConfig{}, err
	}

	return StoreConfig{
		Type:             c.GetString("store.type"),
		Enabled:          c.GetBool("store.enabled"),
		TTL:              ttl,
		CleanupFrequency: cleanupFreq,
		SQLitePath:       c.GetString("store.sqlite_path"),
		MySQLDSN:         c.GetString("store.mysql_dsn"),
		PostgresURL:      c.GetString("store.postgres_url"),
	}, nil
}

// GetAssist returns the LLM fallback configuration
func (c *Config) GetAssist() (AssistConfig, error) {
	timeout, err := c.GetDuration("assist.timeout")
	if err != nil {
		return AssistConfig{}, err
	}

	return AssistConfig{
		Enabled:     c.GetBool("assist.enabled"),
		Provider:    c.GetString("assist.provider"),
		RateLimit:   c.GetFloat64("assist.rate_limit"),
		Burst:       c.GetInt("assist.burst"),
		Timeout:     timeout,
		MaxBodySize: c.GetInt("assist.max_body_size"),
	}, nil
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
		TopP:        float32(c.GetFloat64("bedrock.top_p")),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
		TopP:        float32(c.GetFloat64("gemini.top_p")),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		BaseURL:     c.GetString("openai.base_url"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		TopP:        float32(c.GetFloat64("openai.top_p")),
	}
}

// GetTelegram returns the Telegram notifier configuration
func (c *Config) GetTelegram() TelegramConfig {
	return TelegramConfig{
		Enabled: c.GetBool("notify.telegram.enabled"),
		Token:   c.GetString("notify.telegram.token"),
		ChatID:  c.GetInt64("notify.telegram.chat_id"),
	}
}

// GetMX returns the MX verification configuration
func (c *Config) GetMX() (MXConfig, error) {
	timeout, err := c.GetDuration("verify.mx.timeout")
	if err != nil {
		return MXConfig{}, err
	}

	return MXConfig{
		Enabled: c.GetBool("verify.mx.enabled"),
		Servers: c.GetStringSlice("verify.mx.servers"),
		Timeout: timeout,
	}, nil
}
