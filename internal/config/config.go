package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/thomas-vilte/ghdash/internal/errors"
)

type (
	Config struct {
		Server   ServerConfig   `yaml:"server"`
		GitHub   GitHubConfig   `yaml:"github"`
		AI       AIConfig       `yaml:"ai"`
		Cache    CacheConfig    `yaml:"cache"`
		Limits   LimitsConfig   `yaml:"limits"`
		Timeouts TimeoutsConfig `yaml:"timeouts"`
		Logging  LoggingConfig  `yaml:"logging"`
		Language string         `yaml:"language" validate:"oneof=en es"`
	}

	ServerConfig struct {
		Port   int    `yaml:"port" validate:"min=1,max=65535"`
		WebDir string `yaml:"web_dir"`
	}

	GitHubConfig struct {
		Token string `yaml:"token" validate:"notblank"`
		// BaseURL points the REST and GraphQL clients at a GitHub Enterprise host.
		BaseURL string `yaml:"base_url" validate:"omitempty,url"`
	}

	AIConfig struct {
		Provider     string       `yaml:"provider" validate:"oneof=openai gemini"`
		Model        string       `yaml:"model"`
		BaseURL      string       `yaml:"base_url" validate:"omitempty,url"`
		OpenAIAPIKey string       `yaml:"openai_api_key" validate:"required_if=Provider openai"`
		GeminiAPIKey string       `yaml:"gemini_api_key" validate:"required_if=Provider gemini"`
		Tokens       TokenBudgets `yaml:"tokens"`
	}

	// TokenBudgets caps the completion length of each kind of model call.
	TokenBudgets struct {
		Summary    int `yaml:"summary" validate:"min=1"`
		Issue      int `yaml:"issue" validate:"min=1"`
		Prioritize int `yaml:"prioritize" validate:"min=1"`
		Extract    int `yaml:"extract" validate:"min=1"`
		Chat       int `yaml:"chat" validate:"min=1"`
		Readiness  int `yaml:"readiness" validate:"min=1"`
		FollowUp   int `yaml:"follow_up" validate:"min=1"`
	}

	CacheConfig struct {
		Backend       string `yaml:"backend" validate:"oneof=file badger redis"`
		File          string `yaml:"file" validate:"required_if=Backend file"`
		BadgerDir     string `yaml:"badger_dir" validate:"required_if=Backend badger"`
		RedisAddr     string `yaml:"redis_addr" validate:"required_if=Backend redis"`
		RedisPassword string `yaml:"redis_password"`
		RedisDB       int    `yaml:"redis_db" validate:"min=0"`
		RedisPrefix   string `yaml:"redis_prefix"`
	}

	LimitsConfig struct {
		MaxPrioritizeIssues int `yaml:"max_prioritize_issues" validate:"min=1"`
		MaxPRFiles          int `yaml:"max_pr_files" validate:"min=1"`
		MaxPatchSize        int `yaml:"max_patch_size" validate:"min=1"`
	}

	TimeoutsConfig struct {
		GitHub time.Duration `yaml:"github" validate:"gt=0"`
		Model  time.Duration `yaml:"model" validate:"gt=0"`
	}

	LoggingConfig struct {
		Format string `yaml:"format" validate:"oneof=pretty json"`
	}
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	BackendFile   = "file"
	BackendBadger = "badger"
	BackendRedis  = "redis"

	DefaultConfigFile = "config.yaml"

	defaultPort          = 8000
	defaultOpenAIModel   = "gpt-4o-mini"
	defaultGeminiModel   = "gemini-2.5-flash"
	defaultCacheFile     = "summary_cache.json"
	defaultBadgerDir     = ".ghdash-cache"
	defaultRedisPrefix   = "ghdash:summary:"
	defaultWebDir        = "web"
	defaultGitHubTimeout = 15 * time.Second
	defaultModelTimeout  = 15 * time.Second
)

// Default returns a configuration with every optional value filled in.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:   defaultPort,
			WebDir: defaultWebDir,
		},
		AI: AIConfig{
			Provider: ProviderOpenAI,
			Tokens: TokenBudgets{
				Summary:    500,
				Issue:      300,
				Prioritize: 200,
				Extract:    500,
				Chat:       800,
				Readiness:  10,
				FollowUp:   120,
			},
		},
		Cache: CacheConfig{
			Backend:     BackendFile,
			File:        defaultCacheFile,
			BadgerDir:   defaultBadgerDir,
			RedisPrefix: defaultRedisPrefix,
		},
		Limits: LimitsConfig{
			MaxPrioritizeIssues: 20,
			MaxPRFiles:          20,
			MaxPatchSize:        1000,
		},
		Timeouts: TimeoutsConfig{
			GitHub: defaultGitHubTimeout,
			Model:  defaultModelTimeout,
		},
		Logging: LoggingConfig{
			Format: "pretty",
		},
		Language: LangEN,
	}
}

// Load reads the configuration and validates it.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read builds the configuration from defaults, an optional YAML file, an
// optional .env file and the process environment, in increasing precedence.
// A missing file is not an error; an unreadable or malformed one is. The
// result is not validated, so commands that need no credentials can use it.
func Read(path string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, errors.ErrConfigRead.WithError(err).WithContext("file", ".env")
		}
	}

	cfg := Default()

	if path == "" {
		path = DefaultConfigFile
	}
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.trimCredentials()
	cfg.fillModel()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.ErrConfigRead.WithError(err).WithContext("file", path)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.ErrConfigRead.WithError(fmt.Errorf("failed to parse YAML config: %w", err)).
			WithContext("file", path)
	}
	return nil
}

type lookupFunc func(key string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	strVars := map[string]*string{
		"GITHUB_API":      &c.GitHub.Token,
		"GITHUB_BASE_URL": &c.GitHub.BaseURL,
		"OPENAI_API_KEY":  &c.AI.OpenAIAPIKey,
		"GEMINI_API_KEY":  &c.AI.GeminiAPIKey,
		"AI_PROVIDER":     &c.AI.Provider,
		"AI_MODEL":        &c.AI.Model,
		"AI_BASE_URL":     &c.AI.BaseURL,
		"CACHE_BACKEND":   &c.Cache.Backend,
		"CACHE_FILE":      &c.Cache.File,
		"REDIS_ADDR":      &c.Cache.RedisAddr,
		"REDIS_PASSWORD":  &c.Cache.RedisPassword,
		"WEB_DIR":         &c.Server.WebDir,
		"LANGUAGE":        &c.Language,
	}
	for key, dst := range strVars {
		if v, ok := lookup(key); ok {
			if v = strings.TrimSpace(v); v != "" {
				*dst = v
			}
		}
	}

	if v, _ := lookup("PORT"); strings.TrimSpace(v) != "" {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return errors.ErrInvalidConfig.WithError(err).WithContext("env", "PORT")
		}
		c.Server.Port = port
	}
	return nil
}

// trimCredentials drops surrounding whitespace so a blank credential fails
// validation instead of reaching the clients.
func (c *Config) trimCredentials() {
	c.GitHub.Token = strings.TrimSpace(c.GitHub.Token)
	c.AI.OpenAIAPIKey = strings.TrimSpace(c.AI.OpenAIAPIKey)
	c.AI.GeminiAPIKey = strings.TrimSpace(c.AI.GeminiAPIKey)
}

func (c *Config) fillModel() {
	if c.AI.Model != "" {
		return
	}
	if c.AI.Provider == ProviderGemini {
		c.AI.Model = defaultGeminiModel
		return
	}
	c.AI.Model = defaultOpenAIModel
}

// Validate checks the configuration and maps missing credentials to their
// dedicated errors so startup can print an actionable message.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return errors.ErrInvalidConfig.WithError(err)
	}
	c.trimCredentials()
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) {
		for _, fe := range verrs {
			switch fe.StructNamespace() {
			case "Config.GitHub.Token":
				return errors.ErrGitHubTokenMissing
			case "Config.AI.OpenAIAPIKey", "Config.AI.GeminiAPIKey":
				return errors.ErrModelKeyMissing.WithContext("provider", c.AI.Provider)
			}
		}
	}
	return errors.ErrInvalidConfig.WithError(err)
}

// Address is the listen address for the HTTP server.
func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
