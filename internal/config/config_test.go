package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thomas-vilte/ghdash/internal/errors"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GITHUB_API", "GITHUB_BASE_URL", "OPENAI_API_KEY", "GEMINI_API_KEY", "AI_PROVIDER",
		"AI_MODEL", "AI_BASE_URL", "CACHE_BACKEND", "CACHE_FILE", "REDIS_ADDR",
		"REDIS_PASSWORD", "WEB_DIR", "LANGUAGE", "PORT",
	} {
		t.Setenv(key, "")
	}
	t.Chdir(t.TempDir())
}

func TestLoad(t *testing.T) {
	t.Run("should apply defaults when only credentials are set", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GITHUB_API", "gh-token")
		t.Setenv("OPENAI_API_KEY", "sk-test")

		cfg, err := Load("")

		require.NoError(t, err)
		assert.Equal(t, 8000, cfg.Server.Port)
		assert.Equal(t, "gpt-4o-mini", cfg.AI.Model)
		assert.Equal(t, BackendFile, cfg.Cache.Backend)
		assert.Equal(t, "summary_cache.json", cfg.Cache.File)
		assert.Equal(t, 15*time.Second, cfg.Timeouts.GitHub)
		assert.Equal(t, 20, cfg.Limits.MaxPrioritizeIssues)
		assert.Equal(t, 10, cfg.AI.Tokens.Readiness)
		assert.Equal(t, ":8000", cfg.Address())
	})

	t.Run("should fail when the GitHub token is missing", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("OPENAI_API_KEY", "sk-test")

		_, err := Load("")

		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.ErrGitHubTokenMissing))
	})

	t.Run("should fail when the model key is missing", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GITHUB_API", "gh-token")

		_, err := Load("")

		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.ErrModelKeyMissing))
	})

	t.Run("should require the gemini key when gemini is the provider", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GITHUB_API", "gh-token")
		t.Setenv("AI_PROVIDER", "gemini")
		t.Setenv("OPENAI_API_KEY", "sk-test")

		_, err := Load("")
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.ErrModelKeyMissing))

		t.Setenv("GEMINI_API_KEY", "g-key")
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "gemini-2.5-flash", cfg.AI.Model)
	})

	t.Run("should read YAML and let the environment win", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		content := `
server:
  port: 9001
github:
  token: from-file
ai:
  openai_api_key: sk-file
  model: gpt-4o
cache:
  backend: redis
  redis_addr: localhost:6379
timeouts:
  github: 5s
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		t.Setenv("PORT", "9100")

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, 9100, cfg.Server.Port)
		assert.Equal(t, "from-file", cfg.GitHub.Token)
		assert.Equal(t, "gpt-4o", cfg.AI.Model)
		assert.Equal(t, BackendRedis, cfg.Cache.Backend)
		assert.Equal(t, 5*time.Second, cfg.Timeouts.GitHub)
		assert.Equal(t, 15*time.Second, cfg.Timeouts.Model)
	})

	t.Run("should load credentials from a .env file", func(t *testing.T) {
		clearEnv(t)
		os.Unsetenv("GITHUB_API")
		os.Unsetenv("OPENAI_API_KEY")
		require.NoError(t, os.WriteFile(".env", []byte("GITHUB_API=dotenv-token\nOPENAI_API_KEY=sk-dotenv\n"), 0o644))
		t.Cleanup(func() {
			os.Unsetenv("GITHUB_API")
			os.Unsetenv("OPENAI_API_KEY")
		})

		cfg, err := Load("")

		require.NoError(t, err)
		assert.Equal(t, "dotenv-token", cfg.GitHub.Token)
		assert.Equal(t, "sk-dotenv", cfg.AI.OpenAIAPIKey)
	})

	t.Run("should treat whitespace-only credentials as missing", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GITHUB_API", "   ")
		t.Setenv("OPENAI_API_KEY", "sk-test")

		_, err := Load("")

		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.ErrGitHubTokenMissing))

		t.Setenv("GITHUB_API", "gh-token")
		t.Setenv("OPENAI_API_KEY", " \t ")

		_, err = Load("")

		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.ErrModelKeyMissing))
	})

	t.Run("should trim credentials read from YAML", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "github:\n  token: \"  gh-token  \"\nai:\n  openai_api_key: \"   \"\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		_, err := Load(path)

		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.ErrModelKeyMissing))
	})

	t.Run("should reject a malformed port", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GITHUB_API", "gh-token")
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("PORT", "eighty")

		_, err := Load("")

		require.Error(t, err)
		assert.Equal(t, errors.TypeConfiguration, errors.TypeOf(err))
	})

	t.Run("should reject malformed YAML", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server: [oops"), 0o644))

		_, err := Load(path)

		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.ErrConfigRead))
	})
}

func TestRead(t *testing.T) {
	t.Run("should not require credentials", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CACHE_FILE", "other.json")

		cfg, err := Read("")

		require.NoError(t, err)
		assert.Empty(t, cfg.GitHub.Token)
		assert.Equal(t, "other.json", cfg.Cache.File)
	})
}

func TestValidate(t *testing.T) {
	t.Run("should reject an unknown cache backend", func(t *testing.T) {
		cfg := Default()
		cfg.GitHub.Token = "t"
		cfg.AI.OpenAIAPIKey = "k"
		cfg.Cache.Backend = "memcached"

		err := cfg.Validate()

		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.ErrInvalidConfig))
	})
}

func TestValidateBlankCredentials(t *testing.T) {
	t.Run("should reject a whitespace-only token set directly", func(t *testing.T) {
		cfg := Default()
		cfg.GitHub.Token = " \n "
		cfg.AI.OpenAIAPIKey = "k"

		err := cfg.Validate()

		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.ErrGitHubTokenMissing))
	})

	t.Run("should reject a whitespace-only gemini key", func(t *testing.T) {
		cfg := Default()
		cfg.GitHub.Token = "t"
		cfg.AI.Provider = ProviderGemini
		cfg.AI.GeminiAPIKey = "\t"

		err := cfg.Validate()

		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.ErrModelKeyMissing))
	})

	t.Run("should ignore whitespace env values when applying overrides", func(t *testing.T) {
		cfg := Default()
		env := map[string]string{"GITHUB_API": "   ", "OPENAI_API_KEY": " \t "}

		require.NoError(t, cfg.applyEnv(func(key string) (string, bool) {
			v, ok := env[key]
			return v, ok
		}))
		cfg.fillModel()

		assert.Empty(t, cfg.GitHub.Token)
		assert.True(t, stderrors.Is(cfg.Validate(), errors.ErrGitHubTokenMissing))
	})
}

func TestNormalizeLanguage(t *testing.T) {
	assert.Equal(t, LangES, NormalizeLanguage("es"))
	assert.Equal(t, LangEN, NormalizeLanguage("fr"))
}
