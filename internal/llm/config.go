package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of generation task being performed.
type TaskType string

const (
	TaskPost    TaskType = "post"
	TaskComment TaskType = "comment"
)

// TaskConfig holds per-task generation parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// Config holds all configuration for the generation client.
type Config struct {
	Endpoint      string
	APIKey        string
	Model         string
	TimeoutMs     int
	MaxRetries    int // retries after a rate-limited response
	BackoffMs     int // initial backoff, doubled per attempt
	MaxConcurrent int // global cap on in-flight provider calls
	LogCalls      bool
	Tasks         map[TaskType]TaskConfig
}

// DefaultConfig returns a Config with sensible defaults. The post and comment
// tasks run hot; Reddit voices need the variance.
func DefaultConfig() Config {
	return Config{
		Endpoint:      "https://api.groq.com/openai/v1",
		Model:         "llama-3.3-70b-versatile",
		TimeoutMs:     30000,
		MaxRetries:    3,
		BackoffMs:     500,
		MaxConcurrent: 4,
		Tasks: map[TaskType]TaskConfig{
			TaskPost:    {Temperature: 0.9, MaxTokens: 1024, TimeoutMs: 30000},
			TaskComment: {Temperature: 0.9, MaxTokens: 512, TimeoutMs: 20000},
		},
	}
}

// LoadConfig reads client configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("SEEDPOST_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("SEEDPOST_LLM_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("SEEDPOST_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("SEEDPOST_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if n, ok := envInt("SEEDPOST_LLM_TIMEOUT_MS"); ok {
		cfg.TimeoutMs = n
	}
	if n, ok := envInt("SEEDPOST_LLM_BACKOFF_MS"); ok {
		cfg.BackoffMs = n
	}
	if v := os.Getenv("SEEDPOST_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if n, ok := envInt("SEEDPOST_LLM_MAX_CONCURRENT"); ok {
		cfg.MaxConcurrent = n
	}

	applyTaskTimeoutEnv(&cfg, TaskPost, "SEEDPOST_LLM_POST_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskComment, "SEEDPOST_LLM_COMMENT_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
func (c Config) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func envInt(name string) (int, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func applyTaskTimeoutEnv(cfg *Config, task TaskType, envName string) {
	n, ok := envInt(envName)
	if !ok {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
