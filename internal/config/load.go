package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/alefba/internal/llm"
	"github.com/abhisek/alefba/internal/session"
	"github.com/abhisek/alefba/internal/store"
)

// EnvPrefix prefixes every environment override, e.g. ALEFBA_LOG_LEVEL.
const EnvPrefix = "ALEFBA"

// flagKeys maps command line flags onto config keys.
var flagKeys = map[string]string{
	"db":        "database.path",
	"log-level": "log.level",
}

// Load reads the configuration. dataDir holds the optional config.yaml and
// the default database and log paths; an empty dataDir uses
// store.DataDir(). flags may be nil.
func Load(dataDir string, flags *pflag.FlagSet) (*Config, error) {
	if dataDir == "" {
		d, err := store.DataDir()
		if err != nil {
			return nil, err
		}
		dataDir = d
	}

	v := viper.New()
	setDefaults(v, dataDir)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dataDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// ALEFBA_DB predates the config file.
	if err := v.BindEnv("database.path", "ALEFBA_DATABASE_PATH", "ALEFBA_DB"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("llm.provider"); err != nil {
		return nil, err
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	// No provider chosen: use whichever API key is present, if any.
	if cfg.LLM.Provider == "" {
		if discovered, ok := llm.DiscoverConfig(); ok {
			cfg.LLM.Provider = discovered.Provider
			cfg.LLM.Anthropic.APIKey = discovered.Anthropic.APIKey
			cfg.LLM.OpenAI.APIKey = discovered.OpenAI.APIKey
			cfg.LLM.Gemini.APIKey = discovered.Gemini.APIKey
			cfg.LLM.OpenRouter.APIKey = discovered.OpenRouter.APIKey
		} else {
			cfg.LLM.Provider = llm.ProviderNone
		}
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can see it during
// Unmarshal.
func setDefaults(v *viper.Viper, dataDir string) {
	v.SetDefault("database.path", filepath.Join(dataDir, "alefba.db"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(dataDir, "alefba.log"))

	s := session.DefaultConfig()
	v.SetDefault("session.learning_extras", s.LearningExtras)
	v.SetDefault("session.review_size", s.ReviewSize)
	v.SetDefault("session.success_delay", s.SuccessDelay)
	v.SetDefault("session.flawed_delay", s.FlawedDelay)
	v.SetDefault("session.missing_letter_counts_for_streak", s.MissingLetterCountsForStreak)

	l := llm.DefaultConfig()
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", l.Anthropic.Model)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", l.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", l.Gemini.Model)
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", l.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")
	v.SetDefault("llm.retry.max_attempts", l.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", l.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", l.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", l.Retry.Multiplier)
	v.SetDefault("llm.timeout", l.Timeout)
}

var (
	validate *validator.Validate
	trans    ut.Translator
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	english := en.New()
	uni := ut.New(english, english)
	trans, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, trans)

	// Report keys as they are written in config.yaml.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate checks field constraints and that the selected LLM provider has
// credentials.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		var errs validator.ValidationErrors
		if !errors.As(err, &errs) {
			return fmt.Errorf("validate config: %w", err)
		}
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			key := strings.TrimPrefix(e.Namespace(), "Config.")
			msgs = append(msgs, key+": "+e.Translate(trans))
		}
		sort.Strings(msgs)
		return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
	}
	return cfg.LLM.Validate()
}
