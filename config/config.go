package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ResourceDirEnv overrides Resources.Dir when set.
const ResourceDirEnv = "TOPICAPI_RESOURCE_DIR"

// ResourceConfig locates the dictionary, corpus and trained models.
type ResourceConfig struct {
	Dir         string `yaml:"dir"`
	Dictionary  string `yaml:"dictionary"`
	Corpus      string `yaml:"corpus"`
	ModelPrefix string `yaml:"model_prefix"`
}

// LDAConfig holds training and inference hyperparameters for LDA.
// An Alpha of zero means a symmetric 1/topics prior.
type LDAConfig struct {
	Alpha               float64 `yaml:"alpha"`
	Eta                 float64 `yaml:"eta"`
	Iterations          int     `yaml:"iterations"`
	InferenceIterations int     `yaml:"inference_iterations"`
	BurnIn              int     `yaml:"burn_in"`
	Seed                int64   `yaml:"seed"`
	MinimumProbability  float64 `yaml:"minimum_probability"`
}

type TokenizerConfig struct {
	MinLen   int  `yaml:"min_len"`
	MaxLen   int  `yaml:"max_len"`
	Lower    bool `yaml:"lower"`
	Deaccent bool `yaml:"deaccent"`
}

// Config is the root configuration structure.
type Config struct {
	Resources ResourceConfig  `yaml:"resources"`
	LDA       LDAConfig       `yaml:"lda"`
	Tokenizer TokenizerConfig `yaml:"tokenizer"`
}

// Load reads a config from path on top of the defaults. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	applyEnv(cfg)
	return cfg, nil
}

// Save writes the config to path, creating directories as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func Default() *Config {
	return &Config{
		Resources: ResourceConfig{
			Dir:         "resources",
			Dictionary:  "wordids.txt.bz2",
			Corpus:      "tfidf.mm",
			ModelPrefix: "trained",
		},
		LDA: LDAConfig{
			Eta:                 0.01,
			Iterations:          1000,
			InferenceIterations: 50,
			BurnIn:              10,
			Seed:                1,
			MinimumProbability:  0.01,
		},
		Tokenizer: TokenizerConfig{
			MinLen: 2,
			MaxLen: 15,
			Lower:  true,
		},
	}
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Resources.Dir == "" {
		cfg.Resources.Dir = def.Resources.Dir
	}
	if cfg.Resources.Dictionary == "" {
		cfg.Resources.Dictionary = def.Resources.Dictionary
	}
	if cfg.Resources.Corpus == "" {
		cfg.Resources.Corpus = def.Resources.Corpus
	}
	if cfg.Resources.ModelPrefix == "" {
		cfg.Resources.ModelPrefix = def.Resources.ModelPrefix
	}
	if cfg.LDA.Eta <= 0 {
		cfg.LDA.Eta = def.LDA.Eta
	}
	if cfg.LDA.Iterations <= 0 {
		cfg.LDA.Iterations = def.LDA.Iterations
	}
	if cfg.LDA.InferenceIterations <= 0 {
		cfg.LDA.InferenceIterations = def.LDA.InferenceIterations
	}
	if cfg.LDA.BurnIn < 0 {
		cfg.LDA.BurnIn = 0
	}
	if cfg.LDA.MinimumProbability < 0 {
		cfg.LDA.MinimumProbability = 0
	}
	if cfg.Tokenizer.MinLen <= 0 {
		cfg.Tokenizer.MinLen = def.Tokenizer.MinLen
	}
	if cfg.Tokenizer.MaxLen < cfg.Tokenizer.MinLen {
		cfg.Tokenizer.MaxLen = def.Tokenizer.MaxLen
	}
}

func applyEnv(cfg *Config) {
	if dir := os.Getenv(ResourceDirEnv); dir != "" {
		cfg.Resources.Dir = dir
	}
}

func (c *Config) DictionaryPath() string {
	return filepath.Join(c.Resources.Dir, c.Resources.Dictionary)
}

func (c *Config) CorpusPath() string {
	return filepath.Join(c.Resources.Dir, c.Resources.Corpus)
}

// ModelPath returns the location of the persisted model for algo,
// e.g. resources/trained.lda.
func (c *Config) ModelPath(algo string) string {
	return filepath.Join(c.Resources.Dir, c.Resources.ModelPrefix+"."+strings.ToLower(algo))
}
