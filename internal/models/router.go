package models

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type RouteInput struct {
	Debug bool
}

type Decision struct {
	Provider string
	Model    string
	Rule     string
}

type Rule struct {
	Name        string `yaml:"name"`
	WhenDebug   *bool  `yaml:"debug"`
	UseProvider string `yaml:"use_provider"`
	UseModel    string `yaml:"use_model"`
}

type Config struct {
	DefaultProvider string `yaml:"default_provider"`
	DefaultModel    string `yaml:"default_model"`
	Rules           []Rule `yaml:"rules"`
}

// Router picks the AI provider and model for a ranking request. Rules from an
// optional YAML file are evaluated in order; the first match wins.
type Router struct {
	cfg Config
}

func NewDefaultRouter() *Router {
	provider := strings.TrimSpace(os.Getenv("AI_PROVIDER"))
	if provider == "" {
		provider = "local"
	}
	return &Router{cfg: Config{DefaultProvider: provider}}
}

func LoadFromEnv() (*Router, error) {
	path := strings.TrimSpace(os.Getenv("DYNAMICDO_MODEL_ROUTING_FILE"))
	if path == "" {
		return NewDefaultRouter(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model routing file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse model routing file: %w", err)
	}
	if strings.TrimSpace(cfg.DefaultProvider) == "" {
		cfg.DefaultProvider = NewDefaultRouter().cfg.DefaultProvider
	}
	return &Router{cfg: cfg}, nil
}

func (r *Router) Route(in RouteInput) Decision {
	decision := Decision{
		Provider: r.cfg.DefaultProvider,
		Model:    r.cfg.DefaultModel,
		Rule:     "default",
	}
	for _, rule := range r.cfg.Rules {
		if rule.WhenDebug != nil && *rule.WhenDebug != in.Debug {
			continue
		}
		if strings.TrimSpace(rule.UseProvider) != "" {
			decision.Provider = strings.TrimSpace(rule.UseProvider)
		}
		if strings.TrimSpace(rule.UseModel) != "" {
			decision.Model = strings.TrimSpace(rule.UseModel)
		}
		decision.Rule = rule.Name
		return decision
	}
	return decision
}
