// Package config provides configuration management for the recommender
// engine.
//
// Configuration can be loaded from multiple sources (in order of precedence):
//  1. Environment variables (highest priority)
//  2. Configuration file (YAML)
//  3. Default values (lowest priority)
//
// Weight tables are validated at load time: two historical weight splits
// have circulated for this scoring function, so startup refuses an
// inconsistent configuration rather than silently picking one.
package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the complete server configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	GraphStore  GraphStoreConfig  `yaml:"graph_store"`
	Taxonomy    TaxonomyConfig    `yaml:"taxonomy"`
	Ranker      RankerConfig      `yaml:"ranker"`
	Similarity  SimilarityConfig  `yaml:"similarity"`
	Inference   InferenceConfig   `yaml:"inference"`
	Advisor     AdvisorConfig     `yaml:"advisor"`
	Critique    CritiqueConfig    `yaml:"critique"`
	Performance PerformanceConfig `yaml:"performance"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// TaxonomyConfig points the resolver's exact-match tier at its curated
// skill/domain catalogue. An empty CataloguePath is valid: the resolver
// then relies on the GraphStore's synonym table and fuzzy matching alone.
type TaxonomyConfig struct {
	CataloguePath string `yaml:"catalogue_path"`
}

// ServerConfig contains server-level configuration.
type ServerConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Environment string `yaml:"environment"`
}

// GraphStoreConfig contains the production GraphStore adapter's connection
// settings (see internal/graphstore/neo4jstore).
type GraphStoreConfig struct {
	URI      string `yaml:"uri"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// RankerConfig contains the utility ranker's named weights. Weights MUST
// sum to 1.0 within epsilon; Validate refuses to start otherwise.
type RankerConfig struct {
	SkillMatchWeight      float64 `yaml:"skill_match_weight"`
	PreferredSkillWeight  float64 `yaml:"preferred_skill_weight"`
	SeniorityWeight       float64 `yaml:"seniority_weight"`
	TimelineWeight        float64 `yaml:"timeline_weight"`
	TimezoneWeight        float64 `yaml:"timezone_weight"`
	SalaryWeight          float64 `yaml:"salary_weight"`
	YearsExperienceWeight float64 `yaml:"years_experience_weight"`
	DomainWeight          float64 `yaml:"domain_weight"`
	ConfidenceWeight      float64 `yaml:"confidence_weight"`

	ConfidenceMin float64 `yaml:"confidence_min"`
	ConfidenceMax float64 `yaml:"confidence_max"`
	SalaryMin     float64 `yaml:"salary_min"`
	SalaryMax     float64 `yaml:"salary_max"`
	YearsCap      float64 `yaml:"years_cap"`
}

// Weights returns the component weights as a name->weight map, the form the
// ranker's validator and score-breakdown builder consume.
func (r RankerConfig) Weights() map[string]float64 {
	return map[string]float64{
		"skill_match":      r.SkillMatchWeight,
		"preferred_skill":  r.PreferredSkillWeight,
		"seniority":        r.SeniorityWeight,
		"timeline":         r.TimelineWeight,
		"timezone":         r.TimezoneWeight,
		"salary":           r.SalaryWeight,
		"years_experience": r.YearsExperienceWeight,
		"domain":           r.DomainWeight,
		"confidence":       r.ConfidenceWeight,
	}
}

// SimilarityConfig contains the similarity scorer and diversity selector's
// tunables.
type SimilarityConfig struct {
	SkillsWeight          float64 `yaml:"skills_weight"`
	YearsWeight           float64 `yaml:"years_weight"`
	DomainWeight          float64 `yaml:"domain_weight"`
	TimezoneWeight        float64 `yaml:"timezone_weight"`
	MinCorrelationStrength float64 `yaml:"min_correlation_strength"`
	DiversityMultiplier   int     `yaml:"diversity_multiplier"`
	DiversityLambda       float64 `yaml:"diversity_lambda"`
}

// Weights returns the four-component similarity weight map.
func (s SimilarityConfig) Weights() map[string]float64 {
	return map[string]float64{
		"skills":   s.SkillsWeight,
		"years":    s.YearsWeight,
		"domain":   s.DomainWeight,
		"timezone": s.TimezoneWeight,
	}
}

// InferenceConfig contains the inference engine's fixed-point tunables.
type InferenceConfig struct {
	MaxIterations int `yaml:"max_iterations"`
}

// AdvisorConfig contains the constraint advisor's thresholds.
type AdvisorConfig struct {
	SparseThreshold      int     `yaml:"sparse_threshold"`
	ManyThreshold        int     `yaml:"many_threshold"`
	MaxConflictSets      int     `yaml:"max_conflict_sets"`
	MinSupportThreshold  float64 `yaml:"min_support_threshold"`
	MaxSuggestions       int     `yaml:"max_suggestions"`
	SalaryWidenPercent   float64 `yaml:"salary_widen_percent"`
}

// CritiqueConfig contains critique tunables. The miner reads
// MinSupportThreshold and MaxSuggestions; the interpreter's budget adjustment
// uses its own constants (factor 0.20, floor 30000) and does not read
// BudgetAdjustmentFactor or BudgetFloor.
type CritiqueConfig struct {
	BudgetAdjustmentFactor float64 `yaml:"budget_adjustment_factor"`
	BudgetFloor            int     `yaml:"budget_floor"`
	MinSupportThreshold    float64 `yaml:"min_support_threshold"`
	MaxSuggestions         int     `yaml:"max_suggestions"`
}

// PerformanceConfig contains performance tuning options.
type PerformanceConfig struct {
	GraphCacheSize  int `yaml:"graph_cache_size"`
	GraphCacheTTLMinutes int `yaml:"graph_cache_ttl_minutes"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level            string `yaml:"level"`
	EnableTimestamps bool   `yaml:"enable_timestamps"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Name:        "engineer-fit-recommender",
			Version:     "1.0.0",
			Environment: "development",
		},
		GraphStore: GraphStoreConfig{
			URI:      "bolt://localhost:7687",
			Username: "neo4j",
			Password: "password",
			Database: "neo4j",
		},
		Taxonomy: TaxonomyConfig{},
		Ranker: RankerConfig{
			SkillMatchWeight:      0.30,
			PreferredSkillWeight:  0.12,
			SeniorityWeight:       0.10,
			TimelineWeight:        0.08,
			TimezoneWeight:        0.05,
			SalaryWeight:          0.15,
			YearsExperienceWeight: 0.10,
			DomainWeight:          0.07,
			ConfidenceWeight:      0.03,
			ConfidenceMin:         0.5,
			ConfidenceMax:         1.0,
			SalaryMin:             80000,
			SalaryMax:             300000,
			YearsCap:              20,
		},
		Similarity: SimilarityConfig{
			SkillsWeight:           0.45,
			YearsWeight:            0.27,
			DomainWeight:           0.22,
			TimezoneWeight:         0.06,
			MinCorrelationStrength: 0.7,
			DiversityMultiplier:    3,
			DiversityLambda:        0.5,
		},
		Inference: InferenceConfig{
			MaxIterations: 8,
		},
		Advisor: AdvisorConfig{
			SparseThreshold:     3,
			ManyThreshold:       25,
			MaxConflictSets:     3,
			MinSupportThreshold: 0.15,
			MaxSuggestions:      5,
			SalaryWidenPercent:  0.20,
		},
		Critique: CritiqueConfig{
			BudgetAdjustmentFactor: 0.20,
			BudgetFloor:            30000,
			MinSupportThreshold:    0.15,
			MaxSuggestions:         5,
		},
		Performance: PerformanceConfig{
			GraphCacheSize:       4,
			GraphCacheTTLMinutes: 10,
		},
		Logging: LoggingConfig{
			Level:            "info",
			EnableTimestamps: true,
		},
	}
}

// Load loads configuration from environment variables over the defaults.
func Load() (*Config, error) {
	cfg := Default()
	if err := cfg.loadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a YAML file, then applies
// environment overrides on top, so an env var always wins over the file.
func LoadFromFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.loadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadFromEnv overrides select fields from environment variables, following
// the pattern REC_<SECTION>_<KEY>.
func (c *Config) loadFromEnv() error {
	if v := os.Getenv("REC_GRAPH_STORE_URI"); v != "" {
		c.GraphStore.URI = v
	}
	if v := os.Getenv("REC_GRAPH_STORE_USERNAME"); v != "" {
		c.GraphStore.Username = v
	}
	if v := os.Getenv("REC_GRAPH_STORE_PASSWORD"); v != "" {
		c.GraphStore.Password = v
	}
	if v := os.Getenv("REC_GRAPH_STORE_DATABASE"); v != "" {
		c.GraphStore.Database = v
	}
	if v := os.Getenv("REC_TAXONOMY_CATALOGUE_PATH"); v != "" {
		c.Taxonomy.CataloguePath = v
	}
	if v := os.Getenv("REC_ADVISOR_SPARSE_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Advisor.SparseThreshold = n
		}
	}
	if v := os.Getenv("REC_ADVISOR_MANY_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Advisor.ManyThreshold = n
		}
	}
	if v := os.Getenv("REC_LOGGING_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	return nil
}

const weightSumEpsilon = 1e-6

// Validate checks the configuration for internal consistency. It refuses
// inconsistent weight tables rather than silently normalizing them; see
// the weight-table decision recorded in DESIGN.md.
func (c *Config) Validate() error {
	if c.Server.Name == "" {
		return fmt.Errorf("server.name cannot be empty")
	}

	sum := 0.0
	for _, w := range c.Ranker.Weights() {
		if w < 0 {
			return fmt.Errorf("ranker weights must be non-negative")
		}
		sum += w
	}
	if math.Abs(sum-1.0) > weightSumEpsilon {
		return fmt.Errorf("ranker.weights must sum to 1.0 (±%g), got %g", weightSumEpsilon, sum)
	}

	simSum := 0.0
	for _, w := range c.Similarity.Weights() {
		if w < 0 {
			return fmt.Errorf("similarity weights must be non-negative")
		}
		simSum += w
	}
	if math.Abs(simSum-1.0) > weightSumEpsilon {
		return fmt.Errorf("similarity.weights must sum to 1.0 (±%g), got %g", weightSumEpsilon, simSum)
	}

	if c.Inference.MaxIterations < 1 {
		return fmt.Errorf("inference.max_iterations must be >= 1")
	}
	if c.Advisor.SparseThreshold < 0 || c.Advisor.ManyThreshold <= c.Advisor.SparseThreshold {
		return fmt.Errorf("advisor.many_threshold must exceed advisor.sparse_threshold")
	}
	if c.Similarity.DiversityMultiplier < 1 {
		return fmt.Errorf("similarity.diversity_multiplier must be >= 1")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	return nil
}
