// Package config loads the immutable service configuration: a YAML file with
// env-var overrides. The Config is built once in main and injected; nothing
// reads it through globals.
package config

import (
    "fmt"
    "os"
    "strconv"

    "gopkg.in/yaml.v3"
)

type Config struct {
    Addr     string `yaml:"addr"`
    LogLevel string `yaml:"logLevel"`
    RedisURL string `yaml:"redisURL"`

    Data       Data       `yaml:"data"`
    Pricing    Pricing    `yaml:"pricing"`
    Extraction Extraction `yaml:"extraction"`
    RateLimit  RateLimit  `yaml:"rateLimit"`
}

// Data points at the flat-file rate/zone/surcharge datasets.
type Data struct {
    PricingCSV    string `yaml:"pricingCSV"`
    ZonesCSV      string `yaml:"zonesCSV"`
    SurchargesCSV string `yaml:"surchargesCSV"`
}

// Pricing holds the tunable pricing knobs. Billing constants that the rules
// define as fixed (volumetric density, standard pallet) live in the pricing
// package, not here.
type Pricing struct {
    FuelRate           float64  `yaml:"fuelRate"`           // fraction of base price, default 0.08
    MetroZones         []string `yaml:"metroZones"`         // zones carrying the metro surcharge
    MoffettMinQuantity int      `yaml:"moffettMinQuantity"` // below this the moffett fee is omitted
    DefaultService     string   `yaml:"defaultService"`     // substituted when the requested level is unavailable
}

// Extraction configures the email extraction collaborator.
type Extraction struct {
    BaseURL      string  `yaml:"baseURL"`
    Model        string  `yaml:"model"`
    APIKey       string  `yaml:"-"` // from OPENAI_API_KEY only, never the file
    TimeoutSec   int     `yaml:"timeoutSec"`
    RPS          float64 `yaml:"rps"`
    CacheTTLMin  int     `yaml:"cacheTTLMin"`
}

type RateLimit struct {
    RPS   float64 `yaml:"rps"`
    Burst int     `yaml:"burst"`
}

// Default returns the built-in configuration, matching the shipped data/ files.
func Default() Config {
    return Config{
        Addr:     ":8080",
        LogLevel: "info",
        Data: Data{
            PricingCSV:    "data/pricing.csv",
            ZonesCSV:      "data/zones.csv",
            SurchargesCSV: "data/surcharges.csv",
        },
        Pricing: Pricing{
            FuelRate:           0.08,
            MetroZones:         []string{"5", "6"},
            MoffettMinQuantity: 8,
            DefaultService:     "ND",
        },
        Extraction: Extraction{
            BaseURL:     "https://api.openai.com/v1",
            Model:       "gpt-4o-mini",
            TimeoutSec:  30,
            RPS:         2,
            CacheTTLMin: 60,
        },
        RateLimit: RateLimit{RPS: 20, Burst: 40},
    }
}

// Load reads path (optional; missing file keeps defaults) and applies env
// overrides: PORT, REDIS_URL, OPENAI_API_KEY, RATE_RPS, RATE_BURST, LOG_LEVEL.
func Load(path string) (Config, error) {
    cfg := Default()
    if path != "" {
        data, err := os.ReadFile(path)
        if err == nil {
            if err := yaml.Unmarshal(data, &cfg); err != nil {
                return cfg, fmt.Errorf("parse config %s: %w", path, err)
            }
        } else if !os.IsNotExist(err) {
            return cfg, fmt.Errorf("read config %s: %w", path, err)
        }
    }
    applyEnv(&cfg)
    return cfg, nil
}

func applyEnv(cfg *Config) {
    if v := os.Getenv("PORT"); v != "" { cfg.Addr = ":" + v }
    if v := os.Getenv("REDIS_URL"); v != "" { cfg.RedisURL = v }
    if v := os.Getenv("OPENAI_API_KEY"); v != "" { cfg.Extraction.APIKey = v }
    if v := os.Getenv("LOG_LEVEL"); v != "" { cfg.LogLevel = v }
    if v := os.Getenv("RATE_RPS"); v != "" {
        if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 { cfg.RateLimit.RPS = f }
    }
    if v := os.Getenv("RATE_BURST"); v != "" {
        if n, err := strconv.Atoi(v); err == nil && n > 0 { cfg.RateLimit.Burst = n }
    }
}
