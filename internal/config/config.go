package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/palsulearavapsit/SPACESCOPE/internal/logger"
	"github.com/palsulearavapsit/SPACESCOPE/internal/utils"
)

// Config is the full runtime configuration. Every knob has a safe default;
// a missing environment variable never crashes the process.
type Config struct {
	NASAAPIKey   string
	MaxRetries   int
	RetryDelay   time.Duration
	FetchTimeout time.Duration
	CacheTTL     time.Duration
	RedisAddr    string
	ServerPort   string
	Sources      Sources
}

// Sources is the catalog of per-adapter parameters. It can be replaced
// wholesale from a YAML file named by SOURCES_CONFIG.
type Sources struct {
	Satellites      []Satellite   `yaml:"satellites"`
	MediaQuery      string        `yaml:"media_query"`
	DatasetQuery    string        `yaml:"dataset_query"`
	EONETLimit      int           `yaml:"eonet_limit"`
	DONKIWindowDays int           `yaml:"donki_window_days"`
	GIBSLayers      []GIBSLayer   `yaml:"gibs_layers"`
	TrekProducts    []TrekProduct `yaml:"trek_products"`
}

type Satellite struct {
	CatalogNumber string `yaml:"catalog_number"`
	Name          string `yaml:"name"`
}

type GIBSLayer struct {
	Name        string `yaml:"name"`
	ProductType string `yaml:"product_type"`
	Resolution  string `yaml:"resolution"`
}

type TrekProduct struct {
	Body    string `yaml:"body"`
	Product string `yaml:"product"`
}

// Load builds the configuration from the environment plus the optional
// sources YAML.
func Load(log *logger.Logger) (*Config, error) {
	cfg := &Config{
		NASAAPIKey:   utils.GetEnv("NASA_API_KEY", "DEMO_KEY", log),
		MaxRetries:   utils.GetEnvAsInt("MAX_RETRIES", 3, log),
		RetryDelay:   time.Duration(utils.GetEnvAsInt("RETRY_DELAY_SECONDS", 2, log)) * time.Second,
		FetchTimeout: time.Duration(utils.GetEnvAsInt("FETCH_TIMEOUT_SECONDS", 30, log)) * time.Second,
		CacheTTL:     time.Duration(utils.GetEnvAsInt("CACHE_TTL_SECONDS", 86400, log)) * time.Second,
		RedisAddr:    utils.GetEnv("REDIS_ADDR", "", log),
		ServerPort:   utils.GetEnv("SERVER_PORT", "8000", log),
		Sources:      DefaultSources(),
	}
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 1
	}

	if path := utils.GetEnv("SOURCES_CONFIG", "", log); path != "" {
		if err := cfg.Sources.loadFile(path); err != nil {
			return nil, fmt.Errorf("load sources config %s: %w", path, err)
		}
	}
	return cfg, nil
}

// DefaultSources is the built-in catalog, matching the providers the
// pipeline tracked before the catalog became configurable.
func DefaultSources() Sources {
	return Sources{
		Satellites: []Satellite{
			{CatalogNumber: "25544", Name: "ISS"},
			{CatalogNumber: "39084", Name: "Hubble"},
			{CatalogNumber: "34602", Name: "GOES-18"},
		},
		MediaQuery:      "space",
		DatasetQuery:    "space biology",
		EONETLimit:      100,
		DONKIWindowDays: 30,
		GIBSLayers: []GIBSLayer{
			{Name: "MODIS_Terra_CorrectedReflectance_TrueColor", ProductType: "corrected_reflectance", Resolution: "250m"},
			{Name: "MODIS_Terra_Snow_Cover", ProductType: "snow", Resolution: "500m"},
			{Name: "AMSR2_Sea_Ice_Concentration_12km", ProductType: "sea_ice", Resolution: "12km"},
		},
		TrekProducts: []TrekProduct{
			{Body: "Moon", Product: "SRTM30_PLUS"},
			{Body: "Mars", Product: "MOLA"},
			{Body: "Vesta", Product: "DEM"},
		},
	}
}

func (s *Sources) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var loaded Sources
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		return err
	}
	// Only replace sections the file actually sets.
	if len(loaded.Satellites) > 0 {
		s.Satellites = loaded.Satellites
	}
	if loaded.MediaQuery != "" {
		s.MediaQuery = loaded.MediaQuery
	}
	if loaded.DatasetQuery != "" {
		s.DatasetQuery = loaded.DatasetQuery
	}
	if loaded.EONETLimit > 0 {
		s.EONETLimit = loaded.EONETLimit
	}
	if loaded.DONKIWindowDays > 0 {
		s.DONKIWindowDays = loaded.DONKIWindowDays
	}
	if len(loaded.GIBSLayers) > 0 {
		s.GIBSLayers = loaded.GIBSLayers
	}
	if len(loaded.TrekProducts) > 0 {
		s.TrekProducts = loaded.TrekProducts
	}
	return nil
}
