package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/truthlens/internal/flagx"
	"github.com/dmitrijs2005/truthlens/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can spell the timeout either as a string like "15s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config.
type JsonConfig struct {
	APIBaseURL     *string         `json:"api_base_url"`
	Mock           *bool           `json:"mock"`
	Dev            *bool           `json:"dev"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	StorePath      *string         `json:"store_path"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Fields absent from the file keep their current values. Read or unmarshal
// errors panic; the caller decides whether to recover.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.Mock != nil {
		cfg.Mock = *jc.Mock
	}
	if jc.Dev != nil {
		cfg.Dev = *jc.Dev
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.StorePath != nil {
		cfg.StorePath = *jc.StorePath
	}
}
