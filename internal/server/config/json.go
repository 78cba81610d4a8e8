package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/todokeeper/internal/flagx"
)

// JsonConfig is the intermediate DTO for the optional JSON config file.
// After unmarshalling its fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr string `json:"endpoint_addr"`
	DatabaseDSN  string `json:"database_dsn"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags. When no file is named nothing is loaded. An unreadable
// or invalid file panics: a deployment asking for a config file and not
// getting it is a startup failure.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
}
