package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/flagx"
	"github.com/dmitrijs2005/todokeeper/internal/timex"
)

// JsonConfig is the intermediate DTO for the optional JSON config file.
// Interval fields use timex.Duration, which accepts both string values such
// as "5s" and integer nanoseconds.
type JsonConfig struct {
	ServerBaseURL  string         `json:"server_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	AccessToken    string         `json:"access_token"`
	UserID         string         `json:"user_id"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags. When no file is named nothing is loaded.
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

	config.ServerBaseURL = c.ServerBaseURL
	config.RequestTimeout = time.Duration(c.RequestTimeout.Duration)
	config.AccessToken = c.AccessToken
	config.UserID = c.UserID
}
