package testutil

import (
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/lepinkainen/gameshelf/internal/config"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	RAWGAPIKey        string
	RAWGBaseURL       string
	WikipediaBaseURL  string
	DatabaseFile      string
	SuggestDelay      time.Duration
	DatasetteURL      string
	DatasetteToken    string
	DatasetteDatabase string
	MarkdownDir       string
	JSONFile          string
	OverwriteFiles    bool
}

// SaveConfigState captures the current state of config package variables.
func SaveConfigState() ConfigState {
	return ConfigState{
		RAWGAPIKey:        config.RAWGAPIKey,
		RAWGBaseURL:       config.RAWGBaseURL,
		WikipediaBaseURL:  config.WikipediaBaseURL,
		DatabaseFile:      config.DatabaseFile,
		SuggestDelay:      config.SuggestDelay,
		DatasetteURL:      config.DatasetteURL,
		DatasetteToken:    config.DatasetteToken,
		DatasetteDatabase: config.DatasetteDatabase,
		MarkdownDir:       config.MarkdownDir,
		JSONFile:          config.JSONFile,
		OverwriteFiles:    config.OverwriteFiles,
	}
}

// RestoreConfigState restores the config package variables to a saved state.
func RestoreConfigState(state ConfigState) {
	config.RAWGAPIKey = state.RAWGAPIKey
	config.RAWGBaseURL = state.RAWGBaseURL
	config.WikipediaBaseURL = state.WikipediaBaseURL
	config.DatabaseFile = state.DatabaseFile
	config.SuggestDelay = state.SuggestDelay
	config.DatasetteURL = state.DatasetteURL
	config.DatasetteToken = state.DatasetteToken
	config.DatasetteDatabase = state.DatasetteDatabase
	config.MarkdownDir = state.MarkdownDir
	config.JSONFile = state.JSONFile
	config.OverwriteFiles = state.OverwriteFiles
}

// ResetConfig saves the current config state and schedules restoration
// when the test completes. It also resets viper.
func ResetConfig(t *testing.T) {
	t.Helper()

	state := SaveConfigState()
	viper.Reset()

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetTestConfig points every path setting into env and clears the RAWG key
// so no test reaches a real upstream by accident.
func SetTestConfig(t *testing.T, env *TestEnv) {
	t.Helper()
	ResetConfig(t)

	config.InitConfig()
	config.RAWGAPIKey = ""
	config.RAWGBaseURL = "http://127.0.0.1:0"
	config.WikipediaBaseURL = "http://127.0.0.1:0"
	config.DatabaseFile = env.Path("gameshelf.db")
	config.MarkdownDir = env.Path("markdown")
	config.JSONFile = env.Path("json", "games.json")
	config.OverwriteFiles = true
}

// SetViperValue sets a viper key for the duration of the test. Viper has no
// unset, so a key that was not set before is reset along with everything
// else at cleanup.
func SetViperValue(t *testing.T, key string, value any) {
	t.Helper()

	oldValue := viper.Get(key)
	hadValue := viper.IsSet(key)
	viper.Set(key, value)

	t.Cleanup(func() {
		if hadValue {
			viper.Set(key, oldValue)
		}
	})
}
