// Package config exposes the resolved configuration as package variables.
// Values are loaded from viper by InitConfig after flags, environment and
// config.yaml have been merged.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Viper keys.
const (
	KeyRAWGAPIKey       = "rawg.apikey"
	KeyRAWGBaseURL      = "rawg.baseurl"
	KeyWikipediaBaseURL = "wikipedia.baseurl"
	KeyDatabaseFile     = "database.file"
	KeySuggestDelay     = "suggest.delay"
	KeyDatasetteURL     = "datasette.url"
	KeyDatasetteToken   = "datasette.token"
	KeyDatasetteDB      = "datasette.database"
	KeyMarkdownDir      = "export.markdowndir"
	KeyJSONFile         = "export.jsonfile"
	KeyOverwriteFiles   = "export.overwrite"
	KeyImportCSVFile    = "import.csvfile"
)

// Global configuration variables
var (
	// RAWGAPIKey enables the primary metadata source. Empty means the
	// encyclopedia fallback is used.
	RAWGAPIKey string
	// RAWGBaseURL overrides the RAWG API root, mainly for tests.
	RAWGBaseURL string
	// WikipediaBaseURL overrides the MediaWiki api.php endpoint.
	WikipediaBaseURL string
	// DatabaseFile is the SQLite collection path.
	DatabaseFile string
	// SuggestDelay is the live search quiet period.
	SuggestDelay time.Duration
	// DatasetteURL and DatasetteToken address the publish target.
	DatasetteURL   string
	DatasetteToken string
	// DatasetteDatabase is the database name on the Datasette instance.
	DatasetteDatabase string
	// MarkdownDir is where Obsidian notes are written.
	MarkdownDir string
	// JSONFile is the JSON export path.
	JSONFile string
	// OverwriteFiles controls whether exports replace existing files.
	OverwriteFiles bool
)

// SetDefaults registers the default value of every key.
func SetDefaults() {
	viper.SetDefault(KeyRAWGAPIKey, "")
	viper.SetDefault(KeyRAWGBaseURL, "https://api.rawg.io/api")
	viper.SetDefault(KeyWikipediaBaseURL, "https://en.wikipedia.org/w/api.php")
	viper.SetDefault(KeyDatabaseFile, "./gameshelf.db")
	viper.SetDefault(KeySuggestDelay, "300ms")
	viper.SetDefault(KeyDatasetteURL, "")
	viper.SetDefault(KeyDatasetteToken, "")
	viper.SetDefault(KeyDatasetteDB, "gameshelf")
	viper.SetDefault(KeyMarkdownDir, "./markdown/games")
	viper.SetDefault(KeyJSONFile, "./json/games.json")
	viper.SetDefault(KeyOverwriteFiles, false)
	viper.SetDefault(KeyImportCSVFile, "")
}

// InitConfig copies the merged viper values into the package variables.
func InitConfig() {
	SetDefaults()

	RAWGAPIKey = viper.GetString(KeyRAWGAPIKey)
	RAWGBaseURL = viper.GetString(KeyRAWGBaseURL)
	WikipediaBaseURL = viper.GetString(KeyWikipediaBaseURL)
	DatabaseFile = viper.GetString(KeyDatabaseFile)
	SuggestDelay = viper.GetDuration(KeySuggestDelay)
	DatasetteURL = viper.GetString(KeyDatasetteURL)
	DatasetteToken = viper.GetString(KeyDatasetteToken)
	DatasetteDatabase = viper.GetString(KeyDatasetteDB)
	MarkdownDir = viper.GetString(KeyMarkdownDir)
	JSONFile = viper.GetString(KeyJSONFile)
	OverwriteFiles = viper.GetBool(KeyOverwriteFiles)
}

// SetOverwriteFiles sets the OverwriteFiles flag
func SetOverwriteFiles(overwrite bool) {
	OverwriteFiles = overwrite
}
