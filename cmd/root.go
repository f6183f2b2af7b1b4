package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/lepinkainen/gameshelf/cmd/csvimport"
	"github.com/lepinkainen/gameshelf/cmd/export"
	"github.com/lepinkainen/gameshelf/cmd/library"
	"github.com/lepinkainen/gameshelf/internal/cmdutil"
	"github.com/lepinkainen/gameshelf/internal/config"
	gserrors "github.com/lepinkainen/gameshelf/internal/errors"
)

var (
	runAdd       = library.Add
	runEdit      = library.Edit
	runList      = library.List
	runDelete    = library.Delete
	runCovers    = library.Covers
	runAutofill  = library.Autofill
	runImportCSV = csvimport.Import

	runExportJSON      = export.JSON
	runExportMarkdown  = export.Markdown
	runExportDatasette = export.Datasette
	runExportSQLite    = export.SQLite
)

// CLI represents the complete command structure for the gameshelf application
type CLI struct {
	// Global flags
	Debug     bool   `help:"Enable debug logging"`
	DB        string `name:"db" help:"Path to the collection SQLite file (defaults to database.file in config)"`
	RAWGKey   string `name:"rawg-key" help:"RAWG API key (defaults to rawg.apikey in config or RAWG_API_KEY)"`
	Overwrite bool   `help:"Overwrite existing files when exporting"`

	Add      AddCmd      `cmd:"" help:"Add a game, filling metadata and cover automatically"`
	Edit     EditCmd     `cmd:"" help:"Edit a game in the collection"`
	List     ListCmd     `cmd:"" help:"List games in the collection"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a game from the collection"`
	Covers   CoversCmd   `cmd:"" help:"Show cover candidates for a title"`
	Autofill AutofillCmd `cmd:"" help:"Show the metadata autofill would apply to a title"`
	Import   ImportCmd   `cmd:"" help:"Import games from other formats"`
	Export   ExportCmd   `cmd:"" help:"Export the collection"`
}

// AddCmd represents the add command
type AddCmd struct {
	Title       string `arg:"" optional:"" help:"Game title"`
	Platform    string `short:"p" help:"Platform (PS5, PS4, PS3, PS2, PS1, Nintendo, PC)"`
	Year        int    `short:"y" help:"Release year (defaults to the current year)"`
	Completed   bool   `help:"Mark the game as completed"`
	Rating      int    `help:"Rating from 0 to 5" default:"0"`
	Cover       string `help:"Cover image URL; leave empty to resolve one"`
	NoAutofill  bool   `help:"Do not look up metadata when the cover is empty"`
	Interactive bool   `short:"i" help:"Open the live search form"`
}

// EditCmd represents the edit command
type EditCmd struct {
	ID         int64  `arg:"" help:"Game ID"`
	Title      string `help:"New title"`
	Platform   string `short:"p" help:"New platform"`
	Year       int    `short:"y" help:"New release year"`
	Completed  bool   `help:"Mark as completed"`
	Pending    bool   `help:"Mark as not completed"`
	Rating     int    `help:"New rating from 0 to 5" default:"-1"`
	Cover      string `help:"New cover image URL"`
	ClearCover bool   `help:"Clear the cover so a new one is resolved"`
	PickCover  bool   `help:"Pick the cover from candidates interactively"`
}

// ListCmd represents the list command
type ListCmd struct {
	Platform  string `short:"p" help:"Only show this platform"`
	Completed bool   `help:"Only show completed games"`
	Pending   bool   `help:"Only show games not yet completed"`
}

// DeleteCmd represents the delete command
type DeleteCmd struct {
	ID int64 `arg:"" help:"Game ID"`
}

// CoversCmd represents the covers command
type CoversCmd struct {
	Title    string `arg:"" help:"Game title"`
	Platform string `short:"p" help:"Platform used to rank candidates"`
	Limit    int    `short:"n" help:"Maximum number of candidates" default:"6"`
}

// AutofillCmd represents the autofill command
type AutofillCmd struct {
	Title    string `arg:"" help:"Game title"`
	Platform string `short:"p" help:"Fallback platform"`
	Year     int    `short:"y" help:"Fallback release year"`
}

// ImportCmd represents the import command and its subcommands
type ImportCmd struct {
	CSV CSVCmd `cmd:"" name:"csv" help:"Import games from a CSV file"`
}

// CSVCmd represents the csv import command
type CSVCmd struct {
	Input      string `short:"f" help:"Path to CSV file with title,platform,year,completed,rating,cover columns"`
	NoAutofill bool   `help:"Do not look up metadata for rows without a cover"`
}

// ExportCmd represents the export command and its subcommands
type ExportCmd struct {
	JSON      JSONCmd      `cmd:"" name:"json" help:"Write the collection to a JSON file"`
	Markdown  MarkdownCmd  `cmd:"" help:"Write one Obsidian note per game"`
	Datasette DatasetteCmd `cmd:"" help:"Publish the collection to a Datasette instance"`
	SQLite    SQLiteCmd    `cmd:"" name:"sqlite" help:"Copy the collection into another SQLite file"`
}

// JSONCmd represents the json export command
type JSONCmd struct {
	Output string `short:"o" help:"Path to JSON output file (defaults to export.jsonfile)"`
}

// MarkdownCmd represents the markdown export command
type MarkdownCmd struct {
	Output string `short:"o" help:"Directory for markdown notes (defaults to export.markdowndir)"`
}

// DatasetteCmd represents the datasette export command
type DatasetteCmd struct {
	URL      string `help:"Datasette base URL (defaults to datasette.url)"`
	Token    string `help:"Datasette API token (defaults to datasette.token)"`
	Database string `help:"Datasette database name (defaults to datasette.database)"`
}

// SQLiteCmd represents the sqlite export command
type SQLiteCmd struct {
	Output string `short:"o" help:"Path of the SQLite file to write" required:""`
}

// Execute runs the Kong-based CLI
func Execute() {
	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("gameshelf"),
		kong.Description("A catalog of your video game collection with automatic covers."),
		kong.UsageOnError(),
	)

	initLogging(cli.Debug)
	initConfig()
	updateGlobalConfig(&cli)

	err := ctx.Run()
	if gserrors.IsStopProcessingError(err) {
		slog.Info("Stopped by user", "reason", err.Error())
		return
	}
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	config.SetDefaults()

	// Enable environment variable support
	viper.AutomaticEnv()
	// Bind specific environment variables to config keys
	if err := viper.BindEnv(config.KeyRAWGAPIKey, "RAWG_API_KEY"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}
	if err := viper.BindEnv(config.KeyDatabaseFile, "GAMESHELF_DB"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			slog.Info("Config file not found, writing default config file...")
			if err := viper.SafeWriteConfig(); err != nil {
				slog.Error("Error writing config file", "error", err)
			}
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	if cli.DB != "" {
		config.DatabaseFile = cli.DB
	}
	if cli.RAWGKey != "" {
		config.RAWGAPIKey = cli.RAWGKey
	}
	if cli.Overwrite {
		config.SetOverwriteFiles(true)
	}
}

// Run methods for each command

func (a *AddCmd) Run() error {
	if a.Title == "" && !a.Interactive {
		return fmt.Errorf("title is required unless --interactive is set")
	}
	_, err := runAdd(context.Background(), library.AddOptions{
		Title:       a.Title,
		Platform:    a.Platform,
		Year:        a.Year,
		Completed:   a.Completed,
		Rating:      a.Rating,
		Cover:       a.Cover,
		NoAutofill:  a.NoAutofill,
		Interactive: a.Interactive,
	})
	return err
}

func (e *EditCmd) Run() error {
	_, err := runEdit(context.Background(), library.EditOptions{
		ID:         e.ID,
		Title:      e.Title,
		Platform:   e.Platform,
		Year:       e.Year,
		Completed:  e.Completed,
		Pending:    e.Pending,
		Rating:     e.Rating,
		Cover:      e.Cover,
		ClearCover: e.ClearCover,
		PickCover:  e.PickCover,
	})
	return err
}

func (l *ListCmd) Run() error {
	_, err := runList(context.Background(), library.ListOptions{
		Platform:  l.Platform,
		Completed: l.Completed,
		Pending:   l.Pending,
	})
	return err
}

func (d *DeleteCmd) Run() error {
	return runDelete(context.Background(), "", d.ID)
}

func (c *CoversCmd) Run() error {
	_, err := runCovers(context.Background(), c.Title, c.Platform, c.Limit)
	return err
}

func (a *AutofillCmd) Run() error {
	_, err := runAutofill(context.Background(), a.Title, a.Platform, a.Year)
	return err
}

func (c *CSVCmd) Run() error {
	input := c.Input
	if input == "" {
		input = viper.GetString(config.KeyImportCSVFile)
	}

	_, err := runImportCSV(context.Background(), csvimport.Options{
		Input:      input,
		NoAutofill: c.NoAutofill,
	})
	return err
}

func (j *JSONCmd) Run() error {
	output := cmdutil.ResolvePath(j.Output, config.JSONFile)
	n, err := runExportJSON(context.Background(), "", output, config.OverwriteFiles)
	if err != nil {
		return err
	}
	slog.Info("Exported JSON", "games", n, "filename", output)
	return nil
}

func (m *MarkdownCmd) Run() error {
	dir := cmdutil.ResolvePath(m.Output, config.MarkdownDir)
	_, err := runExportMarkdown(context.Background(), "", dir, config.OverwriteFiles)
	return err
}

func (d *DatasetteCmd) Run() error {
	url := firstNonEmpty(d.URL, config.DatasetteURL)
	token := firstNonEmpty(d.Token, config.DatasetteToken)
	database := firstNonEmpty(d.Database, config.DatasetteDatabase)

	_, err := runExportDatasette(context.Background(), "", url, token, database)
	return err
}

func (s *SQLiteCmd) Run() error {
	_, err := runExportSQLite(context.Background(), "", s.Output)
	return err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func initLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	// Create a human-readable handler for logging
	handler := humanlog.NewHandler(os.Stderr, &humanlog.Options{
		Level: level,
	})

	// Set the default logger
	slog.SetDefault(slog.New(handler))
}
