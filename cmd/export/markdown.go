package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/lepinkainen/gameshelf/internal/datastore"
	"github.com/lepinkainen/gameshelf/internal/fileutil"
	"github.com/lepinkainen/gameshelf/internal/obsidian"
)

const tagPrefix = "gameshelf"

// Markdown writes one note per game into dir. Existing notes are skipped
// unless overwrite is set, in which case their body and extra tags are kept.
func Markdown(ctx context.Context, dbPath, dir string, overwrite bool) (int, error) {
	games, err := loadGames(ctx, dbPath)
	if err != nil {
		return 0, err
	}

	written := 0
	for _, game := range games {
		path := fileutil.GetMarkdownFilePath(noteName(game), dir)
		if fileutil.FileExists(path) && !overwrite {
			slog.Debug("Note already exists, skipping", "filename", path)
			continue
		}

		existing, err := readNote(path)
		if err != nil {
			return written, err
		}

		content, err := BuildNote(game, existing).Build()
		if err != nil {
			return written, fmt.Errorf("failed to build note for %q: %w", game.Title, err)
		}

		ok, err := fileutil.WriteFileWithOverwrite(path, content, 0o644, true)
		if err != nil {
			return written, err
		}
		if ok {
			written++
		}
	}

	slog.Info("Wrote markdown notes", "count", written, "directory", dir)
	return written, nil
}

// noteName keeps same-titled games on different platforms apart.
func noteName(g datastore.GameRecord) string {
	return fmt.Sprintf("%s (%s)", g.Title, g.Platform)
}

func readNote(path string) (*obsidian.Note, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	note, err := obsidian.ParseMarkdown(content)
	if err != nil {
		slog.Warn("Ignoring unparseable note", "filename", path, "error", err)
		return nil, nil
	}
	return note, nil
}

// BuildNote renders g as a note, carrying over the body and the tags of
// existing when it is not nil.
func BuildNote(g datastore.GameRecord, existing *obsidian.Note) *obsidian.Note {
	fm := obsidian.NewFrontmatter()
	fm.Set("title", g.Title)
	fm.Set("platform", g.Platform.String())
	fm.SetIf("year", g.Year)
	fm.Set("completed", g.Completed)
	fm.SetIf("rating", g.Rating)
	fm.SetIf("cover", g.CoverURL)
	fm.Set("gameshelf_id", g.ID)

	tags := obsidian.NewTagSet()
	tags.AddFormat("%s/%s", tagPrefix, g.Platform)
	tags.AddIf(g.Completed, tagPrefix+"/completed")
	tags.AddIf(!g.Completed, tagPrefix+"/pending")

	body := defaultBody(g)
	tagList := tags.GetSorted()
	if existing != nil {
		if strings.TrimSpace(existing.Body) != "" {
			body = existing.Body
		}
		if existing.Frontmatter != nil {
			tagList = obsidian.MergeTags(ownTagsRemoved(existing.Frontmatter.GetStringArray("tags")), tagList)
		}
	}
	fm.Set("tags", tagList)

	return &obsidian.Note{Frontmatter: fm, Body: body}
}

// ownTagsRemoved drops previously generated tags so a platform or status
// change does not leave the old value behind.
func ownTagsRemoved(tags []string) []string {
	kept := make([]string, 0, len(tags))
	for _, tag := range tags {
		if !strings.HasPrefix(tag, tagPrefix+"/") {
			kept = append(kept, tag)
		}
	}
	return kept
}

func defaultBody(g datastore.GameRecord) string {
	if g.CoverURL == "" {
		return ""
	}
	return fmt.Sprintf("![%s](%s)\n", g.Title, g.CoverURL)
}
