package stems

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"songbook/internal/catalog"
	"songbook/internal/fileutil"
	"songbook/internal/history"
	"songbook/internal/logging"
	"songbook/internal/reaper"
	"songbook/internal/services"
	"songbook/internal/textutil"
)

// LinkResult reports the outcome of linking a project to a catalog entry.
type LinkResult struct {
	Song        *catalog.Song
	ProjectPath string
	Tracks      []catalog.TrackRef
	Preserved   int
	Removed     int64
}

// LinkProject parses the REAPER project at projectPath and stores its
// qualifying tracks on the catalog entry. Re-linking replaces the track
// list but keeps encoded outputs for tracks whose identifier and first
// source file are unchanged.
func (s *Service) LinkProject(ctx context.Context, songID, projectPath string) (*LinkResult, error) {
	ctx = services.WithSongID(ctx, songID)
	ctx = services.WithOperation(ctx, "link")

	song, ok := s.catalog.Get(songID)
	if !ok {
		return nil, services.Wrap(
			services.ErrNotFound,
			"stems",
			"link project",
			fmt.Sprintf("song %q not in catalog", songID),
			nil,
		)
	}

	abs, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, services.Wrap(
			services.ErrValidation,
			"stems",
			"link project",
			fmt.Sprintf("resolve project path %q", projectPath),
			err,
		)
	}
	if !fileutil.IsFile(abs) {
		return nil, services.Wrap(
			services.ErrValidation,
			"stems",
			"link project",
			fmt.Sprintf("project file %q does not exist", abs),
			nil,
		)
	}

	run, err := s.history.StartRun(ctx, songID, "link")
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "stems", "record link run", "", err)
	}
	ctx = services.WithRunID(ctx, run.ID)
	logger := logging.WithContext(ctx, s.logger)

	result, err := s.linkProject(ctx, logger, song, abs)
	if err != nil {
		if ferr := s.history.FinishRun(ctx, run.ID, history.RunFailed, err.Error()); ferr != nil {
			logger.Warn("failed to record link failure", logging.Error(ferr))
		}
		return nil, err
	}

	detail := fmt.Sprintf("%d tracks linked", len(result.Tracks))
	if err := s.history.FinishRun(ctx, run.ID, history.RunCompleted, detail); err != nil {
		logger.Warn("failed to record link completion", logging.Error(err))
	}
	return result, nil
}

func (s *Service) linkProject(ctx context.Context, logger *slog.Logger, song *catalog.Song, projectPath string) (*LinkResult, error) {
	tracks, err := reaper.ParseFile(projectPath)
	if err != nil {
		return nil, services.Wrap(
			services.ErrValidation,
			"stems",
			"parse project",
			fmt.Sprintf("parse %q", projectPath),
			err,
		)
	}
	if len(tracks) == 0 {
		logger.Warn("project has no qualifying tracks", logging.String(logging.FieldProject, projectPath))
	}

	refs, preserved := buildTrackRefs(song, tracks)
	song.Project = projectPath
	song.Tracks = refs

	if err := s.catalog.Update(song); err != nil {
		return nil, services.Wrap(services.ErrTransient, "stems", "update catalog", "", err)
	}
	if err := s.catalog.Save(); err != nil {
		return nil, services.Wrap(services.ErrTransient, "stems", "save catalog", "", err)
	}

	keep := make([]string, 0, len(refs))
	for _, ref := range refs {
		keep = append(keep, ref.ID)
	}
	removed, err := s.history.DeleteStems(ctx, song.ID, keep...)
	if err != nil {
		logger.Warn("failed to prune stale stem records", logging.Error(err))
		removed = 0
	}

	logger.Info("linked project",
		logging.String(logging.FieldProject, projectPath),
		logging.Int("tracks", len(refs)),
		logging.Int("outputs_preserved", preserved),
		logging.Int64("stems_pruned", removed),
	)
	return &LinkResult{
		Song:        song,
		ProjectPath: projectPath,
		Tracks:      refs,
		Preserved:   preserved,
		Removed:     removed,
	}, nil
}

// buildTrackRefs maps parser tracks onto catalog track references in project
// order. Identifiers derive from sanitized track names, fall back to the
// 1-based position for unnamed tracks, and are deduplicated with numeric
// suffixes. Outputs carry over from the previous link when a track keeps its
// identifier and first source file.
func buildTrackRefs(song *catalog.Song, tracks []reaper.Track) ([]catalog.TrackRef, int) {
	refs := make([]catalog.TrackRef, 0, len(tracks))
	seen := make(map[string]struct{}, len(tracks))
	preserved := 0
	for i, track := range tracks {
		order := i + 1
		id := textutil.SanitizeID(track.Name)
		if strings.TrimSpace(track.Name) == "" {
			id = fmt.Sprintf("track-%d", order)
		}
		id = uniqueID(seen, id)
		seen[id] = struct{}{}

		ref := catalog.TrackRef{
			ID:    id,
			Name:  track.Name,
			Color: track.ColorHex(),
			Order: order,
			Files: track.Files,
		}
		if prev, ok := song.Track(id); ok && prev.FirstFile() == ref.FirstFile() && !prev.Outputs.Empty() {
			ref.Outputs = prev.Outputs
			preserved++
		}
		refs = append(refs, ref)
	}
	return refs, preserved
}

func uniqueID(seen map[string]struct{}, id string) string {
	if _, ok := seen[id]; !ok {
		return id
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", id, n)
		if _, ok := seen[candidate]; !ok {
			return candidate
		}
	}
}
