package preflight

import (
	"fmt"
	"strings"

	"songbook/internal/config"
	"songbook/internal/deps"
	"songbook/internal/services"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the filesystem checks for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Catalog directory", cfg.CatalogDir()),
	}
	if cfg.Projects.Root != "" {
		results = append(results, CheckDirectoryAccess("Projects root", cfg.Projects.Root))
	}
	return results
}

// CheckSystemDeps evaluates the external tools for the given config. The deps
// command and the processing gate share this list so they cannot drift.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	if cfg == nil {
		return nil
	}
	requirements := []deps.Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.Audio.FFmpegBinary,
			Description: "Required for stem encoding",
		},
		{
			Name:        "FFprobe",
			Command:     cfg.Audio.FFprobeBinary,
			Description: "Required for artifact validation",
		},
		{
			Name:        "audiowaveform",
			Command:     cfg.Audio.WaveformBinary,
			Description: "Required for waveform peak data",
		},
	}
	return deps.CheckBinaries(requirements)
}

// RequireTools returns an error naming every required external tool that is
// missing, or nil when all are available.
func RequireTools(cfg *config.Config) error {
	var missing []string
	for _, status := range CheckSystemDeps(cfg) {
		if status.Optional || status.Available {
			continue
		}
		missing = append(missing, fmt.Sprintf("%s (%s)", status.Name, status.Detail))
	}
	if len(missing) == 0 {
		return nil
	}
	return services.Wrap(services.ErrConfiguration, "preflight", "require tools", strings.Join(missing, "; "), nil)
}
