package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"songbook/internal/catalog"
	"songbook/internal/config"
	"songbook/internal/testsupport"
)

const demoProject = `<REAPER_PROJECT 0.1 "7.07/linux-x86_64" 1719257871
  <TRACK {C4000000-0000-4000-8000-000000000001}
    NAME "Lead Vocal"
    PEAKCOL 16711680
    <ITEM
      <SOURCE WAVE
        FILE "Media/lead vocal.wav"
      >
    >
  >
  <TRACK {C4000000-0000-4000-8000-000000000002}
    NAME "Bass"
    PEAKCOL 65280
    <ITEM
      <SOURCE WAVE
        FILE "Media/bass.wav"
      >
    >
  >
>
`

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, opts...)
	cfg.Logging.Level = "error"
	if err := os.MkdirAll(cfg.Projects.Root, 0o755); err != nil {
		t.Fatalf("mkdir projects root: %v", err)
	}
	homeDir := filepath.Join(testsupport.BaseDir(cfg), "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(homeDir, ".config"))
	configPath := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		baseDir:    testsupport.BaseDir(cfg),
	}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[catalog]\npath = %q\n\n[projects]\nroot = %q\n\n[history]\npath = %q\n\n[logging]\nlevel = %q\n\n[notifications]\nntfy_topic = %q\n",
		cfg.Catalog.Path,
		cfg.Projects.Root,
		cfg.History.Path,
		cfg.Logging.Level,
		cfg.Notifications.NtfyTopic,
	)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	return runCLIWithInput(t, configPath, "", args...)
}

func runCLIWithInput(t *testing.T, configPath, input string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if input != "" {
		cmd.SetIn(strings.NewReader(input))
	}
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func seedSong(t *testing.T, cfg *config.Config, song *catalog.Song) {
	t.Helper()
	cat := testsupport.MustOpenCatalog(t, cfg)
	if err := cat.Add(song); err != nil {
		t.Fatalf("add song: %v", err)
	}
	if err := cat.Save(); err != nil {
		t.Fatalf("save catalog: %v", err)
	}
}

func loadSong(t *testing.T, cfg *config.Config, id string) *catalog.Song {
	t.Helper()
	cat := testsupport.MustOpenCatalog(t, cfg)
	song, ok := cat.Get(id)
	if !ok {
		t.Fatalf("song %q not in catalog", id)
	}
	return song
}

// writeProjectFile lays out a REAPER project with its referenced media under
// dir and returns the project path.
func writeProjectFile(t *testing.T, dir string) string {
	t.Helper()
	projectPath := filepath.Join(dir, "demo.rpp")
	testsupport.WriteFileString(t, projectPath, demoProject)
	testsupport.WriteFileString(t, filepath.Join(dir, "Media", "lead vocal.wav"), "lead vocal audio")
	testsupport.WriteFileString(t, filepath.Join(dir, "Media", "bass.wav"), "bass audio")
	return projectPath
}

// makeStubTools installs working stand-ins for the encoding toolchain: ffmpeg
// writes bytes to its final argument, ffprobe reports one audio stream, and
// audiowaveform writes JSON peaks to the path following -o.
func makeStubTools(t *testing.T, dir string) {
	t.Helper()
	binDir := filepath.Join(dir, "tools")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir tools dir: %v", err)
	}
	writeStub(t, filepath.Join(binDir, "ffmpeg"),
		"#!/bin/sh\nfor arg in \"$@\"; do out=$arg; done\nprintf 'encoded' > \"$out\"\n")
	writeStub(t, filepath.Join(binDir, "ffprobe"),
		`#!/bin/sh
printf '{"streams":[{"index":0,"codec_type":"audio","codec_name":"mp3"}],"format":{"duration":"2.5","size":"7"}}'
`)
	writeStub(t, filepath.Join(binDir, "audiowaveform"),
		`#!/bin/sh
out=""
prev=""
for arg in "$@"; do
  if [ "$prev" = "-o" ]; then out=$arg; fi
  prev=$arg
done
printf '{"data":[0,1,2,3]}' > "$out"
`)
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func writeStub(t *testing.T, path, script string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", path, err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
