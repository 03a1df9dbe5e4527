package ffprobe

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestResultHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video"},
			{CodecType: "audio", CodecName: "mp3", Channels: 2, SampleRate: "44100"},
			{CodecType: "audio", CodecName: "vorbis", Channels: 2},
		},
		Format: Format{
			Duration: "123.45",
			Size:     "1000",
		},
	}
	if result.AudioStreamCount() != 2 {
		t.Fatalf("expected 2 audio streams, got %d", result.AudioStreamCount())
	}
	first, ok := result.FirstAudioStream()
	if !ok || first.CodecName != "mp3" {
		t.Fatalf("unexpected first audio stream: %+v ok=%v", first, ok)
	}
	if first.SampleRateHz() != 44100 {
		t.Fatalf("unexpected sample rate: %d", first.SampleRateHz())
	}
	if result.DurationSeconds() != 123.45 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 1000 {
		t.Fatalf("unexpected size: %d", result.SizeBytes())
	}
}

func TestResultHelpersHandleInvalidNumbers(t *testing.T) {
	result := Result{
		Streams: []Stream{{CodecType: "audio", SampleRate: "nope"}},
		Format: Format{
			Duration: "bad",
			Size:     "-1",
		},
	}
	if !math.IsNaN(result.DurationSeconds()) {
		t.Fatalf("expected duration NaN, got %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 0 {
		t.Fatalf("expected size 0, got %d", result.SizeBytes())
	}
	if result.Streams[0].SampleRateHz() != 0 {
		t.Fatalf("expected sample rate 0, got %d", result.Streams[0].SampleRateHz())
	}
}

func TestFirstAudioStreamMissing(t *testing.T) {
	result := Result{Streams: []Stream{{CodecType: "video"}}}
	if _, ok := result.FirstAudioStream(); ok {
		t.Fatal("expected no audio stream")
	}
}

func TestInspectDecodesStubOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub binaries require a POSIX shell")
	}

	binDir := t.TempDir()
	script := "#!/bin/sh\n" +
		`echo '{"streams":[{"index":0,"codec_type":"audio","codec_name":"pcm_s16le","channels":2,"sample_rate":"44100"}],"format":{"duration":"2.5","size":"441000","format_name":"wav"}}'` + "\n"
	stub := filepath.Join(binDir, "ffprobe")
	if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	result, err := Inspect(context.Background(), "ffprobe", "/audio/vocal.wav")
	if err != nil {
		t.Fatalf("Inspect returned error: %v", err)
	}
	if result.AudioStreamCount() != 1 {
		t.Fatalf("expected 1 audio stream, got %d", result.AudioStreamCount())
	}
	if result.DurationSeconds() != 2.5 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	if result.Format.FormatName != "wav" {
		t.Fatalf("unexpected format name: %q", result.Format.FormatName)
	}
}

func TestInspectRequiresPath(t *testing.T) {
	if _, err := Inspect(context.Background(), "ffprobe", "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
