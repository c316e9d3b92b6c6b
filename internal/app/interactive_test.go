package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kkdai/youtube/v2"

	"github.com/lvcoi/ytdl-catalog/internal/downloader"
)

const interactiveURL = "https://www.youtube.com/watch?v=aaaaaaaaaaa&t=42s"

func interactiveClient() *fakeClient {
	return &fakeClient{videos: map[string]*youtube.Video{
		"aaaaaaaaaaa": splitVideo("aaaaaaaaaaa", "Alpha: Session"),
	}}
}

func TestRunInteractiveWithAllArguments(t *testing.T) {
	dir := t.TempDir()
	client := interactiveClient()
	dl, out := newTestDownloader(t, client)

	result, err := RunInteractive(context.Background(), InteractiveConfig{Args: []string{interactiveURL, "139", dir}}, dl)
	if err != nil {
		t.Fatalf("RunInteractive returned error: %v", err)
	}
	if result.Path != filepath.Join(dir, "Alpha Session.mp4") {
		t.Fatalf("unexpected path %q", result.Path)
	}
	if len(client.requests) != 1 || client.requests[0] != "https://www.youtube.com/watch?v=aaaaaaaaaaa" {
		t.Fatalf("expected normalized URL request, got %v", client.requests)
	}
	want := `Successfully downloaded stream 139 of "Alpha: Session" (https://www.youtube.com/watch?v=aaaaaaaaaaa) into ` + dir + "\n"
	if out.out.String() != want {
		t.Fatalf("stdout = %q, want %q", out.out.String(), want)
	}
}

func TestRunInteractivePromptsForMissingArguments(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	dl, out := newTestDownloader(t, interactiveClient())

	cfg := InteractiveConfig{Input: strings.NewReader(interactiveURL + "\n140\n")}
	result, err := RunInteractive(context.Background(), cfg, dl)
	if err != nil {
		t.Fatalf("RunInteractive returned error: %v", err)
	}
	if _, err := os.Stat(result.Path); err != nil {
		t.Fatalf("expected file in working directory: %v", err)
	}

	stdout := out.out.String()
	for _, want := range []string{
		"Paste a link to a YouTube video: ",
		"audio_only\n\titag=140 type=audio_only",
		"video_only\n\titag=133 type=video_only",
		"both\n\titag=18 type=both",
		`Which stream do you want to download? Enter its "itag": `,
		"Successfully downloaded stream 140 of",
	} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestRunInteractiveEmptyIdentifierUsesFirstStream(t *testing.T) {
	dir := t.TempDir()
	dl, out := newTestDownloader(t, interactiveClient())

	cfg := InteractiveConfig{Args: []string{interactiveURL}, Input: strings.NewReader("\n")}
	t.Chdir(dir)
	if _, err := RunInteractive(context.Background(), cfg, dl); err != nil {
		t.Fatalf("RunInteractive returned error: %v", err)
	}
	if !strings.Contains(out.out.String(), "Successfully downloaded stream 18 of") {
		t.Fatalf("expected the first listed stream, got:\n%s", out.out.String())
	}
}

func TestRunInteractiveInvalidURL(t *testing.T) {
	dl, _ := newTestDownloader(t, interactiveClient())
	_, err := RunInteractive(context.Background(), InteractiveConfig{Args: []string{"https://youtu.be/aaaaaaaaaaa"}}, dl)
	if downloader.CategoryOf(err) != downloader.CategoryInvalidURL {
		t.Fatalf("expected invalid URL, got %v", err)
	}
}

func TestRunInteractiveUnknownStream(t *testing.T) {
	dl, _ := newTestDownloader(t, interactiveClient())
	_, err := RunInteractive(context.Background(), InteractiveConfig{Args: []string{interactiveURL, "999", t.TempDir()}}, dl)
	if downloader.CategoryOf(err) != downloader.CategoryStreamNotFound {
		t.Fatalf("expected stream not found, got %v", err)
	}
	if downloader.ExitCode(err) != 3 {
		t.Fatalf("expected exit code 3, got %d", downloader.ExitCode(err))
	}
}

func TestRunInteractivePicker(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	t.Run("picked stream", func(t *testing.T) {
		dl, out := newTestDownloader(t, interactiveClient())
		picker := func(_ *youtube.Video, set downloader.StreamSet) (int, error) {
			if set.Len() != 5 {
				t.Fatalf("picker got %d streams, want 5", set.Len())
			}
			return 133, nil
		}
		if _, err := RunInteractive(context.Background(), InteractiveConfig{Args: []string{interactiveURL}, Picker: picker}, dl); err != nil {
			t.Fatalf("RunInteractive returned error: %v", err)
		}
		if strings.Contains(out.out.String(), "audio_only") {
			t.Fatal("plain listing should not be printed when the picker succeeds")
		}
		if !strings.Contains(out.out.String(), "stream 133 of") {
			t.Fatalf("expected stream 133, got:\n%s", out.out.String())
		}
	})

	t.Run("cancelled picker keeps default", func(t *testing.T) {
		dl, out := newTestDownloader(t, interactiveClient())
		picker := func(*youtube.Video, downloader.StreamSet) (int, error) { return 0, nil }
		if _, err := RunInteractive(context.Background(), InteractiveConfig{Args: []string{interactiveURL}, Picker: picker}, dl); err != nil {
			t.Fatalf("RunInteractive returned error: %v", err)
		}
		if !strings.Contains(out.out.String(), "stream 18 of") {
			t.Fatalf("expected default stream, got:\n%s", out.out.String())
		}
	})

	t.Run("failing picker falls back to prompt", func(t *testing.T) {
		dl, out := newTestDownloader(t, interactiveClient())
		picker := func(*youtube.Video, downloader.StreamSet) (int, error) { return 0, errors.New("no tty") }
		cfg := InteractiveConfig{Args: []string{interactiveURL}, Picker: picker, Input: strings.NewReader("160\n")}
		if _, err := RunInteractive(context.Background(), cfg, dl); err != nil {
			t.Fatalf("RunInteractive returned error: %v", err)
		}
		if !strings.Contains(out.out.String(), "audio_only") || !strings.Contains(out.out.String(), "stream 160 of") {
			t.Fatalf("expected listing and stream 160, got:\n%s", out.out.String())
		}
	})
}
