package main

import (
	"bytes"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func setEnv(t *testing.T, mixxxDir string) {
	t.Helper()
	for _, key := range []string{"CRATES_AUDIO_EXTENSIONS", "CRATES_IGNORE_FILES", "LOG_FILE", "DEBUG", "DB_TIMEOUT"} {
		t.Setenv(key, "")
	}
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("MIXXX_DIR", mixxxDir)
}

func execute(t *testing.T, argv ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(argv, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestUnknownCommand(t *testing.T) {
	setEnv(t, t.TempDir())

	for _, argv := range [][]string{nil, {"bogus"}, {"help"}, {"help", "generate"}, {"-tracks-top-level-folders", "/m"}} {
		code, stdout, _ := execute(t, argv...)
		if code != exitOK {
			t.Fatalf("run(%v) = %d, want %d", argv, code, exitOK)
		}
		if strings.TrimSpace(stdout) != unknownCommand {
			t.Fatalf("run(%v) stdout = %q", argv, stdout)
		}
	}
}

func TestGenerateMissingTracks(t *testing.T) {
	setEnv(t, t.TempDir())
	dest := filepath.Join(t.TempDir(), "crates")

	code, stdout, _ := execute(t, "generate", "-crate-files-destination", dest)
	if code != exitUsage {
		t.Fatalf("exit code = %d, want %d", code, exitUsage)
	}
	if !strings.Contains(stdout, "-tracks-top-level-folders") {
		t.Fatalf("stdout does not name the missing option: %q", stdout)
	}
	if strings.Contains(stdout, "-crate-files-destination") {
		t.Fatalf("stdout names an option that was provided: %q", stdout)
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Fatalf("destination should not exist, stat err=%v", err)
	}
}

func TestGenerateValueBeforeOption(t *testing.T) {
	setEnv(t, t.TempDir())

	code, stdout, _ := execute(t, "generate", "/music", "-tracks-top-level-folders", "/m")
	if code != exitUsage {
		t.Fatalf("exit code = %d, want %d", code, exitUsage)
	}
	if !strings.Contains(stdout, "/music") {
		t.Fatalf("stdout = %q", stdout)
	}
}

func TestGenerateWritesPlaylists(t *testing.T) {
	setEnv(t, t.TempDir())
	music := filepath.Join(t.TempDir(), "Music")
	priority := filepath.Join(t.TempDir(), "Priority")
	dest := filepath.Join(t.TempDir(), "crates")

	for _, path := range []string{
		filepath.Join(music, "House", "a.mp3"),
		filepath.Join(music, "House", "notes.txt"),
		filepath.Join(priority, "Edits", "only.mp3"),
	} {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	code, stdout, stderr := execute(t, "generate",
		"-tracks-top-level-folders", music,
		"-priority-top-level-folders", priority,
		"-crate-files-destination", dest,
	)
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	for _, name := range []string{"Music.m3u", "House.m3u", "Priority.m3u", "Edits.m3u"} {
		if _, err := os.Stat(filepath.Join(dest, name)); err != nil {
			t.Fatalf("missing playlist %s: %v", name, err)
		}
	}
	if !strings.Contains(stdout, "Priority files without any duplicate") || !strings.Contains(stdout, "only") {
		t.Fatalf("stdout missing priority report: %q", stdout)
	}
}

func TestGenerateMissingFolderFails(t *testing.T) {
	setEnv(t, t.TempDir())

	code, _, stderr := execute(t, "generate",
		"-tracks-top-level-folders", filepath.Join(t.TempDir(), "missing"),
		"-crate-files-destination", t.TempDir(),
	)
	if code != exitFailed {
		t.Fatalf("exit code = %d, want %d", code, exitFailed)
	}
	if !strings.Contains(stderr, "missing") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestClearMissingDatabase(t *testing.T) {
	dir := t.TempDir()
	setEnv(t, dir)

	code, stdout, _ := execute(t, "clear")
	if code != exitFailed {
		t.Fatalf("exit code = %d, want %d", code, exitFailed)
	}
	want := filepath.Join(dir, "mixxxdb.sqlite")
	if !strings.Contains(stdout, want) {
		t.Fatalf("stdout %q does not name %s", stdout, want)
	}
	if _, err := os.Stat(want); !os.IsNotExist(err) {
		t.Fatalf("database should not be created, stat err=%v", err)
	}
}

func TestClearDeletesCrates(t *testing.T) {
	dir := t.TempDir()
	setEnv(t, dir)

	path := filepath.Join(dir, "mixxxdb.sqlite")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`CREATE TABLE crates (id INTEGER PRIMARY KEY, name TEXT); INSERT INTO crates (name) VALUES ('House');`); err != nil {
		t.Fatal(err)
	}
	db.Close()

	code, stdout, stderr := execute(t, "clear", "-x", "--force")
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	if !strings.Contains(stdout, "Deleted 1 crate(s)") {
		t.Fatalf("stdout = %q", stdout)
	}

	db, err = sql.Open("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM crates`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("crates rows = %d, want 0", n)
	}
}
