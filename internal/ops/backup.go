// Package ops implements the leaderboard snapshot tooling: archive the data
// directory with a manifest describing the board, restore it elsewhere, and
// verify the restored database actually matches the manifest.
package ops

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/DentalAI22/dental-tycoon-sub000/internal/leaderboard"
)

// boardDir is the leaderboard LevelDB directory inside a data dir, matching
// the layout the server creates.
const boardDir = "leaderboard"

// manifestName is the archive entry holding the snapshot manifest.
const manifestName = "snapshot.json"

// Manifest describes the leaderboard at the moment a snapshot was taken. A
// restore is only trusted once the restored database reproduces it.
type Manifest struct {
	CreatedAt  time.Time `json:"created_at"`
	Records    int       `json:"records"`
	Challenges []string  `json:"challenges,omitempty"`
	TopScore   int       `json:"top_score"`
	TopPlayer  string    `json:"top_player,omitempty"`
}

// Snapshot archives srcDir into archivePath with a manifest built from the
// leaderboard database inside it. The data dir must be quiesced: LevelDB
// holds a lock, so run this against a stopped server or a copy.
func Snapshot(srcDir, archivePath string) (Manifest, error) {
	srcDir = filepath.Clean(strings.TrimSpace(srcDir))
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	if srcDir == "" || archivePath == "" {
		return Manifest{}, fmt.Errorf("srcDir and archivePath are required")
	}
	info, err := os.Stat(srcDir)
	if err != nil {
		return Manifest{}, err
	}
	if !info.IsDir() {
		return Manifest{}, fmt.Errorf("source is not a directory: %s", srcDir)
	}

	manifest, err := describeBoard(srcDir)
	if err != nil {
		return Manifest{}, err
	}

	if err := os.MkdirAll(filepath.Dir(archivePath), 0o755); err != nil {
		return Manifest{}, err
	}
	f, err := os.Create(archivePath)
	if err != nil {
		return Manifest{}, err
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	defer gz.Close()

	tw := tar.NewWriter(gz)
	defer tw.Close()

	if err := writeManifest(tw, manifest); err != nil {
		return Manifest{}, err
	}

	err = filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == srcDir {
			return nil
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.Type()&os.ModeSymlink != 0 {
			// Skip symlinks for predictable backup/restore.
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = rel
		if info.IsDir() && !strings.HasSuffix(hdr.Name, "/") {
			hdr.Name += "/"
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()

		if _, err := io.Copy(tw, src); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return Manifest{}, err
	}
	return manifest, nil
}

// Restore unpacks archivePath into targetDir and returns the manifest that
// was recorded at snapshot time. Callers should follow with VerifyRestore.
func Restore(archivePath, targetDir string) (Manifest, error) {
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	targetDir = filepath.Clean(strings.TrimSpace(targetDir))
	if archivePath == "" || targetDir == "" {
		return Manifest{}, fmt.Errorf("archivePath and targetDir are required")
	}
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return Manifest{}, err
	}

	f, err := os.Open(archivePath)
	if err != nil {
		return Manifest{}, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return Manifest{}, err
	}
	defer gz.Close()

	var manifest Manifest
	sawManifest := false

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Manifest{}, err
		}

		rel, err := sanitizeArchiveRelPath(hdr.Name)
		if err != nil {
			return Manifest{}, err
		}

		if rel == manifestName {
			if err := json.NewDecoder(tr).Decode(&manifest); err != nil {
				return Manifest{}, fmt.Errorf("read manifest: %w", err)
			}
			sawManifest = true
			continue
		}
		outPath := filepath.Join(targetDir, rel)

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(outPath, os.FileMode(hdr.Mode)); err != nil {
				return Manifest{}, err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return Manifest{}, err
			}
			dst, err := os.OpenFile(outPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, os.FileMode(hdr.Mode))
			if err != nil {
				return Manifest{}, err
			}
			if _, err := io.Copy(dst, tr); err != nil {
				_ = dst.Close()
				return Manifest{}, err
			}
			if err := dst.Close(); err != nil {
				return Manifest{}, err
			}
		default:
			// Ignore unsupported entry types.
		}
	}

	if !sawManifest {
		return Manifest{}, fmt.Errorf("archive has no %s entry", manifestName)
	}
	return manifest, nil
}

// VerifyRestore reopens the leaderboard inside a restored data dir and
// checks it against the snapshot manifest.
func VerifyRestore(targetDir string, want Manifest) error {
	got, err := describeBoard(filepath.Clean(targetDir))
	if err != nil {
		return err
	}
	if got.Records != want.Records {
		return fmt.Errorf("restored board has %d records, manifest says %d", got.Records, want.Records)
	}
	if got.TopScore != want.TopScore {
		return fmt.Errorf("restored top score %d, manifest says %d", got.TopScore, want.TopScore)
	}
	if len(got.Challenges) != len(want.Challenges) {
		return fmt.Errorf("restored board has %d challenges, manifest says %d", len(got.Challenges), len(want.Challenges))
	}
	return nil
}

// describeBoard opens the leaderboard database under dataDir and summarizes
// it. A data dir without a board yields an empty manifest rather than an
// error so fresh deployments can still be archived.
func describeBoard(dataDir string) (Manifest, error) {
	m := Manifest{CreatedAt: time.Now().UTC()}

	dbPath := filepath.Join(dataDir, boardDir)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return m, nil
	}

	store, err := leaderboard.OpenLevelStore(dbPath)
	if err != nil {
		return Manifest{}, fmt.Errorf("open board for manifest: %w", err)
	}
	defer store.Close()

	records, err := store.All(context.Background())
	if err != nil {
		return Manifest{}, err
	}

	m.Records = len(records)
	codes := map[string]bool{}
	for _, r := range records {
		if r.ChallengeCode != "" {
			codes[strings.ToUpper(r.ChallengeCode)] = true
		}
	}
	for code := range codes {
		m.Challenges = append(m.Challenges, code)
	}
	sort.Strings(m.Challenges)
	if len(records) > 0 {
		// All() sorts best-first.
		m.TopScore = records[0].Score
		m.TopPlayer = records[0].PlayerName
	}
	return m, nil
}

func writeManifest(tw *tar.Writer, m Manifest) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	hdr := &tar.Header{
		Name:    manifestName,
		Mode:    0o644,
		Size:    int64(len(b)),
		ModTime: m.CreatedAt,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	_, err = tw.Write(b)
	return err
}

func sanitizeArchiveRelPath(name string) (string, error) {
	name = filepath.Clean(strings.TrimSpace(name))
	if name == "." || name == "" {
		return "", fmt.Errorf("invalid archive entry path")
	}
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("invalid absolute archive entry path: %s", name)
	}
	if strings.HasPrefix(name, ".."+string(filepath.Separator)) || name == ".." {
		return "", fmt.Errorf("invalid archive entry path traversal: %s", name)
	}
	return name, nil
}
