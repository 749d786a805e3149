package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/DentalAI22/dental-tycoon-sub000/internal/ops"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "backup":
		if err := cmdBackup(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "backup failed:", err)
			os.Exit(1)
		}
	case "restore":
		if err := cmdRestore(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "restore failed:", err)
			os.Exit(1)
		}
	case "drill":
		if err := cmdDrill(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "drill failed:", err)
			os.Exit(1)
		}
	default:
		printUsage()
		os.Exit(2)
	}
}

func cmdBackup(args []string) error {
	fs := flag.NewFlagSet("backup", flag.ContinueOnError)
	dataDir := fs.String("data-dir", "data", "path to data directory")
	out := fs.String("out", "", "output archive path (.tar.gz)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *out == "" {
		ts := time.Now().UTC().Format("20060102T150405Z")
		*out = filepath.Join("backups", "dentaltycoon-"+ts+".tar.gz")
	}

	m, err := ops.Snapshot(*dataDir, *out)
	if err != nil {
		return err
	}
	fmt.Println(*out)
	printManifest(m)
	return nil
}

func cmdRestore(args []string) error {
	fs := flag.NewFlagSet("restore", flag.ContinueOnError)
	archive := fs.String("archive", "", "input backup archive (.tar.gz)")
	target := fs.String("target-dir", "data-restored", "restore target directory")
	verify := fs.Bool("verify", true, "reopen the restored leaderboard and check it against the manifest")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *archive == "" {
		return fmt.Errorf("archive is required")
	}

	m, err := ops.Restore(*archive, *target)
	if err != nil {
		return err
	}
	if *verify {
		if err := ops.VerifyRestore(*target, m); err != nil {
			return err
		}
	}
	fmt.Println("restored:", *target)
	printManifest(m)
	return nil
}

// cmdDrill is the recovery rehearsal: snapshot the live data dir, restore it
// into a scratch directory, and prove the restored board matches the
// manifest end to end.
func cmdDrill(args []string) error {
	fs := flag.NewFlagSet("drill", flag.ContinueOnError)
	dataDir := fs.String("data-dir", "data", "path to data directory")
	workDir := fs.String("work-dir", os.TempDir(), "temporary workspace for drill artifacts")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := os.MkdirAll(*workDir, 0o755); err != nil {
		return err
	}
	ts := time.Now().UTC().Format("20060102T150405Z")
	archive := filepath.Join(*workDir, "dentaltycoon-drill-"+ts+".tar.gz")
	restoreDir := filepath.Join(*workDir, "dentaltycoon-drill-restore-"+ts)

	want, err := ops.Snapshot(*dataDir, archive)
	if err != nil {
		return err
	}
	got, err := ops.Restore(archive, restoreDir)
	if err != nil {
		return err
	}
	if got.Records != want.Records || got.TopScore != want.TopScore {
		return fmt.Errorf("manifest changed in transit: records %d->%d score %d->%d",
			want.Records, got.Records, want.TopScore, got.TopScore)
	}
	if err := ops.VerifyRestore(restoreDir, want); err != nil {
		return err
	}

	fmt.Println("backup:", archive)
	fmt.Println("restored:", restoreDir)
	printManifest(want)
	return nil
}

func printManifest(m ops.Manifest) {
	fmt.Printf("records: %d  top: %d", m.Records, m.TopScore)
	if m.TopPlayer != "" {
		fmt.Printf(" (%s)", m.TopPlayer)
	}
	if len(m.Challenges) > 0 {
		fmt.Printf("  challenges: %s", strings.Join(m.Challenges, ","))
	}
	fmt.Println()
}

func printUsage() {
	fmt.Println("usage:")
	fmt.Println("  dentaltycoon-ops backup  --data-dir data --out backups/backup.tar.gz")
	fmt.Println("  dentaltycoon-ops restore --archive backups/backup.tar.gz --target-dir data-restored")
	fmt.Println("  dentaltycoon-ops drill   --data-dir data --work-dir /tmp")
}
