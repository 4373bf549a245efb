package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/redjax/fileops/analyze"
	"github.com/redjax/fileops/config"
	"github.com/redjax/fileops/history"
	"github.com/redjax/fileops/scan"
	"github.com/redjax/fileops/sysinfo"
	"github.com/redjax/fileops/tui"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	output := flag.String("output", "", "Write results to this JSON file")
	useTUI := flag.Bool("tui", false, "Browse results in a terminal UI after the scan")
	useHistory := flag.Bool("history", true, "Record the scan in the local history db")
	recent := flag.Int("recent", 0, "Print the N most recent scans and exit")
	flag.Parse()

	log.SetFlags(log.Lshortfile | log.LstdFlags | log.Lmsgprefix)
	log.SetPrefix("[FILEOPS] ")

	if *recent > 0 {
		printRecentScans(*recent)
		return
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Error loading config %s: %v", *configPath, err)
		}
		cfg = loaded
	}

	if flag.NArg() > 0 {
		cfg.ScanPath = flag.Arg(0)
	}
	if *output != "" {
		cfg.OutputFile = *output
	}
	if *useTUI {
		cfg.TUI = true
	}
	if !*useHistory {
		cfg.History = false
	}

	if cfg.ScanPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting current directory: %v\n", err)
			os.Exit(1)
		}
		cfg.ScanPath = cwd
	}

	absPath, err := filepath.Abs(cfg.ScanPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving path %s: %v\n", cfg.ScanPath, err)
		os.Exit(1)
	}

	if snap, err := sysinfo.Host().Snapshot(); err == nil {
		log.Printf("Host: %s, %d/%d CPUs, %s/%s memory used, up since %s",
			snap.OS,
			snap.PhysicalCPUs, snap.LogicalCPUs,
			humanize.Bytes(snap.UsedMemory), humanize.Bytes(snap.TotalMemory),
			humanize.Time(snap.LastBoot),
		)
	}

	var opts []scan.Option
	if cfg.History {
		store, err := history.Open()
		if err != nil {
			log.Printf("Scan history unavailable: %v", err)
		} else {
			defer store.Close()
			opts = append(opts, scan.WithHistory(store))
		}
	}

	scanner, err := scan.NewScanner(absPath, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating scanner: %v\n", err)
		os.Exit(1)
	}

	var results *scan.ResultSet
	if cfg.OutputFile != "" {
		results, err = scanner.ScanAndSave(cfg.OutputFile)
	} else {
		results, err = scanner.Scan()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning %s: %v\n", absPath, err)
		os.Exit(1)
	}

	summary, err := analyze.Summarize(results)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error summarizing results: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Scanned %s: %d dir(s), %d file(s), %s in files\n",
		summary.Target, summary.Dirs, summary.Files, summary.TotalFileHuman)
	for _, lf := range summary.Largest {
		fmt.Printf("  %10s  %s\n", lf.SizeHuman, lf.Path)
	}
	if cfg.OutputFile != "" {
		fmt.Println("Results written to:", cfg.OutputFile)
	}

	if cfg.TUI {
		if err := tui.NewApp(results).Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error running browser: %v\n", err)
			os.Exit(1)
		}
	}
}

func printRecentScans(n int) {
	store, err := history.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scan history: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	entries, err := store.Recent(n)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading scan history: %v\n", err)
		os.Exit(1)
	}

	if len(entries) == 0 {
		fmt.Println("No scans recorded yet")
		return
	}
	for _, e := range entries {
		fmt.Printf("%s  %s  %d dir(s), %d file(s)\n",
			e.ScanTime.Format("2006-01-02 15:04:05"), e.Target, e.Dirs, e.Files)
	}
}
