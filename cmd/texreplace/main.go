package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"texture-replacer/internal/asset"
	"texture-replacer/internal/config"
	"texture-replacer/internal/logging"
	"texture-replacer/internal/replacer"
	"texture-replacer/internal/rig"
	"texture-replacer/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	packDir := flag.String("pack", "", "Path to the content pack (default: auto-detect)")
	manifest := flag.String("rig", "", "Rig manifest XML (default: <pack>/rig.xml)")
	outputDir := flag.String("output", "", "Output directory (default: <pack>/out)")
	skinning := flag.String("skinning", "", "Skinning quality: auto, low, medium, high")
	logTextures := flag.Bool("log-textures", false, "Log every material/texture pair")
	workers := flag.Int("workers", 0, "Number of decode goroutines (default: NumCPU)")
	verbose := flag.Bool("v", false, "Debug logging")

	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		PackDir:         *packDir,
		RigManifest:     *manifest,
		OutputDir:       *outputDir,
		SkinningQuality: *skinning,
		LogTextures:     *logTextures,
		Workers:         *workers,
	})

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v. Use -pack flag or config.json.\n", err)
		os.Exit(1)
	}

	fmt.Printf("Texture replacer\n")
	fmt.Printf("Pack: %s, Workers: %d\n", cfg.PackDir, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()
	reg := asset.NewRegistry()

	// Decode the pack into the pool
	textures, failures, err := texture.LoadPack(cfg.PackDir, texture.PackOptions{
		Workers: cfg.Workers,
		Mipmaps: cfg.Mipmaps(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading pack: %v\n", err)
		os.Exit(1)
	}
	for _, t := range textures {
		reg.AddTexture(t)
	}
	fmt.Printf("Textures: %d loaded, %d failed\n", len(textures), len(failures))

	// Load rig templates and flight scene
	var pair *rig.Pair
	var scene *asset.Scene
	if cfg.RigManifest != "" {
		m, err := rig.LoadManifest(cfg.RigManifest)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading rig manifest: %v\n", err)
			os.Exit(1)
		}
		pair, scene, err = m.Load(reg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading rig: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Rig: %d templates, %d renderers\n", len(m.Templates), len(reg.Renderers()))
	} else {
		fmt.Println("Rig: no manifest, skipping fixup")
	}

	// Lifecycle
	r := replacer.New(reg, replacer.Options{
		Skinning:    cfg.Skinning(),
		LogTextures: cfg.LogTextures,
	})
	r.OnAssetsLoaded(pair)
	st := r.OnSceneEntered()
	nb := r.OnFlightStart(scene)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())
	fmt.Printf("Replacements: %d indexed, NavBall: %v\n", r.Index().Len(), r.Index().NavBall() != nil)
	fmt.Printf("Materials: %d visited, %d rebound, %d originals destroyed, %d upgraded\n",
		st.Materials, st.Replaced, st.Destroyed, st.Upgraded)
	fmt.Printf("NavBall: exterior=%v interior=%v\n", nb.Exterior, nb.Interior)

	if len(failures) > 0 {
		fmt.Printf("\nFailed (%d):\n", len(failures))
		limit := 20
		if len(failures) < limit {
			limit = len(failures)
		}
		for _, f := range failures[:limit] {
			fmt.Printf("  %s: %v\n", f.Path, f.Err)
		}
		if len(failures) > limit {
			fmt.Printf("  ... and %d more\n", len(failures)-limit)
		}
	}

	// Write report
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output dir: %v\n", err)
		os.Exit(1)
	}
	reportPath := filepath.Join(cfg.OutputDir, "report.json")
	if err := replacer.WriteReport(reportPath, r.Report()); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Report: %s\n", reportPath)
}
