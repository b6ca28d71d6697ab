package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"texture-replacer/internal/asset"
	"texture-replacer/internal/config"
	"texture-replacer/internal/texture"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	packDir := flag.String("pack", "", "Path to the content pack (default: auto-detect)")
	outputDir := flag.String("output", "", "Preview directory (default: <pack>/out/previews)")
	size := flag.Int("size", 0, "Longest preview edge in pixels (default: 256)")
	list := flag.Bool("list", false, "Only list index keys")
	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if *size > 0 {
		cfg.PreviewSize = *size
	}
	cfg.Resolve(config.Flags{PackDir: *packDir})
	if cfg.PackDir == "" {
		fmt.Fprintln(os.Stderr, "Error: cannot find pack directory. Use -pack flag or config.json.")
		os.Exit(1)
	}

	textures, failures, err := texture.LoadPack(cfg.PackDir, texture.PackOptions{
		Workers: cfg.Workers,
		Mipmaps: cfg.Mipmaps(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading pack: %v\n", err)
		os.Exit(1)
	}
	for _, f := range failures {
		fmt.Fprintf(os.Stderr, "ERR %s: %v\n", f.Path, f.Err)
	}

	reg := asset.NewRegistry()
	for _, t := range textures {
		reg.AddTexture(t)
	}
	idx := texture.Build(reg, nil)

	for _, k := range idx.Keys() {
		t, _ := idx.Lookup(k)
		fmt.Printf("%-40s %5dx%-5d mips=%-2d %s/%s\n", k, t.Width, t.Height, t.MipCount, t.Filter, t.Wrap)
	}
	if nb := idx.NavBall(); nb != nil {
		fmt.Printf("%-40s %5dx%-5d mips=%-2d (dedicated slot)\n", texture.NavBallKey, nb.Width, nb.Height, nb.MipCount)
	}
	fmt.Printf("\n%d replacements indexed\n", idx.Len())
	if *list {
		return
	}

	dir := *outputDir
	if dir == "" {
		dir = filepath.Join(cfg.OutputDir, "previews")
	}
	written, err := texture.ExportPreviews(dir, idx, cfg.PreviewSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting previews: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%d previews written to %s\n", len(written), dir)
}
