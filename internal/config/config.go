package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"texture-replacer/internal/asset"
)

// Config holds the pack location, rig manifest and pass settings.
type Config struct {
	// Paths
	PackDir     string `json:"pack_dir"`
	RigManifest string `json:"rig_manifest"`
	OutputDir   string `json:"output_dir"`

	// Pass settings
	SkinningQuality string `json:"skinning_quality"`
	LogTextures     bool   `json:"log_textures"`

	// Loader settings
	Workers         int   `json:"workers"`
	GenerateMipmaps *bool `json:"generate_mipmaps"`
	PreviewSize     int   `json:"preview_size"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	PackDir         string
	RigManifest     string
	OutputDir       string
	SkinningQuality string
	LogTextures     bool
	Workers         int
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.PackDir != "" {
		c.PackDir = flags.PackDir
	}
	if flags.RigManifest != "" {
		c.RigManifest = flags.RigManifest
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.SkinningQuality != "" {
		c.SkinningQuality = flags.SkinningQuality
	}
	if flags.LogTextures {
		c.LogTextures = true
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.PackDir == "" {
		c.PackDir = detectPackDir()
	}

	// Resolve relative paths against the pack dir
	if c.PackDir != "" {
		if c.RigManifest == "" {
			c.RigManifest = findManifest(c.PackDir)
		} else if !filepath.IsAbs(c.RigManifest) {
			c.RigManifest = filepath.Join(c.PackDir, c.RigManifest)
		}

		if c.OutputDir == "" {
			c.OutputDir = filepath.Join(c.PackDir, "out")
		} else if !filepath.IsAbs(c.OutputDir) {
			c.OutputDir = filepath.Join(c.PackDir, c.OutputDir)
		}
	}

	if c.SkinningQuality == "" {
		c.SkinningQuality = asset.SkinAuto.String()
	}
	if c.GenerateMipmaps == nil {
		on := true
		c.GenerateMipmaps = &on
	}
	if c.PreviewSize <= 0 {
		c.PreviewSize = 256
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Mipmaps reports whether pack textures get a full mip chain.
func (c *Config) Mipmaps() bool {
	return c.GenerateMipmaps == nil || *c.GenerateMipmaps
}

// Validate checks the settings the passes depend on.
func (c *Config) Validate() error {
	if c.PackDir == "" {
		return fmt.Errorf("config: no pack dir set or detected")
	}
	if _, err := asset.ParseSkinQuality(c.SkinningQuality); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Skinning returns the parsed skinning quality; invalid values are auto.
func (c *Config) Skinning() asset.SkinQuality {
	q, err := asset.ParseSkinQuality(c.SkinningQuality)
	if err != nil {
		return asset.SkinAuto
	}
	return q
}

func detectPackDir() string {
	candidates := []string{}

	// Try relative to executable
	if exe, _ := os.Executable(); exe != "" {
		dir := filepath.Dir(exe)
		candidates = append(candidates, dir, filepath.Dir(dir))
	}
	if cwd, _ := os.Getwd(); cwd != "" {
		candidates = append(candidates, cwd)
	}

	for _, base := range candidates {
		if _, err := os.Stat(filepath.Join(base, "TextureReplacer")); err == nil {
			return base
		}
	}
	return ""
}

func findManifest(packDir string) string {
	candidates := []string{
		filepath.Join(packDir, "rig.xml"),
		filepath.Join(packDir, "TextureReplacer", "rig.xml"),
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}
