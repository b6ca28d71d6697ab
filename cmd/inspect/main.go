package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"texture-replacer/internal/asset"
	"texture-replacer/internal/rig"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dependent := fs.Bool("dependent", false, "Tag roles with the dependent variant's names")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(stderr, "usage: inspect [-dependent] template.gltf")
		return 2
	}
	path := fs.Arg(0)

	kind := rig.VariantReference
	if *dependent {
		kind = rig.VariantDependent
	}

	reg := asset.NewRegistry()
	sv, err := rig.LoadTemplate(reg, kind, path, path)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading template: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Template: %s (%s)\n", path, kind)
	fmt.Fprintf(stdout, "Renderers: %d, Materials: %d, Textures: %d\n",
		len(sv.Slots), reg.MaterialCount(), len(reg.Textures()))
	for i, s := range sv.Slots {
		r := s.Renderer
		fmt.Fprintf(stdout, "  [%d] %-60s role=%-13s material=%d skinned=%v\n", i, r.Name, s.Role, r.Material, r.Skinned)
	}

	fmt.Fprintln(stdout, "Materials:")
	for _, h := range reg.Materials() {
		m := reg.Material(h)
		mainTex, nrm := "-", "-"
		if t := m.MainTexture(); t != nil {
			mainTex = t.Name
		}
		if t := m.NormalMap(); t != nil {
			nrm = t.Name
		}
		fmt.Fprintf(stdout, "  [%d] %-30s shader=%q main=%s normal=%s\n", h, m.Name, m.Shader.Name, mainTex, nrm)
	}
	return 0
}
