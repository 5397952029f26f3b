// dronegen is a CLI for generating procedural drone meshes and
// exporting them as STL files.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Boomstam/dronegen/internal/logger"
	"github.com/Boomstam/dronegen/pkg/config"
	"github.com/Boomstam/dronegen/pkg/drone"
	"github.com/Boomstam/dronegen/pkg/engine"
	"github.com/Boomstam/dronegen/pkg/export"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "generate", "gen":
		cmdGenerate(args)
	case "recipe":
		cmdRecipe(args)
	case "preset":
		cmdPreset(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`dronegen - procedural drone mesh generator

Usage:
  dronegen <command> [options]

Commands:
  generate [options]          Generate drones from seeds
  recipe <file.lisp> [opts]   Generate drones from a recipe file
  preset <out.yaml>           Write the default preset to a file

Examples:
  dronegen generate -seed 42 -out scout.stl
  dronegen generate -count 10 -preset racing.yaml -out ./fleet
  dronegen recipe fleet.lisp -out ./fleet`)
}

func cmdGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	seed := fs.Int64("seed", 1, "generation seed; with -count > 1, seeds are seed, seed+1, ...")
	count := fs.Int("count", 1, "number of drones to generate")
	presetPath := fs.String("preset", "", "preset YAML file (default: built-in ranges)")
	out := fs.String("out", "drone.stl", "output STL file, or directory with -count > 1")
	logLevel := fs.String("log-level", "info", "log level (debug, info, warn, error)")
	logFile := fs.String("log-file", "", "optional rotating log file")
	fs.Parse(args)

	log, preset := setup(*presetPath, *logLevel, *logFile)
	defer log.Sync()

	gen := &drone.Generator{Ranges: preset.Ranges, Arm: preset.Arm, Logger: log}

	for i := 0; i < *count; i++ {
		s := *seed + int64(i)
		asm, err := gen.Generate(s)
		if err != nil {
			log.Fatal("generation failed", zap.Int64("seed", s), zap.Error(err))
		}
		path := *out
		if *count > 1 {
			path = filepath.Join(*out, fmt.Sprintf("drone-%d.stl", s))
		}
		writeAssembly(log, asm, path)
	}
}

func cmdRecipe(args []string) {
	fs := flag.NewFlagSet("recipe", flag.ExitOnError)
	presetPath := fs.String("preset", "", "preset YAML file for sampled fields")
	out := fs.String("out", ".", "output directory")
	logLevel := fs.String("log-level", "info", "log level (debug, info, warn, error)")
	logFile := fs.String("log-file", "", "optional rotating log file")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: dronegen recipe <file.lisp> [options]")
		os.Exit(1)
	}
	recipePath := fs.Arg(0)

	log, preset := setup(*presetPath, *logLevel, *logFile)
	defer log.Sync()

	source, err := os.ReadFile(recipePath)
	if err != nil {
		log.Fatal("reading recipe", zap.Error(err))
	}

	rec, evalErrs, err := engine.NewEngine().Evaluate(string(source))
	if err != nil {
		log.Fatal("recipe evaluation failed", zap.Error(err))
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			fmt.Fprintf(os.Stderr, "%s: %s\n", recipePath, e.Error())
		}
		os.Exit(1)
	}
	if len(rec.Drones) == 0 {
		log.Warn("recipe defines no drones", zap.String("file", recipePath))
		return
	}

	gen := &drone.Generator{Ranges: preset.Ranges, Arm: preset.Arm, Logger: log}
	for _, def := range rec.Drones {
		asm, err := buildFromDef(gen, def)
		if err != nil {
			log.Fatal("generation failed", zap.String("drone", def.Name), zap.Error(err))
		}
		writeAssembly(log, asm, filepath.Join(*out, def.Name+".stl"))
	}
}

// buildFromDef samples a spec from the def's seed, overrides the
// fields the recipe pinned down, and builds the result.
func buildFromDef(gen *drone.Generator, def engine.DroneDef) (*drone.Assembly, error) {
	spec, rs, err := gen.Sample(def.Seed)
	if err != nil {
		return nil, err
	}
	if def.Hub != nil {
		spec.Hub = *def.Hub
	}
	if def.Rotor != nil {
		spec.Rotor = *def.Rotor
	}
	if def.RotorCount != 0 {
		spec.RotorCount = def.RotorCount
	}
	if def.Arm != nil {
		spec.Arm = *def.Arm
	}
	spec.Relayout()

	asm, err := gen.Build(spec, rs)
	if err != nil {
		return nil, err
	}
	asm.Seed = def.Seed
	return asm, nil
}

func cmdPreset(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: dronegen preset <out.yaml>")
		os.Exit(1)
	}
	if err := config.Default().SaveTo(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote default preset to %s\n", args[0])
}

func setup(presetPath, logLevel, logFile string) (*zap.Logger, *config.Preset) {
	preset := config.Default()
	if presetPath != "" {
		p, err := config.Load(presetPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		preset = p
	}
	if preset.Logging.Level != "" && logLevel == "info" {
		logLevel = preset.Logging.Level
	}
	if preset.Logging.LogFile != "" && logFile == "" {
		logFile = preset.Logging.LogFile
	}
	return logger.New(logLevel, logFile), preset
}

func writeAssembly(log *zap.Logger, asm *drone.Assembly, path string) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatal("creating output directory", zap.Error(err))
		}
	}
	combined := asm.Combined()
	if err := export.WriteSTL(path, combined); err != nil {
		log.Fatal("export failed", zap.Error(err))
	}
	log.Info("wrote drone",
		zap.String("path", path),
		zap.Int64("seed", asm.Seed),
		zap.Int("parts", len(asm.Parts)),
		zap.Int("triangles", combined.TriangleCount()),
	)
}
