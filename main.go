package main

import (
	"compress/gzip"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonnenauha/obj-loader/objectfile"
	"github.com/pkg/profile"
	"gopkg.in/cheggaaa/pb.v1"
)

var (
	StartParams = startParams{
		Gzip: -1,
	}

	ApplicationName = "obj-loader"
	ApplicationURL  = "https://github.com/jonnenauha/" + ApplicationName
	Version         string
	VersionHash     string
	VersionDate     string
)

type startParams struct {
	Input       string
	Output      string
	MaterialDir string
	TextureDir  string

	Gzip int

	Strict                   bool
	OverwriteReusedMaterials bool
	Stdout                   bool
	Quiet                    bool
	Debug                    bool
	NoProgress               bool
	CpuProfile               bool
}

func (sp startParams) IsGzipEnabled() bool {
	return sp.Gzip >= gzip.BestSpeed && sp.Gzip <= gzip.BestCompression
}

func (sp startParams) Options() objectfile.Options {
	return objectfile.Options{
		MaterialDir:              sp.MaterialDir,
		TextureDir:               sp.TextureDir,
		Strict:                   sp.Strict,
		OverwriteReusedMaterials: sp.OverwriteReusedMaterials,
	}
}

func parseFlags() {
	version := false

	flag.StringVar(&StartParams.Input,
		"in", StartParams.Input, "Input OBJ file.")
	flag.StringVar(&StartParams.Output,
		"out", StartParams.Output, "Write the built vertex and index buffers to this file.")
	flag.StringVar(&StartParams.MaterialDir,
		"mtl-dir", StartParams.MaterialDir, "Prefix for mtllib file names. Defaults to the directory of -in.")
	flag.StringVar(&StartParams.TextureDir,
		"tex-dir", StartParams.TextureDir, "Prefix for map_Kd texture file names. Defaults to the directory of -in.")

	flag.IntVar(&StartParams.Gzip,
		"gzip", StartParams.Gzip, "Gzip compression level on the output for both -stdout and -out. <=0 disables compression, use 1 (best speed) to 9 (best compression) to enable.")

	flag.BoolVar(&StartParams.Strict,
		"strict", StartParams.Strict, "Errors out on extra geometry components and materials without map_Kd, otherwise warns.")
	flag.BoolVar(&StartParams.OverwriteReusedMaterials,
		"overwrite-reused-materials", StartParams.OverwriteReusedMaterials, "A repeated usemtl replaces the faces collected for that material instead of appending to them.")
	flag.BoolVar(&StartParams.Stdout,
		"stdout", StartParams.Stdout, "Write output to stdout. If enabled -out is ignored and logging directed to stderr.")
	flag.BoolVar(&StartParams.Quiet,
		"quiet", StartParams.Quiet, "Silence stdout printing.")
	flag.BoolVar(&StartParams.Debug,
		"debug", StartParams.Debug, "Log parser debug messages.")
	flag.BoolVar(&StartParams.NoProgress,
		"no-progress", StartParams.NoProgress, "No shell progress bars.")
	flag.BoolVar(&StartParams.CpuProfile,
		"cpu-profile", StartParams.CpuProfile, "Record ./cpu.pprof profile.")
	flag.BoolVar(&version,
		"version", false, "Print version and exit, ignores -quiet.")

	flag.Parse()

	initLogging(StartParams.Stdout)

	// -version: ignores -stdout as we are about to exit
	if version {
		fmt.Printf("%s %s\n", ApplicationName, getVersion(true))
		os.Exit(0)
	}

	// -gzip
	if StartParams.Gzip < -1 || StartParams.Gzip > gzip.BestCompression {
		logFatal("-gzip must be -1 to 9, given: %d", StartParams.Gzip)
	}

	// -in
	StartParams.Input = cleanPath(StartParams.Input)
	if len(StartParams.Input) == 0 {
		logFatal("-in missing")
	} else if !fileExists(StartParams.Input) {
		logFatal("-in file %q does not exist", StartParams.Input)
	} else if ext := fileExtension(StartParams.Input); ext != ".obj" {
		logWarn("-in file extension is %q, expected .obj", ext)
	}

	// -mtl-dir -tex-dir: used as plain prefixes, keep the trailing slash
	inputDir := filepath.ToSlash(filepath.Dir(StartParams.Input)) + "/"
	if !isFlagPassed("mtl-dir") {
		StartParams.MaterialDir = inputDir
	}
	if !isFlagPassed("tex-dir") {
		StartParams.TextureDir = inputDir
	}

	// -out
	if !StartParams.Stdout && len(StartParams.Output) > 0 {
		StartParams.Output = cleanPath(StartParams.Output)
		if StartParams.Input == StartParams.Output {
			logFatal("Overwriting input file is not allowed, both input and output point to %s\n", StartParams.Input)
		}
	}
}

func isFlagPassed(name string) (found bool) {
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func getVersion(date bool) (version string) {
	if Version == "" {
		return "dev"
	}
	version = fmt.Sprintf("v%s (%s)", Version, VersionHash)
	if date {
		version += " " + VersionDate
	}
	return version
}

func main() {
	parseFlags()

	// cpu profiling for development: github.com/pkg/profile
	if StartParams.CpuProfile {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	if b, err := json.MarshalIndent(StartParams, "", "  "); err == nil {
		logInfo("\n%s %s %s", ApplicationName, getVersion(false), b)
	} else {
		logFatalError(err)
	}

	logger := newLogger(StartParams.Quiet, StartParams.Debug)
	defer logger.Sync()

	type timing struct {
		Step     string
		Duration time.Duration
	}

	var (
		start    = time.Now()
		pre      = time.Now()
		timings  = []timing{}
		timeStep = func(step string) {
			timings = append(timings, timing{Step: step, Duration: time.Now().Sub(pre)})
			pre = time.Now()
		}
	)

	// load
	opts := StartParams.Options()
	opts.Logger = logger

	var bar *pb.ProgressBar
	if !StartParams.NoProgress && !StartParams.Quiet {
		opts.Progress = func(done, total int) {
			if bar == nil {
				bar = pb.New(total).Prefix("  - faces ").SetMaxWidth(130)
				bar.ShowTimeLeft = false
				bar.Output = logwriter
				bar.Start()
			}
			bar.Set(done)
		}
	}

	model, err := objectfile.LoadModel(StartParams.Input, opts)
	if bar != nil {
		bar.Finish()
	}
	logFatalError(err)
	timeStep("Load")

	// write buffers out
	linesWritten := 0
	if StartParams.Stdout || len(StartParams.Output) > 0 {
		var (
			w        = &Writer{model: model}
			errWrite error
		)
		if StartParams.Stdout {
			linesWritten, errWrite = w.WriteTo(os.Stdout)
		} else {
			linesWritten, errWrite = w.WriteFile(StartParams.Output)
		}
		logFatalError(errWrite)
		timeStep("Write")
	}

	// print stats etc
	logInfo(" ")
	durationTotal := time.Since(start)
	for _, timing := range timings {
		logResultsPostfix(timing.Step, formatDuration(timing.Duration), computeDurationPerc(timing.Duration, durationTotal)+"%")
	}
	logResults("Total", formatDuration(durationTotal))

	stats := model.Stats()
	logGeometryStats(stats.Geometry)
	logVertexStats(stats)
	logMeshStats(model)
	logWarnings(model.Warnings)
	logFileStats(linesWritten)

	if StartParams.IsGzipEnabled() && linesWritten > 0 {
		logInfo(" ")
		logInfo("Gzip compression enabled with level %d.", StartParams.Gzip)
	}

	logInfo(" ")
}

func logGeometryStats(stats objectfile.GeometryStats) {
	if !stats.IsEmpty() {
		logInfo(" ")
	}
	for _, t := range []objectfile.Type{objectfile.Position, objectfile.Normal, objectfile.UV, objectfile.Face} {
		logResultsInt(t.Name(), stats.Num(t))
	}
	logResultsInt("skipped lines", stats.Skipped)
}

// Compares the unique vertices against one vertex per face corner,
// which is what an unindexed buffer would hold.
func logVertexStats(stats objectfile.ModelStats) {
	corners := stats.Geometry.Faces * 3
	if corners == 0 {
		return
	}
	logInfo(" ")
	logResultsIntPostfix("Vertices", stats.Vertices, computeStatsDiff(corners, stats.Vertices))
	logResultsInt("Indices", corners)
}

func logMeshStats(model *objectfile.Model) {
	logInfo(" ")
	logTitle("Meshes [%d] Materials [%d]", len(model.Meshes), len(model.Materials))
	for _, mesh := range model.Meshes {
		texture := "-"
		if mesh.Material != nil && mesh.Material.Texture != "" {
			texture = mesh.Material.Texture
		}
		name := mesh.Name
		if name == "" {
			name = "(none)"
		}
		logResultsPostfix("  "+name, formatInt(mesh.Triangles()), texture)
	}
}

func logWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}
	logInfo(" ")
	for _, w := range warnings {
		logWarn("%s", w)
	}
}

func logFileStats(linesWritten int) {
	logInfo(" ")
	logResults("File input", formatBytes(fileSize(StartParams.Input)))
	if linesWritten > 0 {
		logResults("Lines output", formatInt(linesWritten))
		if !StartParams.Stdout {
			logResults("File output", formatBytes(fileSize(StartParams.Output)))
		}
	}
}

func computeStatsDiff(a, b int) string {
	if a == b {
		return ""
	}
	diff := b - a
	perc := computePerc(float64(b), float64(a))
	if perc >= 99.999999 {
		// positive 0 decimals
		return fmt.Sprintf("+%-7d", diff)
	} else if perc <= 99.0 {
		// negative 0 decimals
		return fmt.Sprintf("%-7d    -%d", diff, 100-int(perc)) + "%"
	}
	// negative 2 decimals
	return fmt.Sprintf("%-7d    -%.2f", diff, 100-perc) + "%"
}

func computePerc(step, total float64) float64 {
	if step == 0 {
		return 0.0
	} else if total == 0 {
		return 100.0
	}
	return (step / total) * 100.0
}

func computeFloatPerc(step, total float64) string {
	perc := computePerc(step, total)
	if perc < 1.0 {
		return fmt.Sprintf("%.2f", perc)
	}
	return intToString(int(perc))
}

func computeDurationPerc(step, total time.Duration) string {
	return computeFloatPerc(step.Seconds(), total.Seconds())
}
