// Package convert runs the IFC to GraphML pipeline over a directory of
// input files. Files are processed one at a time; a failure in one file is
// recorded in the report and the batch moves on.
package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-ifcgraph/pkg/config"
	"github.com/dd0wney/cluso-ifcgraph/pkg/extract"
	"github.com/dd0wney/cluso-ifcgraph/pkg/graph"
	"github.com/dd0wney/cluso-ifcgraph/pkg/graphml"
	"github.com/dd0wney/cluso-ifcgraph/pkg/ifc"
	"github.com/dd0wney/cluso-ifcgraph/pkg/logging"
	"github.com/dd0wney/cluso-ifcgraph/pkg/metrics"
)

const dirPermissions = 0755

// Converter turns IFC files into GraphML files according to a Config
type Converter struct {
	cfg     *config.Config
	logger  logging.Logger
	metrics *metrics.Registry
}

// New creates a converter. A nil logger falls back to logging.DefaultLogger
// and a nil registry uses metrics.DefaultRegistry.
func New(cfg *config.Config, logger logging.Logger, reg *metrics.Registry) *Converter {
	if logger == nil {
		logger = logging.DefaultLogger()
	}
	if reg == nil {
		reg = metrics.DefaultRegistry()
	}
	reg.InitLabels(relationLabels(), nameSourceLabels())
	return &Converter{cfg: cfg, logger: logger.With(logging.Component("convert")), metrics: reg}
}

// Run converts every input file found under the configured input
// directory. The returned error is only set when the batch could not start;
// per-file failures are reported in Report.Results.
func (c *Converter) Run() (*Report, error) {
	report := &Report{
		RunID:     uuid.New().String(),
		InputDir:  c.cfg.InputDir,
		OutputDir: c.cfg.OutputDir,
		Started:   time.Now(),
	}
	logger := c.logger.With(logging.RunID(report.RunID))

	files, err := Discover(c.cfg.InputDir, c.cfg.Extension, c.cfg.Recursive)
	if err != nil {
		logger.Error("input discovery failed", logging.File(c.cfg.InputDir), logging.Error(err))
		return report, err
	}
	if err := os.MkdirAll(c.cfg.OutputDir, dirPermissions); err != nil {
		return report, fmt.Errorf("create output directory %s: %w", c.cfg.OutputDir, err)
	}
	report.Discovered = len(files)
	if len(files) == 0 {
		logger.Warn("no input files", logging.File(c.cfg.InputDir), logging.String("extension", c.cfg.Extension))
		return report, fmt.Errorf("%w: no %s files in %s", ErrNoInputFiles, c.cfg.Extension, c.cfg.InputDir)
	}

	logger.Info("batch started", logging.Count(len(files)), logging.File(c.cfg.InputDir), logging.Output(c.cfg.OutputDir))
	for _, input := range files {
		output := OutputPath(c.cfg.InputDir, c.cfg.OutputDir, input, c.cfg.Extension, c.cfg.OutputExtension)
		report.Results = append(report.Results, c.convert(logger, input, output))
	}

	report.Duration = time.Since(report.Started)
	c.metrics.UpdateRunMetrics(report.Discovered, report.Duration, time.Now())
	logger.Info("batch finished",
		logging.Int("converted", report.Converted()),
		logging.Int("failed", len(report.Failed())),
		logging.Latency(report.Duration))

	if c.cfg.MetricsFile != "" {
		if err := c.metrics.WriteTextfile(c.cfg.MetricsFile); err != nil {
			logger.Warn("metrics textfile not written", logging.Output(c.cfg.MetricsFile), logging.Error(err))
		}
	}
	return report, nil
}

// ConvertFile converts one input file to output
func (c *Converter) ConvertFile(input, output string) FileResult {
	return c.convert(c.logger, input, output)
}

func (c *Converter) convert(logger logging.Logger, input, output string) (res FileResult) {
	res = FileResult{Input: input, Output: output}
	log := logger.With(logging.File(input))
	timer := logging.StartTimer(log, "file converted", logging.Output(output))
	stage := metrics.StageRead

	defer func() {
		if r := recover(); r != nil {
			res.Err = &FileError{Stage: stage, File: input, Kind: KindInternal, Cause: fmt.Errorf("panic: %v", r)}
		}
		res.Duration = timer.Elapsed()
		if res.Err != nil {
			c.metrics.RecordFile(metrics.StatusFailed, string(KindOf(res.Err)))
			timer.EndError(res.Err, logging.Stage(stage))
			return
		}
		c.metrics.RecordFile(metrics.StatusConverted, "")
		timer.End(logging.Int("nodes", res.Nodes), logging.Int("edges", res.Edges))
	}()

	log.Debug("processing file")

	began := time.Now()
	model, err := ifc.Open(input)
	c.metrics.RecordStage(stage, time.Since(began))
	if err != nil {
		res.Err = &FileError{Stage: stage, File: input, Kind: KindRead, Cause: err}
		return res
	}

	stage = metrics.StageExtract
	began = time.Now()
	g, stats := extract.Extract(model, extract.Options{
		PrimaryCategory: c.cfg.Extraction.PrimaryCategory,
		SpaceCommonPset: c.cfg.Extraction.SpaceCommonPset,
		LogPruned:       c.cfg.Extraction.LogPruned,
		Logger:          log,
	})
	c.metrics.RecordStage(stage, time.Since(began))
	res.Stats = stats
	res.Nodes, res.Edges = g.NodeCount(), g.EdgeCount()

	stage = metrics.StageWrite
	began = time.Now()
	err = c.write(output, g)
	c.metrics.RecordStage(stage, time.Since(began))
	if err != nil {
		res.Err = &FileError{Stage: stage, File: input, Kind: KindWrite, Cause: err}
		return res
	}

	c.metrics.RecordBytes(fileSize(input), fileSize(output))
	c.metrics.RecordExtraction(sample(stats, res.Nodes))
	return res
}

func (c *Converter) write(path string, g *graph.Graph) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return err
	}
	return graphml.WriteFile(path, g, graphml.Options{Atomic: c.cfg.AtomicWrite})
}

func relationLabels() []string {
	out := make([]string, len(extract.Relations))
	for i, r := range extract.Relations {
		out[i] = string(r)
	}
	return out
}

func nameSourceLabels() []string {
	out := make([]string, len(extract.NameSources))
	for i, s := range extract.NameSources {
		out[i] = string(s)
	}
	return out
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

func sample(s extract.Stats, nodes int) metrics.ExtractionSample {
	skipped := map[string]int{
		string(extract.RelationSurrounds): s.Build.Containment.Skipped,
		string(extract.RelationVoids):     s.Build.Adjacency.Skipped,
	}
	out := metrics.ExtractionSample{
		NodesByCategory:   s.NodesByCategory,
		EdgesByRelation:   make(map[string]int, len(s.EdgesByRelation)),
		NameSources:       make(map[string]int, len(s.Build.Names)),
		SkippedByRelation: skipped,
		Pruned:            s.Sanitize.Pruned,
		Normalized:        s.Sanitize.Converted,
		Nodes:             nodes,
	}
	for rel, n := range s.EdgesByRelation {
		out.EdgesByRelation[string(rel)] = n
	}
	for src, n := range s.Build.Names {
		out.NameSources[string(src)] = n
	}
	return out
}
