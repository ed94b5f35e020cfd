package convert

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-ifcgraph/pkg/config"
	"github.com/dd0wney/cluso-ifcgraph/pkg/graphml"
	"github.com/dd0wney/cluso-ifcgraph/pkg/ifc"
	"github.com/dd0wney/cluso-ifcgraph/pkg/logging"
	"github.com/dd0wney/cluso-ifcgraph/pkg/metrics"
	"github.com/dd0wney/cluso-ifcgraph/pkg/step"
)

const fixture = "../ifc/testdata/house.ifc"

const notIFC = `ISO-10303-21;
HEADER;
FILE_DESCRIPTION((''),'2;1');
FILE_NAME('part.stp','',(''),(''),'','','');
FILE_SCHEMA(('AP214'));
ENDSEC;
DATA;
#1=PRODUCT('p','p','',());
ENDSEC;
END-ISO-10303-21;
`

func copyFixture(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(fixture)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func writeInput(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.InputDir = t.TempDir()
	cfg.OutputDir = filepath.Join(t.TempDir(), "out")
	return cfg
}

func newConverter(cfg *config.Config) (*Converter, *metrics.Registry, *bytes.Buffer) {
	var buf bytes.Buffer
	reg := metrics.NewRegistry()
	return New(cfg, logging.New(&buf, logging.DebugLevel, logging.FormatJSON), reg), reg, &buf
}

func TestRunConvertsEveryFile(t *testing.T) {
	cfg := testConfig(t)
	copyFixture(t, cfg.InputDir, "house.ifc")
	copyFixture(t, cfg.InputDir, "Annex.IFC")
	writeInput(t, cfg.InputDir, "notes.txt", "ignored")

	conv, reg, _ := newConverter(cfg)
	report, err := conv.Run()
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 2, report.Discovered)
	assert.Equal(t, 2, report.Converted())
	assert.Empty(t, report.Failed())

	nodes, edges := report.Totals()
	assert.Equal(t, 14, nodes)
	assert.Equal(t, 10, edges)

	for _, name := range []string{"Annex.graphml", "house.graphml"} {
		g, err := graphml.ReadFile(filepath.Join(cfg.OutputDir, name))
		require.NoError(t, err, name)
		assert.Equal(t, 7, g.NodeCount(), name)
		assert.Equal(t, 5, g.EdgeCount(), name)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(reg.FilesTotal.WithLabelValues(metrics.StatusConverted)))
	assert.Equal(t, 6.0, testutil.ToFloat64(reg.EdgesWrittenTotal.WithLabelValues("SURROUNDS")))
	assert.Equal(t, 4.0, testutil.ToFloat64(reg.NodesPrunedTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(reg.FilesDiscovered))
}

func TestRunContinuesPastFailures(t *testing.T) {
	cfg := testConfig(t)
	copyFixture(t, cfg.InputDir, "b_house.ifc")
	writeInput(t, cfg.InputDir, "a_broken.ifc", "this is not a STEP file")
	writeInput(t, cfg.InputDir, "c_part.ifc", notIFC)

	conv, reg, logs := newConverter(cfg)
	report, err := conv.Run()
	require.NoError(t, err, "per-file failures must not fail the batch")

	require.Len(t, report.Results, 3)
	assert.Equal(t, 1, report.Converted())

	failed := report.Failed()
	require.Len(t, failed, 2)
	for _, res := range failed {
		var fe *FileError
		require.ErrorAs(t, res.Err, &fe)
		assert.Equal(t, KindRead, fe.Kind)
		assert.Equal(t, metrics.StageRead, fe.Stage)
		assert.Equal(t, res.Input, fe.File)
	}
	assert.True(t, step.IsSyntaxError(failed[0].Err))
	assert.ErrorIs(t, failed[1].Err, ifc.ErrNotIFC)

	_, err = os.Stat(filepath.Join(cfg.OutputDir, "a_broken.graphml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	assert.Equal(t, 2.0, testutil.ToFloat64(reg.FileErrorsTotal.WithLabelValues(string(KindRead))))
	assert.Contains(t, logs.String(), `"msg":"file converted"`)
	assert.Contains(t, logs.String(), `"level":"ERROR"`)
}

func TestRunWriteFailure(t *testing.T) {
	cfg := testConfig(t)
	copyFixture(t, cfg.InputDir, "house.ifc")
	// a directory where the output file should go
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.OutputDir, "house.graphml", "x"), 0755))

	conv, _, _ := newConverter(cfg)
	report, err := conv.Run()
	require.NoError(t, err)

	require.Len(t, report.Failed(), 1)
	res := report.Failed()[0]
	assert.Equal(t, KindWrite, KindOf(res.Err))

	var werr *graphml.WriteError
	assert.ErrorAs(t, res.Err, &werr)
	assert.Equal(t, 7, res.Nodes, "extraction finished before the write failed")
}

func TestRunInputNotFound(t *testing.T) {
	cfg := testConfig(t)
	cfg.InputDir = filepath.Join(cfg.InputDir, "missing")

	conv, _, _ := newConverter(cfg)
	_, err := conv.Run()
	assert.ErrorIs(t, err, ErrInputNotFound)

	_, statErr := os.Stat(cfg.OutputDir)
	assert.ErrorIs(t, statErr, os.ErrNotExist, "output dir is not created when input is missing")
}

func TestRunNoInputFiles(t *testing.T) {
	cfg := testConfig(t)
	writeInput(t, cfg.InputDir, "readme.md", "nothing here")

	conv, _, logs := newConverter(cfg)
	report, err := conv.Run()
	assert.ErrorIs(t, err, ErrNoInputFiles)
	assert.Zero(t, report.Discovered)
	assert.DirExists(t, cfg.OutputDir)
	assert.Contains(t, logs.String(), "no input files")
}

func TestRunRecursiveMirrorsTree(t *testing.T) {
	cfg := testConfig(t)
	cfg.Recursive = true
	copyFixture(t, cfg.InputDir, "house.ifc")
	copyFixture(t, cfg.InputDir, filepath.Join("site", "block", "annex.ifc"))

	conv, _, _ := newConverter(cfg)
	report, err := conv.Run()
	require.NoError(t, err)
	assert.Equal(t, 2, report.Converted())
	assert.FileExists(t, filepath.Join(cfg.OutputDir, "site", "block", "annex.graphml"))

	cfg.Recursive = false
	report, err = conv.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, report.Discovered)
}

func TestRunWritesMetricsFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.MetricsFile = filepath.Join(t.TempDir(), "ifcgraph.prom")
	copyFixture(t, cfg.InputDir, "house.ifc")

	conv, _, _ := newConverter(cfg)
	_, err := conv.Run()
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `ifcgraph_files_total{status="converted"} 1`)
}

func TestConvertFileLogsPruned(t *testing.T) {
	cfg := testConfig(t)
	cfg.Extraction.LogPruned = true
	input := copyFixture(t, cfg.InputDir, "house.ifc")

	conv, _, logs := newConverter(cfg)
	res := conv.ConvertFile(input, filepath.Join(t.TempDir(), "house.graphml"))
	require.NoError(t, res.Err)
	assert.Equal(t, 2, res.Stats.Sanitize.Pruned)
	assert.Equal(t, 2, strings.Count(logs.String(), "pruned isolated node"))
}

func TestNewFallsBackToDefaultLogger(t *testing.T) {
	var buf bytes.Buffer
	previous := logging.DefaultLogger()
	logging.SetDefaultLogger(logging.NewJSONLogger(&buf, logging.DebugLevel))
	defer logging.SetDefaultLogger(previous)

	cfg := testConfig(t)
	cfg.Extraction.LogPruned = true
	input := copyFixture(t, cfg.InputDir, "house.ifc")

	res := New(cfg, nil, metrics.NewRegistry()).ConvertFile(input, filepath.Join(t.TempDir(), "house.graphml"))
	require.NoError(t, res.Err)
	assert.Contains(t, buf.String(), `"component":"convert"`)
	assert.Equal(t, 2, strings.Count(buf.String(), "pruned isolated node"))
}

func TestFileError(t *testing.T) {
	cause := errors.New("disk full")
	err := error(&FileError{Stage: "write", File: "a.ifc", Kind: KindWrite, Cause: cause})

	assert.Equal(t, "write a.ifc (write): disk full", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindWrite, KindOf(err))
	assert.Equal(t, Kind(""), KindOf(cause))
}
