package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"deploydiff/internal/config"
	"deploydiff/internal/errors"
	"deploydiff/internal/report"
	"deploydiff/internal/slogutil"
	"deploydiff/internal/testutil"
)

func TestGolden_Reports(t *testing.T) {
	testutil.ForEachFixture(t, func(t *testing.T, fixture *testutil.FixtureContext) {
		output := filepath.Join(t.TempDir(), "differences.json")
		run := compareRun{
			Paths: config.Paths{
				Original: fixture.OriginalDir,
				Deployed: fixture.DeployedDir,
				Output:   output,
			},
			Format: report.FormatJSON,
			Jobs:   2,
		}

		if _, err := runCompare(context.Background(), run, slogutil.NewDiscardLogger()); err != nil {
			t.Fatalf("runCompare() error = %v", err)
		}

		got, err := os.ReadFile(output)
		if err != nil {
			t.Fatalf("read report: %v", err)
		}
		testutil.CompareGolden(t, fixture, "differences.json", got)
	})
}

func TestRunCompare_Summary(t *testing.T) {
	fixture := testutil.LoadFixture(t, "mixed")
	run := compareRun{
		Paths: config.Paths{
			Original: fixture.OriginalDir,
			Deployed: fixture.DeployedDir,
			Output:   filepath.Join(t.TempDir(), "differences.json"),
		},
		Format: report.FormatJSON,
		Jobs:   1,
	}

	summary, err := runCompare(context.Background(), run, slogutil.NewDiscardLogger())
	if err != nil {
		t.Fatalf("runCompare() error = %v", err)
	}
	want := report.Summary{Paths: 7, LineMismatches: 2, StructuralNotes: 5}
	if summary != want {
		t.Errorf("summary = %+v, want %+v", summary, want)
	}
}

func TestRunCompare_YAMLReport(t *testing.T) {
	fixture := testutil.LoadFixture(t, "mixed")
	output := filepath.Join(t.TempDir(), "differences.yaml")
	run := compareRun{
		Paths: config.Paths{
			Original: fixture.OriginalDir,
			Deployed: fixture.DeployedDir,
			Output:   output,
		},
		Format: report.FormatYAML,
		Jobs:   1,
	}

	if _, err := runCompare(context.Background(), run, slogutil.NewDiscardLogger()); err != nil {
		t.Fatalf("runCompare() error = %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("report is not valid YAML: %v", err)
	}
	mapping := doc.Content[0]
	var keys []string
	for i := 0; i < len(mapping.Content); i += 2 {
		keys = append(keys, mapping.Content[i].Value)
	}
	want := "config/db.yaml,docs/README.md,legacy,notes.md,views/index.ejs,extra.yaml,tmp"
	if got := strings.Join(keys, ","); got != want {
		t.Errorf("keys = %s, want %s", got, want)
	}
}

func TestRunCompare_FailureWritesNothing(t *testing.T) {
	original, deployed := testutil.NewTreePair(t,
		map[string]string{"a.json": "{}"},
		map[string]string{"a.json": "{oops"},
	)
	output := filepath.Join(t.TempDir(), "differences.json")
	if err := os.WriteFile(output, []byte("previous"), 0o644); err != nil {
		t.Fatal(err)
	}

	run := compareRun{
		Paths:  config.Paths{Original: original, Deployed: deployed, Output: output},
		Format: report.FormatJSON,
		Jobs:   1,
	}
	_, err := runCompare(context.Background(), run, slogutil.NewDiscardLogger())
	if !errors.IsCode(err, errors.FormatFailed) {
		t.Fatalf("runCompare() error = %v, want FORMAT_FAILED", err)
	}

	data, _ := os.ReadFile(output)
	if string(data) != "previous" {
		t.Errorf("existing report was overwritten: %q", data)
	}
}

func TestRunCompare_Canceled(t *testing.T) {
	fixture := testutil.LoadFixture(t, "mixed")
	output := filepath.Join(t.TempDir(), "differences.json")
	run := compareRun{
		Paths:  config.Paths{Original: fixture.OriginalDir, Deployed: fixture.DeployedDir, Output: output},
		Format: report.FormatJSON,
		Jobs:   1,
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runCompare(ctx, run, slogutil.NewDiscardLogger())
	if !errors.IsCode(err, errors.Canceled) {
		t.Fatalf("runCompare() error = %v, want CANCELED", err)
	}
	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Error("no report should be written when the run is canceled")
	}
}

func TestRunCompare_LogsRun(t *testing.T) {
	fixture := testutil.LoadFixture(t, "identical")
	run := compareRun{
		Paths: config.Paths{
			Original: fixture.OriginalDir,
			Deployed: fixture.DeployedDir,
			Output:   filepath.Join(t.TempDir(), "differences.json"),
		},
		Format: report.FormatJSON,
		Jobs:   1,
	}

	var buf bytes.Buffer
	summary, err := runCompare(context.Background(), run, slogutil.NewLogger(&buf, slog.LevelInfo))
	if err != nil {
		t.Fatalf("runCompare() error = %v", err)
	}
	if summary != (report.Summary{}) {
		t.Errorf("summary = %+v, want empty", summary)
	}

	out := buf.String()
	for _, want := range []string{"[info] (", ") Starting comparison", ") No differences found", ") Comparison finished | "} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}
