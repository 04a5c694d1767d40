package json_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/flagsync/internal/core/domain"
	portsmocks "github.com/olusolaa/flagsync/internal/core/ports/mocks"
	jsonreporter "github.com/olusolaa/flagsync/internal/reporting/json"
)

func sampleResult() domain.RunResult {
	diff := domain.NewDiffResult[domain.Resource]()
	diff.Create["new-toggle"] = domain.Toggle{Name: "new-toggle", Type: "release"}
	diff.Remove = []string{"old-toggle"}

	tags := domain.NewDiffResult[domain.Tag]()
	tags.Create["new-toggle"] = domain.Tag{Key: "new-toggle", Type: "owner", Value: "team-a"}

	apply := domain.NewApplyReport(false)
	apply.RecordSuccess(domain.KindToggle, "new-toggle", domain.OpCreate)
	apply.RecordFailure(domain.KindToggle, "old-toggle", domain.OpRemove, errors.New("boom"))

	return domain.RunResult{
		Organization: "acme",
		Environment:  "prod",
		Status:       domain.StatusCompletedWithPartialFailures,
		Kinds: []domain.KindResult{{
			Kind:    domain.KindToggle,
			Diff:    diff,
			TagDiff: tags,
			Apply:   apply,
		}},
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "diff_acme_prod.json", jsonreporter.FileName("acme", "prod"))
	assert.Equal(t, "diff_acme-eu_prod-1.json", jsonreporter.FileName("acme/eu", "prod 1"))
}

func TestReporter_WritesAuditFile(t *testing.T) {
	dir := t.TempDir()
	reporter, err := jsonreporter.NewReporter(jsonreporter.Config{OutputDir: filepath.Join(dir, "out")}, portsmocks.NewQuietLogger(t))
	require.NoError(t, err)

	result := sampleResult()
	require.NoError(t, reporter.Report(context.Background(), result))

	raw, err := os.ReadFile(filepath.Join(dir, "out", "diff_acme_prod.json"))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, jsoniter.Unmarshal(raw, &decoded))

	assert.Equal(t, "acme", decoded["organization"])
	assert.Equal(t, "prod", decoded["environment"])
	assert.Equal(t, string(domain.StatusCompletedWithPartialFailures), decoded["status"])

	summary := decoded["summary"].(map[string]any)
	assert.EqualValues(t, 1, summary["create"])
	assert.EqualValues(t, 0, summary["update"])
	assert.EqualValues(t, 1, summary["remove"])
	assert.EqualValues(t, 1, summary["tag_changes"])
	assert.EqualValues(t, 1, summary["succeeded"])
	assert.EqualValues(t, 1, summary["failed"])

	kinds := decoded["kinds"].([]any)
	require.Len(t, kinds, 1)
	toggleDiff := kinds[0].(map[string]any)["diff"].(map[string]any)
	assert.Contains(t, toggleDiff["create"], "new-toggle")
	assert.Equal(t, []any{"old-toggle"}, toggleDiff["remove"])
}

func TestReporter_PublishesToSink(t *testing.T) {
	dir := t.TempDir()
	sink := portsmocks.NewReportSink(t)
	reporter, err := jsonreporter.NewReporter(jsonreporter.Config{OutputDir: dir}, portsmocks.NewQuietLogger(t), jsonreporter.WithSink(sink))
	require.NoError(t, err)

	result := sampleResult()
	sink.On("Publish", mock.Anything, filepath.Join(dir, "diff_acme_prod.json"), result).Return(nil).Once()

	require.NoError(t, reporter.Report(context.Background(), result))
}

func TestReporter_SinkFailureIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	sink := portsmocks.NewReportSink(t)
	logger := portsmocks.NewLogger(t)
	logger.On("Infof", mock.Anything, mock.Anything, mock.Anything).Return()
	logger.On("Errorf", mock.Anything, mock.Anything, "Failed to publish diff report %s", mock.Anything).Return().Once()

	reporter, err := jsonreporter.NewReporter(jsonreporter.Config{OutputDir: dir}, logger, jsonreporter.WithSink(sink))
	require.NoError(t, err)

	sink.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("denied")).Once()

	require.NoError(t, reporter.Report(context.Background(), sampleResult()))
	assert.FileExists(t, filepath.Join(dir, "diff_acme_prod.json"))
}
