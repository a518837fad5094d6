package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/provenance-cli/internal/model"
)

func openStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func testReport(file string) *model.ProvenanceReport {
	return &model.ProvenanceReport{
		File: file,
		Scores: model.ScoreBoard{
			model.OriginWord:        8.0,
			model.OriginLibreOffice: 1.5,
		},
		Verdict: "Pure Microsoft Word",
		Taint:   1.5,
		Evidence: map[model.Origin][]string{
			model.OriginWord: {"Application tag indicates Microsoft Word"},
		},
	}
}

func TestSaveAndGetRun(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	saved, err := s.SaveReport(ctx, testReport("a.docx"))
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "a.docx", saved.File)
	assert.Equal(t, "Pure Microsoft Word", saved.Verdict)
	assert.Equal(t, 1.5, saved.Taint)

	got, err := s.GetRun(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "a.docx", got.File)
	require.NotNil(t, got.Report)
	assert.Equal(t, 8.0, got.Report.Scores[model.OriginWord])
	assert.Equal(t,
		[]string{"Application tag indicates Microsoft Word"},
		got.Report.Evidence[model.OriginWord])
}

func TestListRunsNewestFirst(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	first, err := s.SaveReport(ctx, testReport("first.docx"))
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	second, err := s.SaveReport(ctx, testReport("second.docx"))
	require.NoError(t, err)

	runs, err := s.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.ID, runs[0].ID)
	assert.Equal(t, first.ID, runs[1].ID)

	// The list view carries no report payload.
	assert.Nil(t, runs[0].Report)
}

func TestListRunsLimit(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.SaveReport(ctx, testReport("x.docx"))
		require.NoError(t, err)
	}

	runs, err := s.ListRuns(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestGetRunNotFound(t *testing.T) {
	s := openStore(t)

	_, err := s.GetRun(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrRunNotFound))
}
