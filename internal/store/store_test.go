package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db handle")
	}
}

func TestOpen_FileDatabaseUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deutschpro.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is covered by the file-based test.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestKV_GetPutDelete(t *testing.T) {
	kv := openTestStore(t).KV()
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, "deutsch_progress")
	require.NoError(t, err)
	assert.False(t, ok, "absent key should report ok=false")

	require.NoError(t, kv.Put(ctx, "deutsch_progress", `{"score":1}`))
	require.NoError(t, kv.Put(ctx, "deutsch_progress", `{"score":2}`))

	v, ok, err := kv.Get(ctx, "deutsch_progress")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"score":2}`, v)

	require.NoError(t, kv.Delete(ctx, "deutsch_progress"))
	require.NoError(t, kv.Delete(ctx, "deutsch_progress"))
	_, ok, err = kv.Get(ctx, "deutsch_progress")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLLMEvents_AppendQueryGet(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-3-flash-preview", Purpose: "chat", InputTokens: 100, OutputTokens: 40, LatencyMs: 800, Success: true, RequestBody: "[user]\nHallo"},
		{Provider: "gemini", Model: "gemini-3-flash-preview", Purpose: "feedback", InputTokens: 50, OutputTokens: 20, LatencyMs: 400, Success: true},
		{Provider: "gemini", Model: "gemini-3-flash-preview", Purpose: "chat", LatencyMs: 100, ErrorMessage: "rate limited"},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Greater(t, all[0].Sequence, all[1].Sequence, "newest first")
	assert.Equal(t, "rate limited", all[0].ErrorMessage)
	assert.False(t, all[0].Success)

	chat, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "chat", Limit: 1})
	require.NoError(t, err)
	require.Len(t, chat, 1)
	assert.Equal(t, "chat", chat[0].Purpose)

	got, err := repo.GetLLMEvent(ctx, all[2].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "[user]\nHallo", got.RequestBody)
	assert.WithinDuration(t, time.Now(), got.Timestamp, time.Minute)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLLMEvents_Usage(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Model: "m1", Purpose: "chat", InputTokens: 10, OutputTokens: 5, LatencyMs: 100, Success: true}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Model: "m1", Purpose: "chat", InputTokens: 20, OutputTokens: 5, LatencyMs: 300, Success: true}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Model: "m2", Purpose: "daily-lesson", InputTokens: 7, OutputTokens: 3, LatencyMs: 50, Success: true}))

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, LLMPurposeUsage{Purpose: "chat", Calls: 2, InputTokens: 30, OutputTokens: 10, AvgLatencyMs: 200}, byPurpose[0])

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, LLMModelUsage{Model: "m1", Calls: 2, InputTokens: 30, OutputTokens: 10}, byModel[0])
}

func TestLessonCompletions(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLessonCompletion(ctx, LessonCompletionData{SessionID: "s1", LessonID: "l1", LessonTitle: "Begrüßung", Score: 100, Correct: 1, Total: 1}))
	require.NoError(t, repo.AppendLessonCompletion(ctx, LessonCompletionData{SessionID: "s2", LessonID: "l5", LessonTitle: "Im Restaurant", Score: 0, Correct: 0, Total: 1}))

	recs, err := repo.QueryLessonCompletions(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "l5", recs[0].LessonID)
	assert.Equal(t, "l1", recs[1].LessonID)
	assert.Equal(t, 100, recs[1].Score)

	future, err := repo.QueryLessonCompletions(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	assert.Empty(t, future)
}

func TestSequenceIsSharedAcrossTables(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Purpose: "feedback"}))
	require.NoError(t, repo.AppendLessonCompletion(ctx, LessonCompletionData{SessionID: "s", LessonID: "l1"}))

	llmEvents, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	completions, err := repo.QueryLessonCompletions(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Less(t, llmEvents[0].Sequence, completions[0].Sequence)
}
