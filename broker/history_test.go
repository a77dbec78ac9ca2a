package broker

import (
	"strings"
	"testing"
	"time"
)

func makeTurn(role TurnRole, content string, files ...string) ConversationTurn {
	return ConversationTurn{Role: role, Content: content, Timestamp: time.Now(), Files: files}
}

func TestBuildHistoryChronologicalOrder(t *testing.T) {
	thread := &ConversationThread{Turns: []ConversationTurn{
		makeTurn(TurnUser, "first"),
		makeTurn(TurnAssistant, "second"),
		makeTurn(TurnUser, "third"),
	}}
	budget := TokenAllocation{HistoryBudget: 1000}
	result := BuildHistory(thread, budget)

	firstIdx := strings.Index(result.HistoryText, "first")
	secondIdx := strings.Index(result.HistoryText, "second")
	thirdIdx := strings.Index(result.HistoryText, "third")
	if !(firstIdx < secondIdx && secondIdx < thirdIdx) {
		t.Fatalf("expected chronological order in history text, got:\n%s", result.HistoryText)
	}
}

func TestBuildHistorySkipsOversizedMiddleTurn(t *testing.T) {
	thread := &ConversationThread{Turns: []ConversationTurn{
		makeTurn(TurnUser, "old-small"),
		makeTurn(TurnAssistant, strings.Repeat("x", 10000)),
		makeTurn(TurnUser, "new-small"),
	}}
	budget := TokenAllocation{HistoryBudget: 50}
	result := BuildHistory(thread, budget)

	if !strings.Contains(result.HistoryText, "new-small") {
		t.Error("expected the newest turn to survive budget trimming")
	}
	if !strings.Contains(result.HistoryText, "old-small") {
		t.Error("expected the oldest turn to still be considered after skipping the oversized middle turn")
	}
	if strings.Contains(result.HistoryText, strings.Repeat("x", 10000)) {
		t.Error("expected the oversized middle turn to be dropped")
	}
}

func TestDedupNewestFirstKeepsMostRecentReference(t *testing.T) {
	thread := []ConversationTurn{
		makeTurn(TurnUser, "turn0", "/a.go"),
		makeTurn(TurnAssistant, "turn1", "/b.go"),
		makeTurn(TurnUser, "turn2", "/a.go"),
	}
	files, _ := dedupNewestFirst(thread)
	if len(files) != 2 {
		t.Fatalf("expected 2 deduplicated files, got %v", files)
	}
	if files[0] != "/a.go" {
		t.Errorf("expected the most recently referenced file first, got %v", files)
	}
}

func TestMergeFileListsRequestTakesPriority(t *testing.T) {
	merged := MergeFileLists([]string{"/old.go", "/shared.go"}, []string{"/new.go", "/shared.go"})
	want := []string{"/new.go", "/shared.go", "/old.go"}
	if len(merged) != len(want) {
		t.Fatalf("MergeFileLists = %v, want %v", merged, want)
	}
	for i := range want {
		if merged[i] != want[i] {
			t.Fatalf("MergeFileLists = %v, want %v", merged, want)
		}
	}
}

func TestBuildHistoryEmptyThread(t *testing.T) {
	result := BuildHistory(&ConversationThread{}, TokenAllocation{HistoryBudget: 1000})
	if result.HistoryText != "" {
		t.Errorf("expected empty history text for an empty thread, got %q", result.HistoryText)
	}
}
