package broker

import (
	"fmt"
	"strings"
)

// HistoryResult is the output of BuildHistory: a bounded prior-turn
// transcript plus its accounted token cost (§4.9).
type HistoryResult struct {
	HistoryText       string
	HistoryTokens     int
	ReferencedFiles   []string // newest-first, deduplicated
	ReferencedImages  []string // newest-first, deduplicated
}

// BuildHistory reconstructs a bounded prior-turn transcript within
// budget.HistoryBudget, following the five-step policy of §4.9 exactly.
func BuildHistory(thread *ConversationThread, budget TokenAllocation) HistoryResult {
	if thread == nil || len(thread.Turns) == 0 {
		return HistoryResult{}
	}

	refFiles, refImages := dedupNewestFirst(thread.Turns)

	// Step 2/3: walk turns newest-first, keep prepending while under
	// budget; a turn that would push over is skipped but older turns
	// after it are still considered (a single oversized middle turn can
	// be dropped without truncating everything behind it).
	type included struct {
		turn  ConversationTurn
		index int
	}
	var kept []included
	used := 0
	for i := len(thread.Turns) - 1; i >= 0; i-- {
		turn := thread.Turns[i]
		rendered := renderTurn(turn, i)
		cost := EstimateTokens(rendered)
		if used+cost > budget.HistoryBudget {
			continue
		}
		used += cost
		kept = append(kept, included{turn: turn, index: i})
	}

	if len(kept) == 0 {
		return HistoryResult{ReferencedFiles: refFiles, ReferencedImages: refImages}
	}

	// Step 4: reverse kept (currently newest-first) into chronological
	// order for presentation.
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}

	var sb strings.Builder
	total := 0
	for _, k := range kept {
		rendered := renderTurn(k.turn, k.index)
		sb.WriteString(rendered)
		total += EstimateTokens(rendered)
	}
	sb.WriteString(renderReferenceIndex(refFiles, refImages))

	return HistoryResult{
		HistoryText:      sb.String(),
		HistoryTokens:    total,
		ReferencedFiles:  refFiles,
		ReferencedImages: refImages,
	}
}

// dedupNewestFirst computes the derived, deduplicated list of files and
// images referenced across all turns, newest-first — the most recent
// reference to a given absolute path wins (§4.9 step 1, §9: "computed at
// read time by scanning turns newest-first, not by maintaining a side
// index").
func dedupNewestFirst(turns []ConversationTurn) (files, images []string) {
	seenFiles := make(map[string]bool)
	seenImages := make(map[string]bool)
	for i := len(turns) - 1; i >= 0; i-- {
		for _, f := range turns[i].Files {
			if !seenFiles[f] {
				seenFiles[f] = true
				files = append(files, f)
			}
		}
		for _, img := range turns[i].Images {
			if !seenImages[img] {
				seenImages[img] = true
				images = append(images, img)
			}
		}
	}
	return files, images
}

func renderTurn(turn ConversationTurn, index int) string {
	var sb strings.Builder
	sb.WriteString("---\n")
	fmt.Fprintf(&sb, "[Turn %d] %s", index, turn.Role)
	if turn.ToolName != "" {
		fmt.Fprintf(&sb, " (tool: %s)", turn.ToolName)
	}
	if turn.ModelName != "" {
		fmt.Fprintf(&sb, " (model: %s)", turn.ModelName)
	}
	sb.WriteString("\n")
	if len(turn.Files) > 0 || len(turn.Images) > 0 {
		sb.WriteString("Files/images: ")
		sb.WriteString(strings.Join(append(append([]string{}, turn.Files...), turn.Images...), ", "))
		sb.WriteString("\n")
	}
	sb.WriteString(turn.Content)
	sb.WriteString("\n")
	return sb.String()
}

func renderReferenceIndex(files, images []string) string {
	if len(files) == 0 && len(images) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("---\nREFERENCED FILES/IMAGES (newest first):\n")
	for _, f := range files {
		fmt.Fprintf(&sb, "- %s\n", f)
	}
	for _, img := range images {
		fmt.Fprintf(&sb, "- %s\n", img)
	}
	return sb.String()
}

// MergeFileLists merges thread-aggregated files/images with
// request-provided ones, request overriding thread order for
// newest-first (§4.10 step 3): request-provided entries are treated as
// the most recent reference.
func MergeFileLists(threadFiles, requestFiles []string) []string {
	seen := make(map[string]bool, len(requestFiles)+len(threadFiles))
	out := make([]string, 0, len(requestFiles)+len(threadFiles))
	for _, f := range requestFiles {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	for _, f := range threadFiles {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}
