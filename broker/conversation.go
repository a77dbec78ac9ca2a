package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TurnRole is the role tag on one ConversationTurn.
type TurnRole string

const (
	TurnUser      TurnRole = "user"
	TurnAssistant TurnRole = "assistant"
)

// ConversationTurn is one role-tagged record in a thread (§3).
// Invariant: Content is non-empty; Files/Images are absolute paths when
// set (enforced by callers, not re-validated here — the kernel is the
// single writer).
type ConversationTurn struct {
	Role         TurnRole  `json:"role"`
	Content      string    `json:"content"`
	Timestamp    time.Time `json:"timestamp"`
	ModelName    string    `json:"modelName,omitempty"`
	ToolName     string    `json:"toolName,omitempty"`
	Files        []string  `json:"files,omitempty"`
	Images       []string  `json:"images,omitempty"`
	InputTokens  int       `json:"inputTokens,omitempty"`
	OutputTokens int       `json:"outputTokens,omitempty"`
}

// ConversationThread is a flat, immutable-per-turn record plus an id —
// no cyclic structures (§9 design note).
type ConversationThread struct {
	ID            string              `json:"id"`
	CreatedAt     time.Time           `json:"createdAt"`
	LastUpdatedAt time.Time           `json:"lastUpdatedAt"`
	InitialTool   string              `json:"initialTool"`
	Turns         []ConversationTurn  `json:"turns"`
}

// TotalTurns is a derived accessor.
func (t *ConversationThread) TotalTurns() int { return len(t.Turns) }

// TotalTokens is a derived accessor summing every turn's accounted
// tokens.
func (t *ConversationThread) TotalTokens() int {
	total := 0
	for _, turn := range t.Turns {
		total += turn.InputTokens + turn.OutputTokens
	}
	return total
}

// ErrThreadAbsent signals load() found no key for the id (TTL expired or
// never existed) — distinct from a transport failure talking to the KV.
var ErrThreadAbsent = fmt.Errorf("thread not found")

// ConversationStore is the KV-backed thread store (§4.7). Keys are
// "thread:{id}"; values are JSON-serialized ConversationThread.
//
// Concurrency: ownership of a thread value is logically single-writer
// per request; concurrent appends to the same id use optimistic
// last-write-wins (§4.7, §9 open question — decided, see DESIGN.md).
type ConversationStore struct {
	kv  KV
	ttl time.Duration
}

func NewConversationStore(kv KV, ttl time.Duration) *ConversationStore {
	return &ConversationStore{kv: kv, ttl: ttl}
}

func threadKey(id string) string { return "thread:" + id }

// Create generates a fresh opaque UUID-shaped id, writes a new thread
// seeded with the request turn, and returns the id.
func (s *ConversationStore) Create(ctx context.Context, initialTool string, seed ConversationTurn) (string, error) {
	id := uuid.NewString()
	now := time.Now()
	thread := &ConversationThread{
		ID:            id,
		CreatedAt:     now,
		LastUpdatedAt: now,
		InitialTool:   initialTool,
		Turns:         []ConversationTurn{seed},
	}
	if err := s.write(ctx, thread); err != nil {
		return "", err
	}
	return id, nil
}

// Load fetches a thread by id. Returns ErrThreadAbsent (not a Go error
// value reported up the stack as internalError) when the key is absent.
func (s *ConversationStore) Load(ctx context.Context, id string) (*ConversationThread, error) {
	raw, found, err := s.kv.Get(ctx, threadKey(id))
	if err != nil {
		return nil, fmt.Errorf("loading thread %s: %w", id, err)
	}
	if !found {
		return nil, ErrThreadAbsent
	}
	var thread ConversationThread
	if err := json.Unmarshal(raw, &thread); err != nil {
		return nil, fmt.Errorf("decoding thread %s: %w", id, err)
	}
	return &thread, nil
}

// Append loads, appends turn, trims to maxTurns keeping the first (seed)
// turn always plus the most recent maxTurns-1, and renews TTL (§4.7).
func (s *ConversationStore) Append(ctx context.Context, id string, turn ConversationTurn, maxTurns int) (*ConversationThread, error) {
	thread, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	thread.Turns = append(thread.Turns, turn)
	thread.Turns = capTurns(thread.Turns, maxTurns)
	thread.LastUpdatedAt = time.Now()
	if err := s.write(ctx, thread); err != nil {
		return nil, err
	}
	return thread, nil
}

// capTurns enforces §3/§8's cap: len(turns) <= maxTurns, turn 0 (seed)
// preserved if any turns remain.
func capTurns(turns []ConversationTurn, maxTurns int) []ConversationTurn {
	if maxTurns <= 0 || len(turns) <= maxTurns {
		return turns
	}
	if maxTurns == 1 {
		return turns[:1]
	}
	seed := turns[0]
	recentCount := maxTurns - 1
	recent := turns[len(turns)-recentCount:]
	out := make([]ConversationTurn, 0, maxTurns)
	out = append(out, seed)
	out = append(out, recent...)
	return out
}

func (s *ConversationStore) write(ctx context.Context, thread *ConversationThread) error {
	data, err := json.Marshal(thread)
	if err != nil {
		return fmt.Errorf("encoding thread %s: %w", thread.ID, err)
	}
	if err := s.kv.Set(ctx, threadKey(thread.ID), data, s.ttl); err != nil {
		return fmt.Errorf("storing thread %s: %w", thread.ID, err)
	}
	return nil
}

// Delete removes a thread outright (used by tests and diagnostics; no
// tool in the catalog exposes this over MCP).
func (s *ConversationStore) Delete(ctx context.Context, id string) error {
	return s.kv.Del(ctx, threadKey(id))
}
