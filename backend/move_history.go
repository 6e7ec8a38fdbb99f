package main

type HistoryEntry struct {
	PlayerID  int
	Action    ActionKind
	X         int
	Y         int
	Level     int
	Penalty   int
	Score     int
	ElapsedMs float64
	IsAi      bool
}

// MoveHistory keeps the most recent moves, oldest first, bounded by limit
// so long bot matches cannot grow it without end.
type MoveHistory struct {
	limit   int
	entries []HistoryEntry
}

func (h *MoveHistory) Clear() {
	h.entries = nil
}

func (h *MoveHistory) SetLimit(limit int) {
	h.limit = limit
}

func (h *MoveHistory) Push(entry HistoryEntry) {
	h.entries = append(h.entries, entry)
	if h.limit > 0 && len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}
}

func (h MoveHistory) Size() int {
	return len(h.entries)
}

func (h MoveHistory) All() []HistoryEntry {
	return append([]HistoryEntry(nil), h.entries...)
}
