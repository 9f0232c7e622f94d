package brain

import (
	"testing"

	"literature/internal/domain"
)

func TestMemoryFollowsLog(t *testing.T) {
	m := NewMemory(1)
	m.SyncHand([]domain.Card{"2S", "3S"})

	log := []domain.LogEntry{
		{Tag: domain.TagStart},
		{Tag: domain.TagTake, ActorSeat: 4, TargetSeat: 1, Card: "2S"},
		{Tag: domain.TagAsk, ActorSeat: 4, TargetSeat: 3, Card: "5S"},
	}
	m.Observe(log)
	m.SyncHand([]domain.Card{"3S"})

	if seat, ok := m.Holder("2S"); !ok || seat != 4 {
		t.Fatalf("Holder(2S) = %d, %v; want 4", seat, ok)
	}
	if seat, ok := m.Holder("3S"); !ok || seat != 1 {
		t.Fatalf("Holder(3S) = %d, %v; want 1", seat, ok)
	}
	if !m.Lacks("5S", 3) || !m.Lacks("2S", 1) {
		t.Fatal("missed negative knowledge")
	}
	if m.Lacks("5S", 4) {
		t.Fatal("asker is not known to lack the card")
	}

	log = append(log, domain.LogEntry{Tag: domain.TagDeclare, ActorSeat: 4, Cards: []domain.Card{"2S", "3S"}})
	m.Observe(log)
	if _, ok := m.Holder("2S"); ok {
		t.Fatal("declared card should have no holder")
	}
	if m.Lacks("2S", 1) {
		t.Fatal("declared card should carry no negative knowledge")
	}
}

func TestMemoryResetsOnNewGame(t *testing.T) {
	m := NewMemory(2)
	m.Observe([]domain.LogEntry{
		{Tag: domain.TagStart},
		{Tag: domain.TagTake, ActorSeat: 3, TargetSeat: 4, Card: "QH"},
	})
	if seat, ok := m.Holder("QH"); !ok || seat != 3 {
		t.Fatalf("Holder(QH) = %d, %v; want 3", seat, ok)
	}

	m.Observe([]domain.LogEntry{{Tag: domain.TagStart}})
	if _, ok := m.Holder("QH"); ok || m.Lacks("QH", 4) {
		t.Fatal("memory should reset for a shorter log")
	}
}
