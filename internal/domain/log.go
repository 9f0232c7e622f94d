package domain

import (
	"fmt"
	"strings"
)

// Tag identifies the kind of a log entry. The vocabulary is shared with
// replay consumers and must not change.
type Tag string

const (
	TagCreate   Tag = "CREATE"
	TagJoin     Tag = "JOIN"
	TagLeave    Tag = "LEAVE"
	TagStart    Tag = "START"
	TagTake     Tag = "TAKE"
	TagAsk      Tag = "ASK"
	TagTransfer Tag = "TRANSFER"
	TagAttempt  Tag = "ATTEMPT"
	TagDeclare  Tag = "DECLARE"
)

// Outcome is the verdict carried by a DECLARE entry.
type Outcome string

const (
	OutcomeCorrect   Outcome = "CORRECT"
	OutcomeIncorrect Outcome = "INCORRECT"
)

// LogEntry is one state-changing action in a game's append-only log.
// Seats and Cards are kept for in-process consumers; String renders the line format.
type LogEntry struct {
	Tag        Tag     `json:"tag"`
	Actor      string  `json:"actor,omitempty"`
	Target     string  `json:"target,omitempty"`
	Card       Card    `json:"card,omitempty"`
	Set        string  `json:"set,omitempty"`
	Outcome    Outcome `json:"outcome,omitempty"`
	ActorSeat  int     `json:"actor_seat,omitempty"`
	TargetSeat int     `json:"target_seat,omitempty"`
	Cards      []Card  `json:"cards,omitempty"`
}

// String renders the entry as TAG:field1:field2:...
func (e LogEntry) String() string {
	fields := []string{string(e.Tag)}
	switch e.Tag {
	case TagCreate, TagJoin, TagLeave:
		fields = append(fields, e.Actor)
	case TagTake, TagAsk:
		fields = append(fields, e.Actor, e.Target, string(e.Card))
	case TagTransfer:
		fields = append(fields, e.Actor, e.Target)
	case TagAttempt:
		fields = append(fields, e.Actor, e.Set)
	case TagDeclare:
		fields = append(fields, e.Actor, e.Set, string(e.Outcome))
	}
	return strings.Join(fields, ":")
}

// ParseLogEntry reads a line produced by LogEntry.String.
func ParseLogEntry(line string) (LogEntry, error) {
	parts := strings.Split(line, ":")
	e := LogEntry{Tag: Tag(parts[0])}
	want := map[Tag]int{
		TagCreate: 2, TagJoin: 2, TagLeave: 2, TagStart: 1,
		TagTake: 4, TagAsk: 4, TagTransfer: 3, TagAttempt: 3, TagDeclare: 4,
	}
	n, ok := want[e.Tag]
	if !ok {
		return LogEntry{}, fmt.Errorf("unknown log tag %q", parts[0])
	}
	if len(parts) != n {
		return LogEntry{}, fmt.Errorf("log entry %q: want %d fields, got %d", line, n, len(parts))
	}
	if n > 1 {
		e.Actor = parts[1]
	}
	switch e.Tag {
	case TagTake, TagAsk:
		e.Target, e.Card = parts[2], Card(parts[3])
	case TagTransfer:
		e.Target = parts[2]
	case TagAttempt:
		e.Set = parts[2]
	case TagDeclare:
		e.Set, e.Outcome = parts[2], Outcome(parts[3])
	}
	return e, nil
}

// CleanName strips the log field separator and surrounding blanks from a
// display name so log lines stay parseable.
func CleanName(name string) string {
	return strings.TrimSpace(strings.ReplaceAll(name, ":", ""))
}

func playerEntry(tag Tag, p *Player) LogEntry {
	return LogEntry{Tag: tag, Actor: p.Name, ActorSeat: p.Seat}
}

func pairEntry(tag Tag, from, to *Player) LogEntry {
	return LogEntry{Tag: tag, Actor: from.Name, ActorSeat: from.Seat, Target: to.Name, TargetSeat: to.Seat}
}
