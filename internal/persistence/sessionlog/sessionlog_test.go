package sessionlog

import (
	"testing"
	"time"

	"paleotrek.quest/internal/game/session"
)

func TestWriteReadRoundtrip(t *testing.T) {
	dir := t.TempDir()

	w, err := New(dir, "session_1")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	events := []session.Event{
		{Kind: session.EventUnlock, ID: "basic_knapping", At: at},
		{Kind: session.EventCraft, ID: "hammerstone", Score: 0.78, Tier: "excellent", At: at.Add(time.Minute)},
	}
	for _, ev := range events {
		if err := w.Record(ev); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	got, err := Read(Path(dir, "session_1"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != len(events) {
		t.Fatalf("got %d events, want %d", len(got), len(events))
	}
	for i := range events {
		if got[i].Kind != events[i].Kind || got[i].ID != events[i].ID {
			t.Fatalf("event %d: %+v != %+v", i, got[i], events[i])
		}
	}
	if got[1].Score != 0.78 || got[1].Tier != "excellent" {
		t.Fatalf("craft payload lost: %+v", got[1])
	}
}

func TestRecordAfterClose(t *testing.T) {
	w, err := New(t.TempDir(), "session_2")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Record(session.Event{Kind: session.EventUnlock, ID: "x"}); err == nil {
		t.Fatalf("record after close should fail")
	}
}
