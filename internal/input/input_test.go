package input

import (
	"testing"
	"time"
)

func feed(s *Stream, data string) {
	for i := 0; i < len(data); i++ {
		s.ch <- data[i]
	}
}

func TestPollEmitsDownOnce(t *testing.T) {
	s := newStream()
	now := time.Unix(0, 0)

	feed(s, "aaa")
	events, quit := s.Poll(now)
	if quit {
		t.Fatal("unexpected quit")
	}
	if len(events) != 1 || events[0] != (Event{Action: MoveLeft, Down: true}) {
		t.Fatalf("events = %+v, want single move-left down", events)
	}

	feed(s, "a")
	if events, _ := s.Poll(now.Add(50 * time.Millisecond)); len(events) != 0 {
		t.Fatalf("repeat should not emit events, got %+v", events)
	}
}

func TestPollReleasesAfterHold(t *testing.T) {
	s := newStream()
	now := time.Unix(0, 0)

	feed(s, " ")
	s.Poll(now)

	events, _ := s.Poll(now.Add(KeyHoldDuration))
	if len(events) != 1 || events[0] != (Event{Action: Fire}) {
		t.Fatalf("events = %+v, want fire up", events)
	}
	if events, _ := s.Poll(now.Add(2 * KeyHoldDuration)); len(events) != 0 {
		t.Fatalf("released key emitted again: %+v", events)
	}
}

func TestPollArrowKeys(t *testing.T) {
	s := newStream()
	feed(s, "\x1b[D\x1b[C\x1b[A")
	events, _ := s.Poll(time.Unix(0, 0))

	want := []Event{
		{Action: MoveLeft, Down: true},
		{Action: MoveRight, Down: true},
		{Action: Fire, Down: true},
	}
	if len(events) != len(want) {
		t.Fatalf("events = %+v, want %+v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("event %d = %+v, want %+v", i, events[i], want[i])
		}
	}
}

func TestPollQuit(t *testing.T) {
	s := newStream()
	feed(s, "q")
	if _, quit := s.Poll(time.Unix(0, 0)); !quit {
		t.Fatal("q should quit")
	}

	closed := newStream()
	close(closed.ch)
	if _, quit := closed.Poll(time.Unix(0, 0)); !quit {
		t.Fatal("closed reader should quit")
	}
}

func TestFromKeyCode(t *testing.T) {
	cases := map[int]Action{
		KeySpace:      Fire,
		KeyArrowUp:    Fire,
		KeyA:          MoveLeft,
		KeyArrowRight: MoveRight,
		KeyP:          Pause,
	}
	for code, want := range cases {
		got, ok := FromKeyCode(code)
		if !ok || got != want {
			t.Fatalf("FromKeyCode(%d) = %v %v, want %v", code, got, ok, want)
		}
	}
	if _, ok := FromKeyCode(13); ok {
		t.Fatal("enter should not map to an action")
	}
}
