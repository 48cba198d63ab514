package main

import (
	"testing"
	"time"
)

func TestGameTrackerRejectsAfterClose(t *testing.T) {
	g := &gameTracker{}
	if !g.add() {
		t.Fatal("open tracker should admit a game")
	}

	closed := make(chan struct{})
	go func() {
		g.close()
		close(closed)
	}()

	select {
	case <-closed:
		t.Fatal("close returned while a game was still running")
	case <-time.After(20 * time.Millisecond):
	}

	g.done()
	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("close did not return after the last game finished")
	}

	if g.add() {
		t.Fatal("closed tracker should not admit new games")
	}
}

func TestSizeTrackerUpdate(t *testing.T) {
	s := newSizeTracker(80, 24)
	s.update(120, 40)
	w, h, err := s.getSize()
	if err != nil || w != 120 || h != 40 {
		t.Fatalf("getSize = %d, %d, %v; want 120, 40, nil", w, h, err)
	}
}
