package main

import (
	"strings"
	"testing"
)

func TestVisibleLen(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"\x1b[1;31mred\x1b[0m", 3},
		{"▸ │", 3},
	}
	for _, tt := range tests {
		if got := visibleLen(tt.in); got != tt.want {
			t.Errorf("visibleLen(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestOverlayAt(t *testing.T) {
	bg := strings.Join([]string{"..........", "..........", ".........."}, "\n")
	got := overlayAt(bg, "ab\ncd", 3, 1)
	want := strings.Join([]string{"..........", "...ab.....", "...cd....."}, "\n")
	if got != want {
		t.Errorf("overlayAt:\n%s\nwant:\n%s", got, want)
	}

	// escape sequences in the background do not take up columns
	got = spliceLineAt("\x1b[1m....\x1b[0m....", "XY", 2)
	if visibleLen(got) != 8 || !strings.Contains(got, "..XY") {
		t.Errorf("spliceLineAt kept %q", got)
	}

	// short lines are padded out to the overlay column
	if got := spliceLineAt("..", "X", 4); got != "..  X" {
		t.Errorf("spliceLineAt padding = %q", got)
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		cursor, total, size int
		start, end          int
	}{
		{0, 5, 10, 0, 5},
		{0, 20, 10, 0, 10},
		{8, 20, 10, 4, 14},
		{19, 20, 10, 10, 20},
	}
	for _, tt := range tests {
		start, end := window(tt.cursor, tt.total, tt.size)
		if start != tt.start || end != tt.end {
			t.Errorf("window(%d, %d, %d) = [%d, %d), want [%d, %d)", tt.cursor, tt.total, tt.size, start, end, tt.start, tt.end)
		}
		if tt.cursor < start || tt.cursor >= end {
			t.Errorf("cursor %d outside [%d, %d)", tt.cursor, start, end)
		}
	}
}
