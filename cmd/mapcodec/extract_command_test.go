package main

import "testing"

func TestAudioSuffix(t *testing.T) {
	if got := audioSuffix(""); got != "audio" {
		t.Errorf("expected neutral suffix without extension, got %q", got)
	}
	if got := audioSuffix("mp3"); got != "audio.mp3" {
		t.Errorf("expected extension kept, got %q", got)
	}
}
