package storage

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestMediaKey(t *testing.T) {
	id := uuid.New()
	key := MediaKey("images", id, "diagram.png")

	if !strings.HasPrefix(key, "images/"+id.String()+"/") {
		t.Errorf("key = %q, want images/%s/ prefix", key, id)
	}
	if !strings.HasSuffix(key, "_diagram.png") {
		t.Errorf("key = %q, want _diagram.png suffix", key)
	}
}

func TestMediaKeySanitizesFilename(t *testing.T) {
	id := uuid.New()
	key := MediaKey("slides", id, "Quarter Review (v2).PPTX")

	if !strings.HasSuffix(key, "_quarter-review-v2.pptx") {
		t.Errorf("key = %q, want slugged filename suffix", key)
	}
}

func TestNewReturnsNilWithoutCredentials(t *testing.T) {
	c, err := New("", "fsn1", "", "", "luma-media", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c != nil {
		t.Error("expected nil client when endpoint and credentials are empty")
	}
}

func TestFileURLAndExtractKey(t *testing.T) {
	c := &Client{
		bucket:    "luma-media",
		endpoint:  "https://s3.example.com",
		publicURL: "",
	}

	url := c.FileURL("images/abc/1_pic.png")
	want := "https://s3.example.com/luma-media/images/abc/1_pic.png"
	if url != want {
		t.Errorf("FileURL = %q, want %q", url, want)
	}

	key, ok := c.ExtractKey(url)
	if !ok || key != "images/abc/1_pic.png" {
		t.Errorf("ExtractKey = %q, %v", key, ok)
	}

	if _, ok := c.ExtractKey("https://elsewhere.example.com/x.png"); ok {
		t.Error("ExtractKey matched a foreign URL")
	}
}

func TestFileURLPrefersPublicURL(t *testing.T) {
	c := &Client{
		bucket:    "luma-media",
		endpoint:  "https://s3.example.com",
		publicURL: "https://cdn.example.com",
	}

	url := c.FileURL("videos/v/1_intro.mp4")
	if url != "https://cdn.example.com/videos/v/1_intro.mp4" {
		t.Errorf("FileURL = %q", url)
	}

	key, ok := c.ExtractKey(url)
	if !ok || key != "videos/v/1_intro.mp4" {
		t.Errorf("ExtractKey = %q, %v", key, ok)
	}
}
