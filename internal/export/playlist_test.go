package export

import (
	"strings"
	"testing"

	"github.com/handiism/itunes-search/internal/model"
)

func TestPlaylistCreator_M3U(t *testing.T) {
	content := NewPlaylistCreator(FormatM3U, false).CreatePlaylist(syntheticSet(2))

	if strings.Contains(content, "#EXTM3U") {
		t.Error("plain M3U should not contain #EXTM3U")
	}
	if !strings.Contains(content, "https://audio.example.com/1.m4a\n") {
		t.Errorf("M3U should contain preview URL:\n%s", content)
	}
}

func TestPlaylistCreator_M3UExtended(t *testing.T) {
	content := NewPlaylistCreator(FormatM3U, true).CreatePlaylist(syntheticSet(1))

	if !strings.HasPrefix(content, "#EXTM3U") {
		t.Error("Extended M3U should start with #EXTM3U")
	}
	if !strings.Contains(content, "#EXTINF:30,Artist 1 - Track 1\n") {
		t.Errorf("Extended M3U should contain #EXTINF:\n%s", content)
	}
}

func TestPlaylistCreator_PLS(t *testing.T) {
	content := NewPlaylistCreator(FormatPLS, false).CreatePlaylist(syntheticSet(2))

	if !strings.HasPrefix(content, "[playlist]") {
		t.Error("PLS should start with [playlist]")
	}
	if !strings.Contains(content, "File2=https://audio.example.com/2.m4a") {
		t.Error("PLS should contain File2=")
	}
	if !strings.Contains(content, "NumberOfEntries=2") {
		t.Error("PLS should contain NumberOfEntries=2")
	}
}

func TestPlaylistCreator_WPL(t *testing.T) {
	rs := syntheticSet(1)
	rs.Results[0].PreviewURL = ptr("https://audio.example.com/a?b=1&c=2")

	content := NewPlaylistCreator(FormatWPL, false).CreatePlaylist(rs)

	if !strings.Contains(content, "<?wpl") {
		t.Error("WPL should contain XML declaration")
	}
	if !strings.Contains(content, `<media src="https://audio.example.com/a?b=1&amp;c=2"/>`) {
		t.Errorf("WPL should escape media src:\n%s", content)
	}
}

func TestPlaylistCreator_SkipsRecordsWithoutPreview(t *testing.T) {
	rs := syntheticSet(3)
	rs.Results[1].PreviewURL = nil

	content := NewPlaylistCreator(FormatPLS, false).CreatePlaylist(rs)
	if !strings.Contains(content, "NumberOfEntries=2") {
		t.Errorf("record without preview should be skipped:\n%s", content)
	}
}

func TestPlaylistCreator_Empty(t *testing.T) {
	content := NewPlaylistCreator(FormatM3U, true).CreatePlaylist(model.NewResultSet(nil))
	if content != "#EXTM3U\n" {
		t.Errorf("empty playlist = %q", content)
	}
}

func TestEscapeXML(t *testing.T) {
	if got := escapeXML(`<a & "b" 'c'>`); got != "&lt;a &amp; &quot;b&quot; &apos;c&apos;&gt;" {
		t.Errorf("escapeXML() = %q", got)
	}
}
