package export

import (
	"fmt"
	"strings"

	"github.com/handiism/itunes-search/internal/model"
)

// PlaylistCreator generates preview playlists from a result set.
//
// Only records with a preview URL are listed; the entries point at the
// remote previews, so the playlist can be opened by any network-capable
// player.
//
// Example:
//
//	creator := NewPlaylistCreator(FormatM3U, true)
//	content := creator.CreatePlaylist(results)
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:30,Air - Sexy Boy
//	// https://audio.example.com/sexy-boy.m4a
type PlaylistCreator struct {
	format   Format
	extended bool // For M3U: include EXTINF lines with duration/title
}

// NewPlaylistCreator creates a new PlaylistCreator.
//
// extended only affects FormatM3U.
func NewPlaylistCreator(format Format, extended bool) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
	}
}

// CreatePlaylist generates playlist content for a result set.
func (p *PlaylistCreator) CreatePlaylist(rs *model.ResultSet) string {
	entries := playable(rs)

	switch p.format {
	case FormatPLS:
		return p.createPLS(entries)
	case FormatWPL:
		return p.createWPL(entries)
	default:
		return p.createM3U(entries)
	}
}

func playable(rs *model.ResultSet) []model.Record {
	var entries []model.Record
	for i := 0; i < rs.Len(); i++ {
		if rs.Results[i].Preview() != "" {
			entries = append(entries, rs.Results[i])
		}
	}
	return entries
}

// createM3U generates an M3U playlist.
//
// Extended M3U format (when extended=true):
//
//	#EXTM3U
//	#EXTINF:30,Artist - Title
//	https://.../preview.m4a
func (p *PlaylistCreator) createM3U(entries []model.Record) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, rec := range entries {
		if p.extended {
			sb.WriteString(fmt.Sprintf("#EXTINF:%d,%s - %s\n", rec.DurationSeconds(), rec.Artist(), rec.Title()))
		}
		sb.WriteString(rec.Preview() + "\n")
	}

	return sb.String()
}

// createPLS generates a PLS playlist.
//
//	[playlist]
//	File1=https://.../preview.m4a
//	Title1=Artist - Title
//	Length1=30
//	NumberOfEntries=1
//	Version=2
func (p *PlaylistCreator) createPLS(entries []model.Record) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, rec := range entries {
		idx := i + 1
		sb.WriteString(fmt.Sprintf("File%d=%s\n", idx, rec.Preview()))
		sb.WriteString(fmt.Sprintf("Title%d=%s - %s\n", idx, rec.Artist(), rec.Title()))
		sb.WriteString(fmt.Sprintf("Length%d=%d\n", idx, rec.DurationSeconds()))
	}

	sb.WriteString(fmt.Sprintf("NumberOfEntries=%d\n", len(entries)))
	sb.WriteString("Version=2\n")

	return sb.String()
}

// createWPL generates a Windows Media Player playlist.
func (p *PlaylistCreator) createWPL(entries []model.Record) string {
	var sb strings.Builder

	sb.WriteString("<?wpl version=\"1.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString("    <title>Search results</title>\n")
	sb.WriteString(fmt.Sprintf("    <meta name=\"ItemCount\" content=\"%d\"/>\n", len(entries)))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, rec := range entries {
		sb.WriteString(fmt.Sprintf("      <media src=\"%s\"/>\n", escapeXML(rec.Preview())))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// escapeXML escapes special XML characters in a string.
//
// Replaces: & < > " '
// With:     &amp; &lt; &gt; &quot; &apos;
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
