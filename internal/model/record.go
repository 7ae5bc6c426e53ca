package model

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Missing is the placeholder shown for a field that is absent from a record.
//
// Search results are heterogeneous: an album ("collection") result has no
// trackName or trackPrice, an artist result has almost nothing but the
// artist name. Every accessor on Record returns Missing for such gaps
// instead of failing, so a row is always renderable.
const Missing = "-"

// Record is one catalog item returned by the search API (a track, album,
// music video, ...).
//
// Every modelled field is optional and decoded into a pointer, so an absent
// field can be told apart from an empty one. Numbers are kept as json.Number
// to preserve their native textual representation ("1.29", "10", "-1").
//
// A Record decoded from JSON remembers its original bytes. Marshalling such a
// record writes those bytes back unchanged, which keeps fields this client
// does not model (artwork URLs, IDs, explicitness flags, ...) intact on export.
//
// Example:
//
//	var r model.Record
//	_ = json.Unmarshal(data, &r)
//	fmt.Println(r.Artist(), r.Title(), r.ReleaseDate())
//	// Daft Punk  One More Time  2000-11-30
type Record struct {
	WrapperType      *string      `json:"wrapperType,omitempty"`
	Kind             *string      `json:"kind,omitempty"`
	ArtistName       *string      `json:"artistName,omitempty"`
	CollectionName   *string      `json:"collectionName,omitempty"`
	TrackName        *string      `json:"trackName,omitempty"`
	ReleaseDate      *string      `json:"releaseDate,omitempty"`
	CollectionPrice  *json.Number `json:"collectionPrice,omitempty"`
	TrackPrice       *json.Number `json:"trackPrice,omitempty"`
	TrackNumber      *json.Number `json:"trackNumber,omitempty"`
	TrackCount       *json.Number `json:"trackCount,omitempty"`
	TrackTimeMillis  *json.Number `json:"trackTimeMillis,omitempty"`
	Currency         *string      `json:"currency,omitempty"`
	PrimaryGenreName *string      `json:"primaryGenreName,omitempty"`
	PreviewURL       *string      `json:"previewUrl,omitempty"`
	TrackViewURL     *string      `json:"trackViewUrl,omitempty"`

	raw json.RawMessage
}

// recordFields avoids recursion in the custom (un)marshallers.
type recordFields Record

// UnmarshalJSON decodes the modelled fields and keeps a copy of data.
func (r *Record) UnmarshalJSON(data []byte) error {
	var fields recordFields
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return err
	}

	*r = Record(fields)
	r.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON writes the original bytes when the record came from JSON,
// otherwise the modelled fields.
func (r Record) MarshalJSON() ([]byte, error) {
	if len(r.raw) > 0 {
		return r.raw, nil
	}
	return json.Marshal(recordFields(r))
}

// Artist returns the artistName field.
func (r Record) Artist() string { return str(r.ArtistName) }

// Title returns the trackName field.
func (r Record) Title() string { return str(r.TrackName) }

// Collection returns the collectionName field.
func (r Record) Collection() string { return str(r.CollectionName) }

// CollectionPriceText returns collectionPrice in its native representation.
func (r Record) CollectionPriceText() string { return num(r.CollectionPrice) }

// TrackPriceText returns trackPrice in its native representation.
func (r Record) TrackPriceText() string { return num(r.TrackPrice) }

// TrackNumberText returns trackNumber in its native representation.
func (r Record) TrackNumberText() string { return num(r.TrackNumber) }

// TrackCountText returns trackCount in its native representation.
func (r Record) TrackCountText() string { return num(r.TrackCount) }

// KindText returns the kind field ("song", "music-video", ...).
func (r Record) KindText() string { return str(r.Kind) }

// Genre returns the primaryGenreName field.
func (r Record) Genre() string { return str(r.PrimaryGenreName) }

// ReleaseDateText returns the release date with the time portion removed.
func (r Record) ReleaseDateText() string {
	if r.ReleaseDate == nil {
		return Missing
	}
	return NormalizeDate(*r.ReleaseDate)
}

// DurationSeconds returns trackTimeMillis in whole seconds, or -1 if unknown.
//
// -1 is the conventional "unknown length" value in extended M3U playlists.
func (r Record) DurationSeconds() int {
	if r.TrackTimeMillis == nil {
		return -1
	}
	ms, err := r.TrackTimeMillis.Int64()
	if err != nil {
		f, ferr := r.TrackTimeMillis.Float64()
		if ferr != nil {
			return -1
		}
		ms = int64(f)
	}
	return int(ms / 1000)
}

// Preview returns the preview URL, or "" when the record has none.
func (r Record) Preview() string {
	if r.PreviewURL == nil {
		return ""
	}
	return *r.PreviewURL
}

// NormalizeDate reduces an ISO-8601 timestamp to its date portion.
//
// The value is split on the first "T" and the first segment is kept:
//
//	NormalizeDate("2001-05-15T00:00:00Z") // "2001-05-15"
//	NormalizeDate("2001-05-15")           // "2001-05-15"
func NormalizeDate(date string) string {
	before, _, _ := strings.Cut(date, "T")
	return before
}

func str(s *string) string {
	if s == nil {
		return Missing
	}
	return *s
}

func num(n *json.Number) string {
	if n == nil {
		return Missing
	}
	return n.String()
}
