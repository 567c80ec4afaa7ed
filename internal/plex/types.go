package plex

// StreamType identifies the kind of track a Stream describes.
type StreamType int

// Stream type values used by the media server wire format.
const (
	StreamTypeVideo    StreamType = 1
	StreamTypeAudio    StreamType = 2
	StreamTypeSubtitle StreamType = 3
)

// TrackType selects which track kind an update call targets.
type TrackType string

const (
	TrackAudio    TrackType = "audio"
	TrackSubtitle TrackType = "subtitle"
)

// Valid reports whether t is a known track type.
func (t TrackType) Valid() bool {
	return t == TrackAudio || t == TrackSubtitle
}

// StreamType returns the wire stream type for this track type.
func (t TrackType) StreamType() StreamType {
	if t == TrackAudio {
		return StreamTypeAudio
	}
	return StreamTypeSubtitle
}

// Library is one library section on the server.
type Library struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Type  string `json:"type"` // "movie" or "show"
}

// Stream is one audio, video, or subtitle track of a media file part.
// Descriptive fields may be absent; the server sometimes reports the
// literal string "undefined" for missing values, which callers must
// treat the same as empty.
type Stream struct {
	ID           int64      `json:"id"`
	StreamType   StreamType `json:"streamType"`
	Codec        string     `json:"codec,omitempty"`
	Language     string     `json:"language,omitempty"`
	LanguageCode string     `json:"languageCode,omitempty"`
	Title        string     `json:"title,omitempty"`
	DisplayTitle string     `json:"displayTitle,omitempty"`
	Selected     bool       `json:"selected,omitempty"`
}

// DisplayName formats a stream for user-facing reports as
// "DisplayTitle - Title", falling back to whichever field is set.
func (s Stream) DisplayName() string {
	switch {
	case s.DisplayTitle != "" && s.Title != "":
		return s.DisplayTitle + " - " + s.Title
	case s.DisplayTitle != "":
		return s.DisplayTitle
	case s.Title != "":
		return s.Title
	default:
		return "Unknown"
	}
}

// Part is the file-level representation of a media item. Its ID is the
// handle update calls use to change the active streams.
type Part struct {
	ID     int64    `json:"id"`
	Key    string   `json:"key,omitempty"`
	File   string   `json:"file,omitempty"`
	Stream []Stream `json:"Stream,omitempty"`
}

// Media is one encoding of a media item, owning one or more parts.
type Media struct {
	ID   int64  `json:"id"`
	Part []Part `json:"Part,omitempty"`
}

// MediaItem is a playable unit (episode or movie) or a container
// (show or season). Listings return lightweight items without streams;
// Metadata returns the full form including parts and streams.
type MediaItem struct {
	RatingKey   string  `json:"ratingKey"`
	Key         string  `json:"key,omitempty"`
	Type        string  `json:"type"` // "movie", "show", "season", "episode"
	Title       string  `json:"title"`
	Index       int     `json:"index,omitempty"`       // episode or season number
	ParentIndex int     `json:"parentIndex,omitempty"` // season number on episodes
	Media       []Media `json:"Media,omitempty"`
}

// FirstPart returns the item's first file part, or nil when the item
// has not been fetched in full.
func (m *MediaItem) FirstPart() *Part {
	if m == nil || len(m.Media) == 0 || len(m.Media[0].Part) == 0 {
		return nil
	}
	return &m.Media[0].Part[0]
}

// HasStreams reports whether the item carries full track metadata.
// Listing endpoints return items without streams; those need a
// Metadata fetch before matching.
func (m *MediaItem) HasStreams() bool {
	p := m.FirstPart()
	return p != nil && len(p.Stream) > 0
}

// SelectedStream returns the currently active stream of the given type
// on the item's first part, or nil when none is selected.
func (m *MediaItem) SelectedStream(st StreamType) *Stream {
	p := m.FirstPart()
	if p == nil {
		return nil
	}
	for i := range p.Stream {
		if p.Stream[i].StreamType == st && p.Stream[i].Selected {
			return &p.Stream[i]
		}
	}
	return nil
}

// Identity describes a media server instance.
type Identity struct {
	MachineIdentifier string `json:"machineIdentifier"`
	Version           string `json:"version"`
}

// mediaContainer is the envelope every server response is wrapped in.
// Directory carries libraries, Metadata carries items.
type mediaContainer struct {
	MediaContainer struct {
		Size              int         `json:"size"`
		MachineIdentifier string      `json:"machineIdentifier,omitempty"`
		Version           string      `json:"version,omitempty"`
		Directory         []Library   `json:"Directory,omitempty"`
		Metadata          []MediaItem `json:"Metadata,omitempty"`
	} `json:"MediaContainer"`
}
