package models

// Recording is the normalized descriptor for a stored audio or video
// recording. It is the only shape that crosses the resolver boundary;
// whichever backing table matched, callers see this.
type Recording struct {
	ID          string
	RecordingID string
	ShortID     string
	Title       string
	FileURL     string
	Duration    float64
	FileSize    int64
	MimeType    string
	IsVideo     bool
	CreatedAt   string

	// Personalization, present only on rows that carry it.
	CustomerName         string
	ProductName          string
	SenderName           string
	Occasion             string
	CustomMessage        string
	HasVirtualBackground bool
	BackgroundName       string
}

// DefaultTitle is used when neither a product nor a customer name is stored.
const DefaultTitle = "Voice Message"

// PublicRecording is the JSON shape exposed by the playback endpoint.
type PublicRecording struct {
	ID                   string  `json:"id"`
	RecordingID          string  `json:"recordingId,omitempty"`
	ShortID              string  `json:"shortId"`
	Title                string  `json:"title"`
	FileURL              string  `json:"fileUrl"`
	Duration             float64 `json:"duration"`
	FileSize             int64   `json:"fileSize"`
	MimeType             string  `json:"mimeType"`
	IsVideo              bool    `json:"isVideo"`
	CreatedAt            string  `json:"createdAt"`
	CustomerName         string  `json:"customerName,omitempty"`
	ProductName          string  `json:"productName,omitempty"`
	SenderName           string  `json:"senderName,omitempty"`
	Occasion             string  `json:"occasion,omitempty"`
	CustomMessage        string  `json:"customMessage,omitempty"`
	HasVirtualBackground bool    `json:"hasVirtualBackground,omitempty"`
	BackgroundName       string  `json:"backgroundName,omitempty"`
}

// Public converts the internal descriptor into its response representation.
func (r Recording) Public() PublicRecording {
	return PublicRecording{
		ID:                   r.ID,
		RecordingID:          r.RecordingID,
		ShortID:              r.ShortID,
		Title:                r.Title,
		FileURL:              r.FileURL,
		Duration:             r.Duration,
		FileSize:             r.FileSize,
		MimeType:             r.MimeType,
		IsVideo:              r.IsVideo,
		CreatedAt:            r.CreatedAt,
		CustomerName:         r.CustomerName,
		ProductName:          r.ProductName,
		SenderName:           r.SenderName,
		Occasion:             r.Occasion,
		CustomMessage:        r.CustomMessage,
		HasVirtualBackground: r.HasVirtualBackground,
		BackgroundName:       r.BackgroundName,
	}
}
