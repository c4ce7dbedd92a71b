package webhook

// Embed colors used by the notification types
const (
	ColorGreen  = 0x2ecc71
	ColorRed    = 0xe74c3c
	ColorOrange = 0xf39c12
	ColorBlue   = 0x3498db
	ColorPurple = 0x9b59b6
)

// Message is the webhook POST body
type Message struct {
	Embeds []Embed `json:"embeds"`
}

// Embed is one rich message block in the sink's schema
type Embed struct {
	Title       string  `json:"title,omitempty"`
	URL         string  `json:"url,omitempty"`
	Description string  `json:"description,omitempty"`
	Color       int     `json:"color"`
	Timestamp   string  `json:"timestamp,omitempty"`
	Author      *Author `json:"author,omitempty"`
	Footer      *Footer `json:"footer,omitempty"`
	Fields      []Field `json:"fields,omitempty"`
}

// Author is the optional attribution line at the top of an embed
type Author struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// Footer is the small text at the bottom of an embed
type Footer struct {
	Text string `json:"text"`
}

// Field is a titled key/value block inside an embed
type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}
