package messenger

// Event is the top-level webhook delivery envelope.
type Event struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

// Entry groups the messaging events delivered for one page.
type Entry struct {
	ID        string           `json:"id"`
	Time      int64            `json:"time"`
	Messaging []MessagingEvent `json:"messaging"`
}

// MessagingEvent is a single sender-scoped event inside an entry.
type MessagingEvent struct {
	Sender    *Principal       `json:"sender,omitempty"`
	Recipient *Principal       `json:"recipient,omitempty"`
	Timestamp int64            `json:"timestamp"`
	Message   *ReceivedMessage `json:"message,omitempty"`
}

// Principal identifies a page-scoped user or page.
type Principal struct {
	ID string `json:"id"`
}

// ReceivedMessage is the inbound message payload of a messaging event.
type ReceivedMessage struct {
	MID         string       `json:"mid"`
	Text        string       `json:"text,omitempty"`
	IsEcho      bool         `json:"is_echo,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// SendRequest is the payload for the Graph Send API.
type SendRequest struct {
	Recipient Principal   `json:"recipient"`
	Message   SendMessage `json:"message"`
}

// SendMessage carries either plain text or a structured attachment.
type SendMessage struct {
	Text       string      `json:"text,omitempty"`
	Attachment *Attachment `json:"attachment,omitempty"`
}

// Attachment is a structured message part (template, image, ...).
type Attachment struct {
	Type    string           `json:"type"`
	Payload *TemplatePayload `json:"payload,omitempty"`
}

// TemplatePayload describes a generic or list template.
type TemplatePayload struct {
	TemplateType string    `json:"template_type"`
	Elements     []Element `json:"elements,omitempty"`
	Buttons      []Button  `json:"buttons,omitempty"`
}

// Element is a single card inside a template.
type Element struct {
	Title         string   `json:"title"`
	Subtitle      string   `json:"subtitle,omitempty"`
	ImageURL      string   `json:"image_url,omitempty"`
	ItemURL       string   `json:"item_url,omitempty"`
	DefaultAction *Button  `json:"default_action,omitempty"`
	Buttons       []Button `json:"buttons,omitempty"`
}

// Button is a template call-to-action.
type Button struct {
	Type               string `json:"type,omitempty"`
	Title              string `json:"title,omitempty"`
	URL                string `json:"url,omitempty"`
	WebviewHeightRatio string `json:"webview_height_ratio,omitempty"`
}

// APIResponse is the Graph Send API response body.
type APIResponse struct {
	RecipientID string    `json:"recipient_id,omitempty"`
	MessageID   string    `json:"message_id,omitempty"`
	Error       *APIError `json:"error,omitempty"`
}

// APIError is a delivery error reported by the Graph API, as opposed to a
// transport failure reaching it.
type APIError struct {
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
	Code    int    `json:"code,omitempty"`
}

func (e *APIError) Error() string {
	return "messenger: send API error: " + e.Message
}
