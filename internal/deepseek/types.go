package deepseek

// Message is a single chat message. Content is either a plain string or a
// slice of ContentPart for multimodal requests; the wire format accepts both.
type Message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// ContentPart is one element of a multimodal message.
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *MediaURL `json:"image_url,omitempty"`
	VideoURL *MediaURL `json:"video_url,omitempty"`
}

// MediaURL wraps a media reference for image_url/video_url content parts.
type MediaURL struct {
	URL string `json:"url"`
}

// SystemMessage builds a system-role message with plain text content.
func SystemMessage(text string) Message {
	return Message{Role: "system", Content: text}
}

// UserMessage builds a user-role message with plain text content.
func UserMessage(text string) Message {
	return Message{Role: "user", Content: text}
}

// UserImageMessage builds a user-role message carrying an instruction and an
// image reference.
func UserImageMessage(text, imageURL string) Message {
	return Message{
		Role: "user",
		Content: []ContentPart{
			{Type: "text", Text: text},
			{Type: "image_url", ImageURL: &MediaURL{URL: imageURL}},
		},
	}
}

// UserVideoMessage builds a user-role message carrying an instruction and a
// video reference.
func UserVideoMessage(text, videoURL string) Message {
	return Message{
		Role: "user",
		Content: []ContentPart{
			{Type: "text", Text: text},
			{Type: "video_url", VideoURL: &MediaURL{URL: videoURL}},
		},
	}
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
