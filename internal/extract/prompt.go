package extract

import "fmt"

// systemPrompt frames every extraction request. The reply contract (bare
// JSON, no commentary) is what ParseCandidate relies on.
const systemPrompt = "You are an information extraction assistant specialized in " +
	"identifying places and foods from short-video content."

const replySchema = `Return a single JSON object with these fields:
{
  "place_name": "name of the place",
  "address": "street address (if any)",
  "city": "city",
  "province": "province",
  "foods": [
    {
      "name": "food name",
      "description": "food description",
      "tags": ["tag1", "tag2"]
    }
  ]
}

Leave fields as empty strings or empty arrays when the information is not present.
Return only the JSON, no other text.`

// textPrompt builds the extraction instruction for the text strategy.
func textPrompt(title, description string) string {
	return fmt.Sprintf(`Extract the place and food information from this video's metadata.

Title: %s
Description: %s

%s`, title, description, replySchema)
}

// imagePrompt instructs the vision model to read the cover image.
func imagePrompt() string {
	return "Extract the place and food information visible in this video cover image.\n\n" + replySchema
}

// videoPrompt instructs the video model to analyze the clip itself.
func videoPrompt() string {
	return "Watch this video and extract the place and food information it features.\n\n" + replySchema
}
