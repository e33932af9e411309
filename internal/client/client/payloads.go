package client

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/textdesk/internal/client/models"
)

type generateRequest struct {
	InputTexts []string `json:"input_texts"`
}

type generateResponse struct {
	Choices []choice `json:"choices" validate:"required,min=1"`
}

type choice struct {
	Text *string `json:"text" validate:"required"`
}

type translateRequest struct {
	InputTexts []string        `json:"input_texts"`
	SrcLang    models.Language `json:"src_lang"`
	TgtLang    models.Language `json:"tgt_lang"`
}

type resizeRequest struct {
	Base64Image string          `json:"base64_image"`
	Ratio       json.RawMessage `json:"ratio"`
	Quality     json.RawMessage `json:"quality"`
}

type resizeResponse struct {
	ResizedImage string `json:"resized_image" validate:"required,base64"`
}

// formNumber sends numeric form text as a JSON number and anything else as
// the raw string.
func formNumber(s string) json.RawMessage {
	t := strings.TrimSpace(s)
	if _, err := strconv.ParseFloat(t, 64); err == nil && json.Valid([]byte(t)) {
		return json.RawMessage(t)
	}
	b, _ := json.Marshal(s)
	return b
}
