package chat

import (
	"context"

	"github.com/sashabaranov/go-openai"
)

// Completer sends one conversation to a chat-completion endpoint and returns
// the text of the first choice.
type Completer interface {
	CompleteChat(ctx context.Context, req Request) (string, error)
}

// Request is a single chat-completion call.
type Request struct {
	// Messages are sent in order; the system message goes first.
	Messages []openai.ChatCompletionMessage
	// Model falls back to the configured default when empty.
	Model string
	// ResponseFormat is forwarded untouched when set.
	ResponseFormat *openai.ChatCompletionResponseFormat
}

// HasImage reports whether any message carries an image part.
func (r Request) HasImage() bool {
	for _, msg := range r.Messages {
		for _, part := range msg.MultiContent {
			if part.Type == openai.ChatMessagePartTypeImageURL && part.ImageURL != nil {
				return true
			}
		}
	}
	return false
}

// SystemMessage builds a plain-text system message.
func SystemMessage(text string) openai.ChatCompletionMessage {
	return openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: text,
	}
}

// UserMessage builds a plain-text user message.
func UserMessage(text string) openai.ChatCompletionMessage {
	return openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: text,
	}
}

// UserImageMessage builds a user message with a text part followed by an
// image reference part.
func UserImageMessage(text, imageURL string) openai.ChatCompletionMessage {
	return openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleUser,
		MultiContent: []openai.ChatMessagePart{
			{
				Type: openai.ChatMessagePartTypeText,
				Text: text,
			},
			{
				Type:     openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{URL: imageURL},
			},
		},
	}
}
