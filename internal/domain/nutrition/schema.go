package nutrition

import (
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/sashabaranov/go-openai"
)

// Response format modes, matching CHAT_RESPONSE_FORMAT.
const (
	FormatNone       = ""
	FormatJSONObject = "json_object"
	FormatJSONSchema = "json_schema"
)

// responseFormat builds the structured-output hint for mode. For json_schema
// the schema is reflected from v.
func responseFormat(mode, name string, v any) (*openai.ChatCompletionResponseFormat, error) {
	switch mode {
	case FormatNone:
		return nil, nil
	case FormatJSONObject:
		return &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}, nil
	case FormatJSONSchema:
		reflector := &jsonschema.Reflector{
			DoNotReference: true,
			ExpandedStruct: true,
		}
		schema := reflector.Reflect(v)
		schema.Version = ""
		return &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   name,
				Schema: schema,
			},
		}, nil
	default:
		return nil, fmt.Errorf("unsupported response format %q", mode)
	}
}
