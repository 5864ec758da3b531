package history

import (
	"ai-schemadesign-be/internal/constant"
	"ai-schemadesign-be/internal/entity"
	"ai-schemadesign-be/pkg/llm"
)

// maxTurns caps how much conversation is re-sent to the model. Diagram
// documents make turns heavy, so the window stays small.
const maxTurns = 20

// Normalize converts stored conversation messages into the role/content
// shape the model expects. Pure function: nil history normalizes to an empty
// slice, order is preserved, diagram payloads are not re-sent as
// conversation content.
func Normalize(messages []entity.ConversationMessage) []llm.Message {
	if len(messages) > maxTurns {
		messages = messages[len(messages)-maxTurns:]
	}

	normalized := make([]llm.Message, 0, len(messages))
	for _, msg := range messages {
		role := llm.RoleUser
		if msg.Role == constant.ChatMessageRoleModel {
			role = llm.RoleModel
		}
		normalized = append(normalized, llm.Message{
			Role:    role,
			Content: msg.Text,
		})
	}
	return normalized
}
