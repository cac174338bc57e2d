package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock_JSONFence(t *testing.T) {
	input := "```json\n{\"decision\": \"accept\"}\n```"
	assert.Equal(t, `{"decision": "accept"}`, CleanJSONBlock(input))
}

func TestCleanJSONBlock_GenericFence(t *testing.T) {
	input := "```\n{\"decision\": \"reject\"}\n```"
	assert.Equal(t, `{"decision": "reject"}`, CleanJSONBlock(input))
}

func TestCleanJSONBlock_NoFence(t *testing.T) {
	input := `{"decision": "review"}`
	assert.Equal(t, input, CleanJSONBlock(input))
}

func TestExtractJSONObject_LeadingCommentary(t *testing.T) {
	input := "Here is my assessment:\n{\"confidence\": 85, \"nested\": {\"a\": 1}}\nHope this helps."
	assert.Equal(t, `{"confidence": 85, "nested": {"a": 1}}`, ExtractJSONObject(input))
}

func TestExtractJSONObject_BracesInsideStrings(t *testing.T) {
	input := `{"reasoning": ["uses {braces} in text"]}`
	assert.Equal(t, input, ExtractJSONObject(input))
}

func TestExtractJSONObject_Unbalanced(t *testing.T) {
	assert.Equal(t, "", ExtractJSONObject(`{"confidence": 85`))
	assert.Equal(t, "", ExtractJSONObject("no json here"))
}
