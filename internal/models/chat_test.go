package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatResultJSON(t *testing.T) {
	t.Run("should render a ready result", func(t *testing.T) {
		var issue IssueDraft
		issue.SetTitle("Add dark mode")
		issue.SetLabels([]string{"ui"})

		assert.JSONEq(t,
			`{"status":"ready","issue_data":{"title":"Add dark mode","labels":["ui"]}}`,
			mustJSON(t, ReadyResult(issue)))
	})

	t.Run("should render a continue result with tool calls", func(t *testing.T) {
		var preview IssueDraft
		preview.SetTitle("T")
		calls := []ToolCall{{ID: "call_1", Name: ToolUpdatePreview, Arguments: `{"title":"T"}`}}

		assert.JSONEq(t, `{
			"status":"continue",
			"message":"Anything else?",
			"preview_data":{"title":"T"},
			"tool_calls":[{"id":"call_1","type":"function","function":{"name":"update_preview","arguments":"{\"title\":\"T\"}"}}]
		}`, mustJSON(t, ContinueResult("Anything else?", preview, calls)))
	})

	t.Run("should always render tool_calls as a list", func(t *testing.T) {
		assert.Contains(t, mustJSON(t, ContinueResult("hi", EmptyDraft(), nil)), `"tool_calls":[]`)
	})

	t.Run("should render the validation error", func(t *testing.T) {
		assert.JSONEq(t, `{"status":"error","message":"Please provide a message."}`,
			mustJSON(t, ErrorResult("Please provide a message.")))
	})
}

func TestChatRequestDecoding(t *testing.T) {
	var req ChatRequest
	body := `{
		"conversation_history":[{"role":"user","content":"hi"},{"role":"assistant","content":"hello"}],
		"message":"add a title",
		"current_preview_data":{"body":"B"}
	}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	assert.Len(t, req.ConversationHistory, 2)
	assert.Equal(t, RoleAssistant, req.ConversationHistory[1].Role)
	require.NotNil(t, req.CurrentPreviewData)
	assert.Equal(t, []string{"body"}, req.CurrentPreviewData.Keys())
}

func TestItemID(t *testing.T) {
	t.Run("should round trip numbers as numbers", func(t *testing.T) {
		var ids []ItemID
		require.NoError(t, json.Unmarshal([]byte(`[123, "abc", 9007199254740993]`), &ids))

		assert.Equal(t, "123", ids[0].String())
		assert.Equal(t, `[123,"abc",9007199254740993]`, mustJSON(t, ids))
	})

	t.Run("should build integer ids like NumericID and keep other numbers verbatim", func(t *testing.T) {
		var ids []ItemID
		require.NoError(t, json.Unmarshal([]byte(`[42, 1.5, 1e3]`), &ids))

		assert.Equal(t, NumericID(42), ids[0])
		assert.Equal(t, `[42,1.5,1e3]`, mustJSON(t, ids))
	})

	t.Run("should treat null as zero", func(t *testing.T) {
		var id ItemID
		require.NoError(t, json.Unmarshal([]byte(`null`), &id))
		assert.True(t, id.IsZero())
	})

	t.Run("should reject objects", func(t *testing.T) {
		var id ItemID
		assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &id))
	})

	assert.Equal(t, `42`, mustJSON(t, NumericID(42)))
	assert.Equal(t, `"x"`, mustJSON(t, StringID("x")))
}
