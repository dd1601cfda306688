package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTranslations(t *testing.T) {
	t.Run("should load the embedded English messages", func(t *testing.T) {
		trans, err := NewTranslations("en")

		require.NoError(t, err)
		assert.Equal(t, "Please provide a message.", trans.GetMessage("chat.empty_message", 0, nil))
	})

	t.Run("should fail with empty language", func(t *testing.T) {
		trans, err := NewTranslations("")

		assert.Error(t, err)
		assert.Nil(t, trans)
	})

	t.Run("should fail with an unknown language", func(t *testing.T) {
		_, err := NewTranslations("xx")
		assert.Error(t, err)
	})
}

func TestSetLanguage(t *testing.T) {
	trans, err := NewTranslations("en")
	require.NoError(t, err)

	require.NoError(t, trans.SetLanguage("es"))
	assert.Equal(t, "Avisame si querés ajustar algo.", trans.GetMessage("chat.follow_up_failed", 0, nil))

	assert.Error(t, trans.SetLanguage("de"))
}

func TestGetMessage(t *testing.T) {
	trans, err := NewTranslations("en")
	require.NoError(t, err)

	t.Run("should render template data", func(t *testing.T) {
		msg := trans.GetMessage("server_listening", 0, map[string]interface{}{"Port": 8000})
		assert.Equal(t, "Dashboard available at http://localhost:8000", msg)
	})

	t.Run("should flag missing messages", func(t *testing.T) {
		assert.Equal(t, "Translation missing: nope", trans.GetMessage("nope", 0, nil))
	})
}
