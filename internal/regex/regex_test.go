package regex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPullNumber(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://github.com/acme/api/pull/42", "42"},
		{"https://api.github.com/repos/acme/api/pulls/7", "7"},
		{"https://github.com/acme/api/issues/3", ""},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			m := PullNumber.FindStringSubmatch(tt.url)
			if tt.want == "" {
				assert.Nil(t, m)
				return
			}
			assert.Equal(t, tt.want, m[1])
		})
	}
}

func TestTitleLine(t *testing.T) {
	t.Run("should treat the title literally", func(t *testing.T) {
		re := TitleLine("Fix (crash) on save?")
		assert.True(t, re.MatchString("intro\nFix (crash) on save?\nrest"))
		assert.False(t, re.MatchString("Fix crash on save"))
	})
}

func TestProjectValuePatterns(t *testing.T) {
	assert.True(t, ISODate.MatchString("2024-05-01"))
	assert.False(t, ISODate.MatchString("2024-5-1"))
	assert.True(t, SingleSelectID.MatchString("PVTSSOO_abc"))
	assert.True(t, IterationOptionID.MatchString("PVTIO_abc"))
}

func TestRepoSlug(t *testing.T) {
	assert.True(t, RepoSlug.MatchString("acme/api.go"))
	assert.False(t, RepoSlug.MatchString("acme"))
	assert.False(t, RepoSlug.MatchString("acme/api/extra"))
}
