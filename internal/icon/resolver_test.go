package icon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSpecs() []Spec {
	return []Spec{
		{Match: "class=*.slack.com", Icon: "S"},
		{Match: "class=Firefox", Icon: "F"},
		{Match: "name=mutt", Icon: "M"},
		{Match: "URxvt", Icon: "U"},
		{Match: "*", Icon: "?"},
	}
}

func TestResolver_FirstMatchWins(t *testing.T) {
	r, err := NewResolver(testSpecs())
	require.NoError(t, err)

	tests := []struct {
		name  string
		attrs Attrs
		want  string
	}{
		{"glob class", Attrs{"class": "app.slack.com", "name": "general"}, "S"},
		{"exact class", Attrs{"class": "Firefox", "name": "mutt"}, "F"},
		{"name rule", Attrs{"class": "URxvt", "name": "mutt"}, "M"},
		{"bare pattern matches class", Attrs{"class": "URxvt", "name": "zsh"}, "U"},
		{"fallback", Attrs{"class": "Gimp", "name": "image"}, "?"},
		{"missing attrs fall back", Attrs{}, "?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.attrs))
		})
	}
}

func TestNewResolver_RequiresFallback(t *testing.T) {
	_, err := NewResolver([]Spec{{Match: "class=Firefox", Icon: "F"}})
	assert.ErrorIs(t, err, ErrNoFallback)

	_, err = NewResolver(nil)
	assert.ErrorIs(t, err, ErrNoFallback)
}

func TestNewResolver_InvalidRule(t *testing.T) {
	_, err := NewResolver([]Spec{
		{Match: "class=", Icon: "x"},
		{Match: "*", Icon: "?"},
	})
	assert.Error(t, err)

	_, err = NewResolver([]Spec{
		{Match: "class=[", Icon: "x"},
		{Match: "*", Icon: "?"},
	})
	assert.Error(t, err)
}

func TestResolver_WildcardSpansSlashes(t *testing.T) {
	r, err := NewResolver([]Spec{
		{Match: "name=*vim*", Icon: "V"},
		{Match: "name=?/notes", Icon: "N"},
		{Match: "*", Icon: "F"},
	})
	require.NoError(t, err)

	assert.Equal(t, "V", r.Resolve(Attrs{"class": "URxvt", "name": "~/src/main.go - vim"}))
	assert.Equal(t, "V", r.Resolve(Attrs{"class": "URxvt", "name": "vim /etc/hosts"}))
	assert.Equal(t, "N", r.Resolve(Attrs{"class": "URxvt", "name": "~/notes"}))
	assert.Equal(t, "F", r.Resolve(Attrs{"class": "URxvt", "name": "/usr/bin/less"}))
}
