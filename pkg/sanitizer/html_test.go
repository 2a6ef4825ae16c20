package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ElementAstro/hello-element-astro-launcher-sub001/pkg/i18n"
	"github.com/ElementAstro/hello-element-astro-launcher-sub001/pkg/sanitizer"
)

func TestHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "strips script but keeps paragraph",
			input:    `<p>Hello</p><script>alert('xss')</script>`,
			expected: "<p>Hello</p>",
		},
		{
			name:     "keeps basic formatting",
			input:    `Connect to <strong>{{device}}</strong>`,
			expected: "Connect to <strong>{{device}}</strong>",
		},
		{
			name:     "adds nofollow to safe links",
			input:    `<a href="https://example.com">docs</a>`,
			expected: `<a href="https://example.com" rel="nofollow">docs</a>`,
		},
		{
			name:     "strips javascript URLs",
			input:    `<a href="javascript:alert('xss')">click</a>`,
			expected: "click",
		},
		{
			name:     "strips event handlers",
			input:    `<p onclick="alert('xss')">content</p>`,
			expected: "<p>content</p>",
		},
		{
			name:     "strips img tags",
			input:    `<img src="x" onerror="alert('xss')">`,
			expected: "",
		},
		{
			name:     "plain text is untouched",
			input:    `Don't close the "mount" & camera`,
			expected: `Don't close the "mount" & camera`,
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.HTML(tt.input))
		})
	}
}

func TestValue(t *testing.T) {
	t.Parallel()

	t.Run("keeps shape of every kind", func(t *testing.T) {
		t.Parallel()

		v := i18n.Nested(map[string]i18n.Value{
			"title": i18n.Leaf(`<b>Guide</b><script>x()</script>`),
			"count": i18n.Plural(map[string]string{"one": "{{count}} star", "other": `<i>{{count}}</i> stars`}),
			"mode":  i18n.Context(map[string]string{"manual": `<div>Manual</div>`}),
		})

		got := sanitizer.Value(v)
		require.Equal(t, i18n.KindNested, got.Kind())

		title, ok := got.Child("title")
		require.True(t, ok)
		s, _ := title.Text()
		assert.Equal(t, "<b>Guide</b>", s)

		count, ok := got.Child("count")
		require.True(t, ok)
		assert.Equal(t, i18n.KindPlural, count.Kind())
		s, _ = count.Form("one")
		assert.Equal(t, "{{count}} star", s)
		s, _ = count.Form("other")
		assert.Equal(t, "<i>{{count}}</i> stars", s)

		mode, ok := got.Child("mode")
		require.True(t, ok)
		assert.Equal(t, i18n.KindContext, mode.Kind())
		s, _ = mode.Form("manual")
		assert.Equal(t, "Manual", s)
	})

	t.Run("invalid value passes through", func(t *testing.T) {
		t.Parallel()
		assert.False(t, sanitizer.Value(i18n.Value{}).IsValid())
	})

	t.Run("dictionary", func(t *testing.T) {
		t.Parallel()

		d := sanitizer.Dictionary(i18n.Dictionary{
			"nav": i18n.Leaf(`<a href="javascript:void(0)">Home</a>`),
		})
		s, _ := d["nav"].Text()
		assert.Equal(t, "Home", s)
	})
}
