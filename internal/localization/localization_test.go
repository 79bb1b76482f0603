package localization_test

import (
	"testing"
	"testing/fstest"

	"complaintportal/backend/internal/localization"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_LoadsEmbeddedLanguages(t *testing.T) {
	l := localization.Default()

	assert.Equal(t, []string{"en", "ne"}, l.Languages())
	assert.Equal(t, "Sanitation & Waste", l.GetString("en", "category.sanitation"))
	assert.Equal(t, "भ्रष्टाचार", l.GetString("ne", "category.corruption"))
}

func TestGetString_FallsBackToEnglishThenKey(t *testing.T) {
	l := localization.Default()

	// ne.json does not carry the long timeline descriptions.
	assert.Equal(t,
		"Your complaint has been resolved successfully.",
		l.GetString("ne", "timeline.resolved.text"))
	assert.Equal(t, "Infrastructure", l.GetString("fr", "category.infrastructure"))
	assert.Equal(t, "no.such.key", l.GetString("en", "no.such.key"))

	_, ok := l.Lookup("en", "no.such.key")
	assert.False(t, ok)
}

func TestFormat(t *testing.T) {
	l := localization.Default()

	assert.Equal(t,
		"Your complaint has been registered with ID: COMP-1-2",
		l.Format("en", "toast.submitted.text", "COMP-1-2"))
}

func TestNewLocalizer_SkipsNonJSONAndReportsBadFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"tr/en.json":    {Data: []byte(`{"hello":"Hello"}`)},
		"tr/README.md":  {Data: []byte("not a translation")},
		"tr/nested/x":   {Data: []byte("ignored")},
		"bad/en.json":   {Data: []byte(`{"hello":`)},
		"other/de.json": {Data: []byte(`{"hello":"Hallo"}`)},
	}

	l, err := localization.NewLocalizer(fsys, "tr")
	require.NoError(t, err)
	assert.Equal(t, []string{"en"}, l.Languages())
	assert.Equal(t, "Hello", l.GetString("de", "hello"))

	_, err = localization.NewLocalizer(fsys, "bad")
	assert.ErrorContains(t, err, "failed to parse localization file en.json")

	_, err = localization.NewLocalizer(fsys, "missing")
	assert.Error(t, err)
}
