package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	assert.Equal(t, Japanese, Parse("ja"))
	assert.Equal(t, Japanese, Parse(" JP "))
	assert.Equal(t, English, Parse("en"))
	assert.Equal(t, English, Parse(""))
	assert.Equal(t, English, Parse("fr"))
}

func TestEveryLocaleLabelsEveryField(t *testing.T) {
	for _, l := range All() {
		text := For(l)
		for _, key := range Fields() {
			assert.NotEqual(t, key, text.Field(key), "locale %s field %s", l, key)
		}
		assert.Len(t, text.Roles, 5, "locale %s", l)
	}
}

func TestLabels(t *testing.T) {
	ja := For(Japanese)
	assert.Equal(t, "3月", ja.Month(3))
	assert.Equal(t, "バリデータ報酬", ja.Role("validator_rewards"))
	assert.Equal(t, "marketing", ja.Role("marketing"))

	en := For(English)
	assert.Equal(t, "Month 12", en.Month(12))
	assert.Equal(t, "custom_key", en.Field("custom_key"))

	assert.Equal(t, Japanese, Next(English))
	assert.Equal(t, English, Next(Japanese))
	assert.Equal(t, For(English), For("xx"))
}
