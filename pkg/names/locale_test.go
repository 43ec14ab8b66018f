package names_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/productioncity/salutation/pkg/names"
)

func TestNormalizeLocale(t *testing.T) {
	tests := []struct {
		in   string
		want names.Locale
	}{
		{"zh_CN", "zh_CN"},
		{"zh-CN", "zh_CN"},
		{"ZH-cn", "zh_CN"},
		{"zh-Hans-CN", "zh_CN"},
		{"zh_TW", "zh_TW"},
		{"en_US", "en_US"},
		{" ko_KR ", "ko_KR"},
		{"ja", "ja"},
		{"", ""},
		{"  ", ""},
		{"not a locale!", "not a locale!"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, names.NormalizeLocale(tt.in))
		})
	}
}

func TestIsReverseOrder(t *testing.T) {
	for _, l := range []string{"zh_CN", "zh_TW", "ko_KR", "ja_JP", "vi_VN", "hu_HU", "mn_MN", "ko-KR"} {
		assert.True(t, names.IsReverseOrder(l), l)
	}
	for _, l := range []string{"en_US", "fr_FR", "ja", "zh_SG", "", "xx"} {
		assert.False(t, names.IsReverseOrder(l), l)
	}
}

func TestReverseOrderLocales(t *testing.T) {
	got := names.ReverseOrderLocales()
	assert.Equal(t, []string{"hu_HU", "ja_JP", "ko_KR", "mn_MN", "vi_VN", "zh_CN", "zh_TW"}, got)

	// Callers get a copy.
	got[0] = "en_US"
	assert.False(t, names.IsReverseOrder("en_US"))
}

func TestResolveLocale(t *testing.T) {
	assert.Equal(t, names.Locale("ko_KR"), names.ResolveLocale("ko_KR", "en_US", "fr_FR"))
	assert.Equal(t, names.Locale("en_US"), names.ResolveLocale("", "en_US", "fr_FR"))
	assert.Equal(t, names.Locale("fr_FR"), names.ResolveLocale("", " ", "fr-FR"))
	assert.Equal(t, names.Locale(""), names.ResolveLocale("", "", ""))
}
