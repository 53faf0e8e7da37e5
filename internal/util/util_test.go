package util

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeTransportText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"ascii", base64.StdEncoding.EncodeToString([]byte("Entertainment: Video Games")), "Entertainment: Video Games"},
		{"utf8", base64.StdEncoding.EncodeToString([]byte("Pokémon & “quotes”")), "Pokémon & “quotes”"},
		{"empty", "", ""},
		{"plain text", "What is 2 + 2?", "What is 2 + 2?"},
		{"bad padding", "YWJj=", "YWJj="},
		{"not utf8", base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe, 0xfd}), base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe, 0xfd})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, DecodeTransportText(tc.in))
		})
	}
}

func TestDecodeTransportTextsIsPerField(t *testing.T) {
	in := []string{
		base64.StdEncoding.EncodeToString([]byte("Paris")),
		"not base64!",
		base64.StdEncoding.EncodeToString([]byte("Berlin")),
	}
	require.Equal(t, []string{"Paris", "not base64!", "Berlin"}, DecodeTransportTexts(in))
}

func TestShuffleSliceKeepsElements(t *testing.T) {
	src := []string{"a", "b", "c", "d"}
	shuffled := ShuffleSlice(src)
	require.ElementsMatch(t, src, shuffled)
	require.Equal(t, []string{"a", "b", "c", "d"}, src)
}
