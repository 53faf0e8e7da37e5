package util

import (
	"encoding/base64"
	mrand "math/rand"
	"slices"
	"unicode/utf8"
)

// base64で届いた文字列を戻す。base64でないものやUTF-8にならないものはそのまま返す
func DecodeTransportText(s string) string {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return s
	}
	if !utf8.Valid(b) {
		return s
	}
	return string(b)
}

func DecodeTransportTexts(ss []string) []string {
	decoded := make([]string, 0, len(ss))
	for _, s := range ss {
		decoded = append(decoded, DecodeTransportText(s))
	}
	return decoded
}

func ShuffleSlice[S any](s []S) []S {
	if len(s) <= 1 {
		return s
	}
	cs := slices.Clone(s)
	mrand.Shuffle(len(cs), func(i, j int) { cs[i], cs[j] = cs[j], cs[i] })
	return cs
}
