package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{`CORP\JDoe`, "jdoe"},
		{`jdoe`, "jdoe"},
		{`  JDoe  `, "jdoe"},
		{`i:0#.w|corp\JDoe`, "jdoe"},
		{`a\b\C`, "c"},
		{`J.Doe@example.nl`, "j.doe@example.nl"},
		{`Jan de Vries`, "jan de vries"},
		{``, ""},
		{`CORP\`, ""},
	}
	for _, c := range cases {
		if got := Normalize(c.input); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(`CORP\jdoe`, "JDOE"))
	assert.True(t, Equal(`OTHER\jdoe`, `corp\JDoe`))
	assert.False(t, Equal("jdoe", "jdoe2"))
	assert.False(t, Equal("", ""))
	assert.False(t, Equal(`CORP\`, ""))
}

func TestNormalizer_Candidates(t *testing.T) {
	n := NewNormalizer(" CORP ")

	assert.Equal(t, []string{"jdoe", `corp\jdoe`}, n.Candidates(" JDoe "))
	assert.Equal(t, []string{`other\jdoe`}, n.Candidates(`OTHER\JDoe`))
	assert.Nil(t, n.Candidates(""))
	assert.Nil(t, n.Candidates(`CORP\`))

	bare := NewNormalizer("")
	assert.Equal(t, []string{"jdoe"}, bare.Candidates("jdoe"))
}

func TestIndex_LookupAcrossForms(t *testing.T) {
	ix := NewIndex[int](NewNormalizer("CORP"))

	assert.True(t, ix.Add(`CORP\JDoe`, 1))
	assert.True(t, ix.Add("jdoe", 2))
	assert.True(t, ix.Add("asmit", 3))
	assert.False(t, ix.Add("", 4))
	assert.False(t, ix.Add(`CORP\`, 5))

	assert.Equal(t, []int{2}, ix.Lookup("JDOE"))
	assert.Equal(t, []int{1}, ix.Lookup(`corp\jdoe`))
	assert.Equal(t, []int{1, 2}, ix.Lookup(`OTHER\jdoe`))
	assert.Equal(t, []int{3}, ix.Lookup(`ELSEWHERE\asmit`))
	assert.Nil(t, ix.Lookup("nobody"))
	assert.Nil(t, ix.Lookup(""))
}

func TestIndex_DefaultDomainDecidesMatch(t *testing.T) {
	build := func(domain string) *Index[int] {
		ix := NewIndex[int](NewNormalizer(domain))
		ix.Add(`CORP\jdoe`, 1)
		ix.Add(`OTHER\jdoe`, 2)
		return ix
	}

	assert.Equal(t, []int{1}, build("CORP").Lookup("jdoe"), "home domain record wins")
	assert.Equal(t, []int{2}, build("OTHER").Lookup("JDoe"))
	assert.Equal(t, []int{1, 2}, build("").Lookup("jdoe"), "no domain falls back to the canonical key")
	assert.Equal(t, []int{1, 2}, build("ELSEWHERE").Lookup("jdoe"))
}

func TestIndex_SortStableFunc(t *testing.T) {
	ix := NewIndex[int](NewNormalizer(""))
	ix.Add("jdoe", 3)
	ix.Add(`CORP\jdoe`, 1)
	ix.Add("jdoe", 2)

	ix.SortStableFunc(func(a, b int) int { return a - b })
	assert.Equal(t, []int{2, 3}, ix.Lookup("jdoe"))
	assert.Equal(t, []int{1, 2, 3}, ix.Lookup(`OTHER\jdoe`))
}
