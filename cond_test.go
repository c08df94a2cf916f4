package luma

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkCond(t *testing.T, text string, env *Env) (bool, error) {
	t.Helper()
	return newIP().checkConditional(text, env)
}

func Test_Cond_Comparisons(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"if 3:int == 3:int", true},
		{"if 3:int == 4:int", false},
		{"if 1:int < 2:int", true},
		{"if 2:int < 2:int", false},
		{"if 2:int <= 2:int", true},
		{"if 3:int >= 4:int", false},
		{"if 2.5:float > 2:int", true},
		{"if abc:str == abc:str", true},
		{"if abc:str < abd:str", true},
	}
	for _, tc := range cases {
		got, err := checkCond(t, tc.text, nil)
		require.NoError(t, err, tc.text)
		assert.Equal(t, tc.want, got, tc.text)
	}
}

func Test_Cond_Combinators(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"if 3:int == 3:int and 1:int > 2:int", false},
		{"if 3:int == 3:int and 2:int > 1:int", true},
		{"if 3:int == 4:int or 2:int > 1:int", true},
		{"if 3:int == 4:int or 2:int > 3:int", false},
		{"if 3:int == 3:int xor 1:int == 1:int", false},
		{"if 3:int == 3:int xor 1:int == 2:int", true},
		// Single pass, no precedence: (((t and f) or t)) = t
		{"if 1:int == 1:int and 1:int == 2:int or 2:int == 2:int", true},
	}
	for _, tc := range cases {
		got, err := checkCond(t, tc.text, nil)
		require.NoError(t, err, tc.text)
		assert.Equal(t, tc.want, got, tc.text)
	}
}

func Test_Cond_Negation(t *testing.T) {
	got, err := checkCond(t, "if not 1:int == 2:int", nil)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = checkCond(t, "if not 1:int == 1:int", nil)
	require.NoError(t, err)
	assert.False(t, got)

	// Negation applies to the next completed comparison only.
	got, err = checkCond(t, "if not 1:int == 1:int or 2:int == 2:int", nil)
	require.NoError(t, err)
	assert.True(t, got)
}

func Test_Cond_IncomparableOperands(t *testing.T) {
	got, err := checkCond(t, "if abc:str < 3:int", nil)
	require.NoError(t, err)
	assert.False(t, got, "incomparable operands make every comparison false")
}

func Test_Cond_VariableOperands(t *testing.T) {
	ip := newIP()
	env := NewEnv(nil)
	env.Bind("x", Int(10))

	got, err := ip.checkConditional("if x:int > 5:int", env)
	require.NoError(t, err)
	assert.True(t, got)
}

func Test_Cond_ParseErrors(t *testing.T) {
	for _, text := range []string{
		"if ",
		"if",
		"if 3 == 3:int",
		"if 3:int == 3",
	} {
		_, err := checkCond(t, text, nil)
		assert.Error(t, err, text)
		assert.IsType(t, &ParseError{}, err, text)
	}
}
