package jsparse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/jsrename/jsparse"
)

func TestParseValidSource(t *testing.T) {
	chunk, err := jsparse.Parse(`const a = 1; console.log(a);`, jsparse.Options{Filename: "ok.js"})
	require.NoError(t, err)
	require.NotNil(t, chunk)
	assert.NotEmpty(t, chunk.Body)
}

func TestParseMalformedSourceIsReported(t *testing.T) {
	_, err := jsparse.Parse(`const a = ;;;`, jsparse.Options{Filename: "bad.js"})
	require.Error(t, err)
	var malformed *jsparse.MalformedSource
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "bad.js", malformed.Filename)
}
