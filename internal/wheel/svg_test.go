package wheel

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSVG(t *testing.T) {
	var buf bytes.Buffer
	in := items("Pizza", "Tom & Jerry", "<b>")
	require.NoError(t, RenderSVG(&buf, in, 370, DefaultLayout))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<svg "))
	assert.Equal(t, 3, strings.Count(out, "<path "))
	assert.Contains(t, out, `rotate(370.00, 400.00, 400.00)`)
	assert.Contains(t, out, "Tom &amp; Jerry")
	assert.Contains(t, out, "&lt;b&gt;")
	assert.Contains(t, out, in[0].Color)
	assert.Contains(t, out, "<polygon ")

	// Well formed.
	dec := xml.NewDecoder(strings.NewReader(out))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestRenderSVG_WriteError(t *testing.T) {
	err := RenderSVG(failWriter{}, items("a", "b"), 0, DefaultLayout)
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}
