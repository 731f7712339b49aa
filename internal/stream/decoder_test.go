package stream_test

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docex/internal/domain"
	"docex/internal/stream"
)

// chunkReader yields its input in fixed-size pieces to simulate transport
// chunks that do not align with frame boundaries.
type chunkReader struct {
	data []byte
	size int
	pos  int
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if c.pos >= len(c.data) {
		return 0, io.EOF
	}
	end := c.pos + c.size
	if end > len(c.data) {
		end = len(c.data)
	}
	n := copy(p, c.data[c.pos:end])
	c.pos += n
	return n, nil
}

func collect(t *testing.T, r io.Reader) []*stream.Event {
	t.Helper()
	dec := stream.NewDecoder(r)
	var events []*stream.Event
	for {
		ev, err := dec.Next()
		if err == io.EOF {
			return events
		}
		require.NoError(t, err)
		events = append(events, ev)
	}
}

func TestDecoder_StepAndResultFrames(t *testing.T) {
	body := "data: {\"step\":\"validate\",\"status\":\"active\",\"message\":\"Validating file\"}\n\n" +
		"data: {\"step\":\"validate\",\"status\":\"complete\"}\n\n" +
		"data: {\"type\":\"result\",\"success\":true,\"data\":{\"provider\":\"openai\"}}\n\n"

	events := collect(t, strings.NewReader(body))
	require.Len(t, events, 3)

	require.NotNil(t, events[0].Step)
	assert.Equal(t, "validate", events[0].Step.Step)
	assert.Equal(t, domain.StepActive, events[0].Step.Status)
	assert.Equal(t, "Validating file", events[0].Step.Message)

	require.NotNil(t, events[1].Step)
	assert.Equal(t, domain.StepComplete, events[1].Step.Status)

	require.NotNil(t, events[2].Result)
	assert.True(t, events[2].Result.Success)
	assert.JSONEq(t, `{"provider":"openai"}`, string(events[2].Result.Data))
}

func TestDecoder_FramesSplitAcrossReads(t *testing.T) {
	body := "data: {\"step\":\"analyze\",\"status\":\"active\"}\n\n" +
		"data: {\"type\":\"result\",\"success\":true}\n\n"

	for _, size := range []int{1, 3, 7, 16} {
		events := collect(t, &chunkReader{data: []byte(body), size: size})
		require.Len(t, events, 2, "chunk size %d", size)
		assert.NotNil(t, events[0].Step)
		assert.NotNil(t, events[1].Result)
	}
}

func TestDecoder_CRLFDelimiters(t *testing.T) {
	body := "data: {\"step\":\"upload\",\"status\":\"complete\"}\r\n\r\n" +
		"data: {\"type\":\"result\",\"success\":false,\"error\":{\"code\":\"ERR_EXTRACTION\",\"message\":\"boom\"}}\r\n\r\n"

	events := collect(t, strings.NewReader(body))
	require.Len(t, events, 2)

	require.NotNil(t, events[0].Step)
	assert.Equal(t, "upload", events[0].Step.Step)

	require.NotNil(t, events[1].Result)
	assert.False(t, events[1].Result.Success)
	require.NotNil(t, events[1].Result.Error)
	assert.Equal(t, "ERR_EXTRACTION", events[1].Result.Error.Code)
}

func TestDecoder_MalformedFrameBetweenValidOnes(t *testing.T) {
	body := "data: {\"step\":\"validate\",\"status\":\"active\"}\n\n" +
		"data: {not json at all\n\n" +
		"data: {\"step\":\"validate\",\"status\":\"complete\"}\n\n"

	events := collect(t, strings.NewReader(body))
	require.Len(t, events, 2)
	assert.Equal(t, domain.StepActive, events[0].Step.Status)
	assert.Equal(t, domain.StepComplete, events[1].Step.Status)
}

func TestDecoder_CommentAndHeartbeatFramesSkipped(t *testing.T) {
	body := ": keep-alive\n\n" +
		"\n\n" +
		"data: {\"step\":\"save\",\"status\":\"complete\"}\n\n"

	events := collect(t, strings.NewReader(body))
	require.Len(t, events, 1)
	assert.Equal(t, "save", events[0].Step.Step)
}

func TestDecoder_TrailingFrameWithoutDelimiter(t *testing.T) {
	// The final frame may be cut off before its blank-line terminator.
	body := "data: {\"step\":\"extract\",\"status\":\"complete\"}\n\n" +
		"data: {\"type\":\"result\",\"success\":true}"

	events := collect(t, strings.NewReader(body))
	require.Len(t, events, 2)
	assert.NotNil(t, events[1].Result)
	assert.True(t, events[1].Result.Success)
}

func TestDecoder_MultiLineDataPayload(t *testing.T) {
	body := "data: {\"step\":\"analyze\",\ndata: \"status\":\"active\"}\n\n"

	events := collect(t, strings.NewReader(body))
	require.Len(t, events, 1)
	assert.Equal(t, "analyze", events[0].Step.Step)
}

func TestDecoder_EmptyStream(t *testing.T) {
	events := collect(t, strings.NewReader(""))
	assert.Empty(t, events)
}
