package prompt

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestAsk_FirstAttemptValid(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("Ada\n"), &out, nil, 3)

	v, err := p.Ask("Enter first name: ", NonBlank("Invalid first name."))
	require.NoError(t, err)
	assert.Equal(t, "Ada", v)
	assert.Equal(t, "Enter first name: ", out.String())
}

func TestAsk_RetriesThenSucceeds(t *testing.T) {
	var out bytes.Buffer
	core, logs := observer.New(zapcore.DebugLevel)
	p := NewPrompter(strings.NewReader("abc\n12x\r\n5551234\n"), &out, zap.New(core), 3)

	v, err := p.Ask("Enter mobile number: ", Digits("Invalid mobile number."))
	require.NoError(t, err)
	assert.Equal(t, "5551234", v)
	assert.Equal(t, 2, strings.Count(out.String(), "Invalid mobile number.\n"))

	warnings := logs.FilterMessage("invalid input").AllUntimed()
	require.Len(t, warnings, 2)
	assert.Equal(t, int64(1), warnings[0].ContextMap()["attempt"])
	assert.Equal(t, int64(2), warnings[1].ContextMap()["attempt"])
}

func TestAsk_GivesUpAfterMaxRetries(t *testing.T) {
	var out bytes.Buffer
	core, logs := observer.New(zapcore.DebugLevel)
	p := NewPrompter(strings.NewReader("\n \n\t\nnever read\n"), &out, zap.New(core), 3)

	_, err := p.Ask("Enter city: ", NonBlank("Invalid city."))
	assert.ErrorIs(t, err, ErrMaxRetries)
	assert.Equal(t, 3, strings.Count(out.String(), "Enter city: "))
	assert.True(t, strings.HasSuffix(out.String(), "Max retries reached.\n"))
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())

	// The fourth line is still there for the next question.
	next, err := p.Line("> ")
	require.NoError(t, err)
	assert.Equal(t, "never read", next)
}

func TestAsk_EOF(t *testing.T) {
	p := NewPrompter(strings.NewReader(""), io.Discard, nil, 3)
	_, err := p.Ask("Enter email: ", EmailLike("Invalid email."))
	assert.ErrorIs(t, err, io.EOF)
}

func TestLine_LastLineWithoutNewline(t *testing.T) {
	p := NewPrompter(strings.NewReader("3"), io.Discard, nil, 3)
	v, err := p.Line("Enter option number: ")
	require.NoError(t, err)
	assert.Equal(t, "3", v)

	_, err = p.Line("Enter option number: ")
	assert.ErrorIs(t, err, io.EOF)
}

func TestNewPrompter_ClampsRetries(t *testing.T) {
	p := NewPrompter(strings.NewReader("bad\n"), io.Discard, nil, 0)
	_, err := p.Ask("Enter email: ", EmailLike("Invalid email."))
	assert.ErrorIs(t, err, ErrMaxRetries)
}
