package progress_test

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/expressx/internal/adapters/detector"
	"go.trai.ch/expressx/internal/adapters/progress"
	"go.trai.ch/expressx/internal/ui/output"
)

func asciiLine(buf *bytes.Buffer) *progress.Line {
	return progress.NewLine(output.NewWithProfile(buf, func() termenv.Profile { return termenv.Ascii }))
}

func TestLine_Advance(t *testing.T) {
	var buf bytes.Buffer
	line := asciiLine(&buf)

	line.Advance(420, 1000)
	assert.Contains(t, buf.String(), "Scanning 420/1000 files (42%)")

	buf.Reset()
	line.Advance(1000, 1000)
	assert.Contains(t, buf.String(), "1000/1000 files (100%)")
	assert.Contains(t, buf.String(), "\r")
}

func TestLine_ZeroTotal(t *testing.T) {
	var buf bytes.Buffer
	asciiLine(&buf).Advance(0, 0)
	assert.Contains(t, buf.String(), "0/0 files (0%)")
}

func TestLine_DoneOnlyClearsAfterAdvance(t *testing.T) {
	var buf bytes.Buffer
	line := asciiLine(&buf)

	line.Done()
	assert.Empty(t, buf.String())

	line.Advance(1, 2)
	buf.Reset()
	line.Done()
	assert.NotEmpty(t, buf.String())
	assert.NotContains(t, buf.String(), "Scanning")
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer

	assert.IsType(t, progress.Nop{}, progress.New(detector.ModeLinear, &buf))
	assert.IsType(t, &progress.Line{}, progress.New(detector.ModeInteractive, &buf))

	progress.New(detector.ModeLinear, &buf).Advance(1, 2)
	assert.Empty(t, buf.String())
}
