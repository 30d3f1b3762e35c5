package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, false)

	l.Infof("loaded %s", "TETRIS")
	l.Debugf("hidden %d", 1)
	l.Errorf("bad %02X", 0xD3)

	assert.Equal(t, "[INFO]\tloaded TETRIS\n[ERROR]\tbad D3\n", buf.String())

	buf.Reset()
	NewWriter(&buf, true).Debugf("shown %d", 2)
	assert.Equal(t, "[DEBUG]\tshown 2\n", buf.String())
}

func TestNullLogger(t *testing.T) {
	l := NewNullLogger()
	l.Infof("nothing")
	l.Errorf("nothing")
	l.Debugf("nothing")
}
