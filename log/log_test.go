package log

import (
	"bytes"
	stdlog "log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintf_debugFilter(t *testing.T) {
	var buf bytes.Buffer
	out, flags := stdlog.Writer(), stdlog.Flags()
	stdlog.SetOutput(&buf)
	defer func() {
		stdlog.SetOutput(out)
		stdlog.SetFlags(flags)
	}()

	Setup(false)
	Printf("[DEBUG] hidden %d", 1)
	Printf("[INFO] shown %d", 2)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "[INFO] shown 2")

	buf.Reset()
	Setup(true)
	defer func() { AllowDebug = false }()
	Printf("[DEBUG] visible %d", 3)
	assert.Contains(t, buf.String(), "[DEBUG] visible 3")
	assert.Contains(t, buf.String(), "log_test.go")
}
