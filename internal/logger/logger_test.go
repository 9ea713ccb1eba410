package logger

import (
	"fmt"
	"testing"
)

func TestLogger(t *testing.T) {
	// skip in ci checks
	if true {
		t.Skip()
	}

	Info("hello")

	Info("valuing %s", "INFY.NS")

	x := map[string]string{
		"ticker": "INFY.NS",
	}
	Info("request %v", x)

	Error(fmt.Errorf("ah man"))

	t.Fail()
}
