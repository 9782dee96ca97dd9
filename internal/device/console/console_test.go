// internal/device/console/console_test.go
package console

import (
	"bytes"
	"strings"
	"testing"
)

func TestDisplay_SkipsRepeatedFrames(t *testing.T) {
	var buf bytes.Buffer
	d := NewDisplay(&buf)

	if err := d.Show("Altitude: 10", "Fuel: 90"); err != nil {
		t.Fatalf("Show err=%v", err)
	}
	if err := d.Show("Altitude: 10", "Fuel: 90"); err != nil {
		t.Fatalf("Show err=%v", err)
	}
	if err := d.Show("Altitude: 9", "Fuel: 90"); err != nil {
		t.Fatalf("Show err=%v", err)
	}

	out := buf.String()
	if n := strings.Count(out, "----\n"); n != 2 {
		t.Fatalf("expected 2 frames, got %d:\n%s", n, out)
	}
	if !strings.Contains(out, "Altitude: 9\nFuel: 90\n") {
		t.Fatalf("missing second frame:\n%s", out)
	}
}
