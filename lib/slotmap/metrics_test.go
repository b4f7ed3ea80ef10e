package slotmap

import (
	"bytes"
	"strings"
	"testing"

	"github.com/VictoriaMetrics/metrics"
)

func TestRegisterMetrics(t *testing.T) {
	m := New[string, int](&Options{NumShards: 4})
	m.Add("a", 1)
	m.Add("b", 2)

	set := metrics.NewSet()
	RegisterMetrics(set, "test", m)

	var buf bytes.Buffer
	set.WritePrometheus(&buf)
	out := buf.String()

	if !strings.Contains(out, `slotmap_entries{map="test"} 2`) {
		t.Errorf("expected entries gauge in output:\n%s", out)
	}
	if !strings.Contains(out, `slotmap_shards{map="test"} 4`) {
		t.Errorf("expected shards gauge in output:\n%s", out)
	}
	if !strings.Contains(out, `slotmap_distribution_quality{map="test"}`) {
		t.Errorf("expected distribution quality gauge in output:\n%s", out)
	}
}
