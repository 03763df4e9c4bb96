package ui

import (
	"image/color"
	"strings"
	"testing"

	"firespread/internal/core"
)

func TestHUDLinesOrder(t *testing.T) {
	status := []core.Parameter{core.IntParam("iteration", "Iteration", 4)}
	snap := core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{Name: "Spread", Params: []core.Parameter{core.FloatParam("beta", "Beta (ignition)", 0.65)}},
		{Name: "Empty"},
	}}
	lines := hudLines("fire/sir", status, snap)
	if lines[0].kind != lineTitle || lines[0].text != "fire/sir" {
		t.Fatalf("first line %+v", lines[0])
	}
	if lines[1].text != "Status" || !strings.HasSuffix(lines[2].text, " 4") {
		t.Fatalf("status block %+v %+v", lines[1], lines[2])
	}
	if lines[3].text != "Spread" || !strings.HasPrefix(lines[4].text, "Beta (ignit~") || !strings.HasSuffix(lines[4].text, "0.65") {
		t.Fatalf("parameter block %+v %+v", lines[3], lines[4])
	}
	for _, l := range lines {
		if l.kind == lineHeader && l.text == "Empty" {
			t.Fatal("groups without parameters should be skipped")
		}
	}
	if last := lines[len(lines)-1]; last.kind != lineHint {
		t.Fatalf("key hints should close the panel, got %+v", last)
	}
}

func TestFillMaskRGBA(t *testing.T) {
	buf := make([]byte, 3*4)
	fillMaskRGBA(buf, []float64{0, 1, 2}, color.RGBA{R: 200, G: 100})
	if buf[3] != 0 {
		t.Fatalf("zero intensity should stay transparent, alpha %d", buf[3])
	}
	if buf[4] != 200 || buf[5] != 100 || buf[7] != 140 {
		t.Fatalf("full intensity pixel %v", buf[4:8])
	}
	if string(buf[4:8]) != string(buf[8:12]) {
		t.Fatalf("intensity above 1 should clamp, got %v vs %v", buf[4:8], buf[8:12])
	}
}
