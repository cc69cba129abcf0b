package resume

import (
	"bytes"
	"strings"
	"testing"
)

func TestPage_SnapshotKeepsHeadAndRegionOnly(t *testing.T) {
	page := loadTestPage(t)
	if err := page.SetText(RegionSummary, "Backend engineer."); err != nil {
		t.Fatalf("set text: %v", err)
	}

	raw, err := page.Snapshot(RegionRoot)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	out := string(raw)
	if !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Fatalf("expected doctype, got %q", out[:20])
	}
	if !strings.Contains(out, "<title>Resume</title>") {
		t.Fatalf("expected head in snapshot")
	}
	if !strings.Contains(out, `id="resume-content"`) || !strings.Contains(out, "Backend engineer.") {
		t.Fatalf("expected root region in snapshot")
	}
	if strings.Contains(out, ExportButton) {
		t.Fatalf("expected export button outside the root to be excluded")
	}
}

func TestPage_InjectStyle(t *testing.T) {
	page := loadTestPage(t)
	before, _ := page.HTML()

	release, err := page.InjectStyle(PrintStyleID, ".x{color:red}")
	if err != nil {
		t.Fatalf("inject: %v", err)
	}
	if !page.Has(PrintStyleID) {
		t.Fatalf("expected style element")
	}
	if _, err := page.InjectStyle(PrintStyleID, ""); KindFromError(err) != KindValidation {
		t.Fatalf("expected duplicate style to be rejected, got %v", err)
	}

	release()
	release()
	if page.Has(PrintStyleID) {
		t.Fatalf("expected style element removed")
	}
	after, _ := page.HTML()
	if before != after {
		t.Fatalf("expected page restored after release")
	}
}

func TestPage_MissingRegionErrors(t *testing.T) {
	page, err := NewPageFromString(`<html><body><div id="resume-content"></div></body></html>`)
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if err := page.SetText(RegionSummary, "x"); KindFromError(err) != KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	missing := page.Missing(RegionRoot, RegionSkills)
	if len(missing) != 1 || missing[0] != RegionSkills {
		t.Fatalf("unexpected missing regions %v", missing)
	}
}

func TestPage_WriteToSingleDoctype(t *testing.T) {
	page := loadTestPage(t)
	var buf bytes.Buffer
	if _, err := page.WriteTo(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := strings.Count(strings.ToLower(buf.String()), "<!doctype html>"); got != 1 {
		t.Fatalf("expected one doctype, got %d", got)
	}
}
