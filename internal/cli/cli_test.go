package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestDemo(t *testing.T) {
	var out bytes.Buffer
	if err := runDemo(&out, 7); err != nil {
		t.Fatalf("runDemo: %v", err)
	}
	got := out.String()

	for _, want := range []string{
		"Starting balance: 50",
		"insufficient_funds",
		"first_completion",
		"new_record",
		"no_new_record",
		"Balance 54",
		"Conquista desbloqueada: Primeiro Passo",
		"Conquista desbloqueada: Economista Jr.",
		"PURCHASE",
		"item:5",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("demo output missing %q\n%s", want, got)
		}
	}
}

func TestCatalogExportValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")

	if _, err := execute(t, "catalog", "export", "-o", path); err != nil {
		t.Fatalf("export: %v", err)
	}
	if _, err := execute(t, "catalog", "export", "-o", path); err == nil {
		t.Error("second export without --force should fail")
	}

	out, err := execute(t, "catalog", "validate", path)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out, "6 missions, 6 items, 5 games, 5 achievements") {
		t.Errorf("validate output = %q", out)
	}
}

func TestCatalogValidate_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	data := "missions:\n  - { id: 1, title: A, reward: 10 }\n  - { id: 1, title: B, reward: 10 }\n"
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "catalog", "validate", path); err == nil {
		t.Error("duplicate mission ids should fail validation")
	}
}

func TestCatalogShow(t *testing.T) {
	out, err := execute(t, "catalog", "show")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{"Starting coins: 50", "Missão da Mesada", "Bicicleta Nova", "budget_planner", "completed_missions"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q", want)
		}
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "moneyquest dev") {
		t.Errorf("version output = %q", out)
	}
}
