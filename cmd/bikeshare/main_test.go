package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const chicagoCSV = `Start Time,Start Station,End Station,Trip Duration,User Type,Gender,Birth Year
2017-03-06 08:00:00,A,B,100,Subscriber,Male,1990
2017-03-07 09:00:00,A,B,200,Customer,,
2017-01-02 10:00:00,C,D,300,Subscriber,Female,1985
`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "chicago.csv"), []byte(chicagoCSV), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return dir
}

func TestStatsCommand(t *testing.T) {
	dir := writeDataDir(t)
	out, err := runCLI(t, "stats", "--data-dir", dir, "--city", "Chicago", "--month", "march")
	if err != nil {
		t.Fatalf("stats failed: %v\n%s", err, out)
	}
	for _, want := range []string{
		"trips: 2",
		"Most frequent trip: A -> B (2 trips)",
		"Mean travel time: 150.00 seconds",
		"Earliest birth year: 1990",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestStatsCommandRejectsBadInput(t *testing.T) {
	dir := writeDataDir(t)
	if _, err := runCLI(t, "stats", "--data-dir", dir, "--city", "boston"); err == nil {
		t.Fatalf("expected unknown city error")
	}
	if _, err := runCLI(t, "stats", "--data-dir", dir, "--city", "chicago", "--month", "july"); err == nil {
		t.Fatalf("expected invalid month error")
	}
	if _, err := runCLI(t, "stats", "--data-dir", dir); err == nil {
		t.Fatalf("expected missing --city error")
	}
}

func TestStatsCommandUsesConfigCities(t *testing.T) {
	dir := writeDataDir(t)
	cfgHome := t.TempDir()
	cfgDir := filepath.Join(cfgHome, "bikeshare")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	body := "[data]\ndir = " + tomlLiteral(dir) + "\n\n[cities]\nspringfield = \"chicago.csv\"\n"
	if err := os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cmd := newRootCmd()
	t.Setenv("XDG_CONFIG_HOME", cfgHome)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"cities"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("cities failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "springfield\t") {
		t.Fatalf("unexpected cities output: %q", out.String())
	}
	if strings.Contains(out.String(), "(missing)") {
		t.Fatalf("dataset should resolve against config dir: %q", out.String())
	}
}

func tomlLiteral(s string) string {
	return "'" + s + "'"
}
