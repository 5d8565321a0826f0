package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	if err := root.Execute(); err != nil {
		t.Fatalf("execute version: %v", err)
	}
	if !strings.Contains(out.String(), "texttocad") {
		t.Errorf("version output %q does not mention the binary", out.String())
	}
}

func TestCommandsRegistered(t *testing.T) {
	root := NewRootCmd()

	want := []string{"generate", "train", "predict", "serve", "version"}
	for _, name := range want {
		found := false
		for _, c := range root.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("command %q is not registered", name)
		}
	}
}

func TestGenerateDefaults(t *testing.T) {
	root := NewRootCmd()
	gen, _, err := root.Find([]string{"generate"})
	if err != nil {
		t.Fatalf("find generate: %v", err)
	}

	if got := gen.Flags().Lookup("num-datapoints").DefValue; got != "1000000" {
		t.Errorf("num-datapoints default = %s, want 1000000", got)
	}
	if got := gen.Flags().Lookup("shape").DefValue; got != "[all]" {
		t.Errorf("shape default = %s, want [all]", got)
	}
}

func TestTrainRequiresDatasetsDir(t *testing.T) {
	root := NewRootCmd()
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"train"})

	if err := root.Execute(); err == nil {
		t.Fatal("expected error when --datasets-dir is missing")
	}
}
