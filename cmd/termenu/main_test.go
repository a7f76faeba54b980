package main

import (
	"errors"
	"os"
	"os/exec"
	"testing"
)

func TestMainVersionExitZero(t *testing.T) {
	if os.Getenv("TERMENU_HELPER") == "1" {
		os.Args = []string{"termenu", "--version"}
		main()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestMainVersionExitZero")
	cmd.Env = append(os.Environ(), "TERMENU_HELPER=1")
	if err := cmd.Run(); err != nil {
		t.Fatalf("expected exit 0, got error: %v", err)
	}
}

func TestMainBadFlagExitOne(t *testing.T) {
	if os.Getenv("TERMENU_HELPER") == "1" {
		os.Args = []string{"termenu", "--max-height=2"}
		main()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestMainBadFlagExitOne")
	cmd.Env = append(os.Environ(), "TERMENU_HELPER=1", "TERMENU_LOG=")
	cmd.Stdin = nil
	err := cmd.Run()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
		t.Fatalf("expected exit 1, got %v", err)
	}
}
