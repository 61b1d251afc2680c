//go:build !windows

package dispatch

import (
	"os/exec"
	"syscall"
)

func shellCommand(cmdline string) *exec.Cmd {
	return exec.Command("/bin/sh", "-c", cmdline)
}

func launchCommand(path string, args []string) *exec.Cmd {
	return exec.Command(path, args...)
}

// startDetached starts cmd in its own session with stdio discarded. The
// child is reaped in the background; its exit status is never inspected.
func startDetached(cmd *exec.Cmd) error {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
