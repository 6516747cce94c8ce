//go:build !windows

package launcher

import (
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"syscall"
)

// scriptCommand runs the script through sh so files without a shebang still work.
func scriptCommand(script string, info fs.FileInfo) (*exec.Cmd, error) {
	if info.Mode().Perm()&0o100 == 0 {
		if err := os.Chmod(script, info.Mode().Perm()|0o100); err != nil {
			return nil, fmt.Errorf("make %s executable: %w", script, err)
		}
	}
	return exec.Command("/bin/sh", "-c", `exec "$0"`, script), nil
}

func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
