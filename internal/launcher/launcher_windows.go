//go:build windows

package launcher

import (
	"io/fs"
	"os/exec"
	"syscall"
)

const createNewProcessGroup = 0x00000200

// scriptCommand opens the script in its own console window via "start".
func scriptCommand(script string, _ fs.FileInfo) (*exec.Cmd, error) {
	return exec.Command("cmd", "/C", "start", "", script), nil
}

func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{CreationFlags: createNewProcessGroup}
}
