package batch

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// 失败时附带的stderr末尾字节数
const stderrTail = 512

// Executor 执行一次仿真并返回其标准输出
type Executor interface {
	Execute(ctx context.Context) ([]byte, error)
}

// Command 以子进程方式运行仿真程序
type Command struct {
	Path string   // 仿真程序路径
	Args []string // 附加参数
}

// Execute 运行一次子进程，非零退出码视为失败
func (c *Command) Execute(ctx context.Context) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		tail := stderr.Bytes()
		if len(tail) > stderrTail {
			tail = tail[len(tail)-stderrTail:]
		}
		return stdout.Bytes(), fmt.Errorf("%s exited with error: %w\n%s", c.Path, err, tail)
	}
	return stdout.Bytes(), nil
}
