package bridge

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"

	"github.com/zhubert/cadcopilot/internal/logger"
)

// drainTimeout bounds how long Close waits for the child's output to end
// before reaping it.
const drainTimeout = 2 * time.Second

// Process is a Client connected to a host bridge child process.
type Process struct {
	*Client

	cmd        *exec.Cmd
	stdin      io.WriteCloser
	stderrDone chan struct{}
	closeOnce  sync.Once
	waitErr    error
}

// StartProcess launches args[0] with the remaining arguments and connects
// a Client to its stdin and stdout. The child's stderr goes to the log.
func StartProcess(ctx context.Context, args []string) (*Process, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("empty bridge command")
	}
	log := logger.WithComponent("bridge-process")

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("bridge stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("bridge stdout: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("bridge stderr: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting bridge %q: %w", args[0], err)
	}
	log.Info("bridge process started", "cmd", args[0], "pid", cmd.Process.Pid)

	stderrDone := make(chan struct{})
	go func() {
		defer close(stderrDone)
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			log.Debug("bridge stderr", "line", scanner.Text())
		}
	}()

	return &Process{
		Client:     NewClient(stdout, stdin),
		cmd:        cmd,
		stdin:      stdin,
		stderrDone: stderrDone,
	}, nil
}

// Close closes the child's stdin and waits for it to exit. Wait closes the
// pipes, so it only runs once both readers hit EOF or drainTimeout passes.
func (p *Process) Close() error {
	p.closeOnce.Do(func() {
		log := logger.WithComponent("bridge-process")
		_ = p.stdin.Close()

		timeout := time.NewTimer(drainTimeout)
		defer timeout.Stop()
	drain:
		for _, done := range []<-chan struct{}{p.Client.done, p.stderrDone} {
			select {
			case <-done:
			case <-timeout.C:
				log.Warn("bridge did not close its output, killing it")
				_ = p.cmd.Process.Kill()
				break drain
			}
		}

		p.waitErr = p.cmd.Wait()
		log.Info("bridge process exited", "error", p.waitErr)
	})
	return p.waitErr
}
