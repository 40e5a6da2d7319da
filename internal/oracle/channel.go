package oracle

import (
	"fmt"
	"io"
	"os/exec"
)

// #region channel

// Channel is a duplex byte stream to an oracle process. The write direction
// can be closed independently of the read direction: half-close is how the
// client signals end-of-batch, after which it drains replies until EOF.
type Channel interface {
	io.Reader
	io.Writer

	// CloseWrite closes the write direction only.
	CloseWrite() error

	// Close tears the whole channel down. For a process-backed channel this
	// reaps the process and returns its exit error, if any.
	Close() error
}

// Dialer opens a Channel to an oracle invoked as command with args. Tests
// substitute an in-memory implementation.
type Dialer func(command string, args ...string) (Channel, error)

// #endregion channel

// #region process-channel

// procChannel wires a Channel to a subprocess's stdin and stdout.
type procChannel struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser
	waited bool
}

// StartProcess launches command with args and returns a Channel over its
// standard input and output. Stderr is discarded.
func StartProcess(command string, args ...string) (Channel, error) {
	cmd := exec.Command(command, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		stdin.Close()
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	cmd.Stderr = io.Discard
	if err := cmd.Start(); err != nil {
		stdin.Close()
		return nil, fmt.Errorf("start %s: %w", command, err)
	}
	return &procChannel{cmd: cmd, stdin: stdin, stdout: stdout}, nil
}

func (p *procChannel) Read(b []byte) (int, error)  { return p.stdout.Read(b) }
func (p *procChannel) Write(b []byte) (int, error) { return p.stdin.Write(b) }

func (p *procChannel) CloseWrite() error {
	return p.stdin.Close()
}

// Close reaps the process. Called after the read side hit EOF in the normal
// shutdown sequence; a non-zero exit surfaces here.
func (p *procChannel) Close() error {
	if p.waited {
		return nil
	}
	p.waited = true
	_ = p.stdin.Close()
	if err := p.cmd.Wait(); err != nil {
		return fmt.Errorf("%s exited: %w", p.cmd.Path, err)
	}
	return nil
}

// #endregion process-channel
