package process

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"sync"
	"time"
)

var ErrEmptyCommand = errors.New("empty command")

//go:generate mockgen -source=runner.go -destination=../../../test/unit/doubles/infra/process/runner_mock.go -package=process -mock_names=Runner=MockRunner

type Runner interface {
	Spawn(ctx context.Context, argv []string) error
}

var _ Runner = (*ExecRunner)(nil)

func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// ExecRunner starts fire-and-forget processes. The exit status is only logged.
type ExecRunner struct {
	wg sync.WaitGroup
}

func (r *ExecRunner) Spawn(_ context.Context, argv []string) error {
	if len(argv) == 0 || argv[0] == "" {
		return ErrEmptyCommand
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", argv[0], err)
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := cmd.Wait(); err != nil {
			slog.Warn("detached process exited with error",
				slog.String("command", argv[0]),
				slog.Int("pid", cmd.Process.Pid),
				slog.Any("error", err),
			)
		}
	}()
	return nil
}

// Wait blocks until every spawned process has exited or timeout elapses. It
// reports whether all of them exited.
func (r *ExecRunner) Wait(timeout time.Duration) bool {
	exited := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(exited)
	}()

	select {
	case <-exited:
		return true
	case <-time.After(timeout):
		return false
	}
}

// Stream runs argv and calls onLine for every line written to its stdout. It
// returns when the process exits, the stream ends or ctx is cancelled.
func Stream(ctx context.Context, argv []string, onLine func([]byte)) error {
	if len(argv) == 0 || argv[0] == "" {
		return ErrEmptyCommand
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("opening stdout of %s: %w", argv[0], err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", argv[0], err)
	}

	scanErr := ScanLines(stdout, onLine)
	waitErr := cmd.Wait()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if scanErr != nil {
		return fmt.Errorf("reading %s: %w", argv[0], scanErr)
	}
	if waitErr != nil {
		return fmt.Errorf("%s exited: %w", argv[0], waitErr)
	}
	return nil
}

// ScanLines reads r line by line until EOF.
func ScanLines(r io.Reader, onLine func([]byte)) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		onLine(scanner.Bytes())
	}
	return scanner.Err()
}
