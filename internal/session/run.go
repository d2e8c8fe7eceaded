package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// Run feeds lines from in to c until the player leaves, input ends or ctx is cancelled.
// Prompts are written to out. End of input and cancellation both end with a farewell.
func Run(ctx context.Context, c *Controller, in io.Reader, out io.Writer) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	c.Start()
	for !c.Done() {
		if _, err := fmt.Fprint(out, "\n"+c.Prompt()); err != nil {
			return fmt.Errorf("failed to write prompt: %w", err)
		}
		select {
		case <-ctx.Done():
			c.Interrupt()
			return nil
		case line, ok := <-lines:
			if !ok {
				c.Interrupt()
				select {
				case err := <-readErr:
					if err != nil {
						return fmt.Errorf("failed to read input: %w", err)
					}
				default:
				}
				return nil
			}
			c.Handle(ctx, line)
		}
	}
	return nil
}
