package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/tagcloud/pkg/observability"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner shows which pipeline stage is running. It stops drawing when its
// context is cancelled.
type Spinner struct {
	out     io.Writer
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	stopped chan struct{}

	mu      sync.Mutex
	message string
	width   int // widest message drawn, for clearing
}

// newSpinnerWithContext creates a stderr spinner bound to ctx.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	return newSpinnerTo(ctx, os.Stderr, message)
}

func newSpinnerTo(ctx context.Context, out io.Writer, message string) *Spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		out:     out,
		ctx:     spinnerCtx,
		cancel:  cancel,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		message: message,
		width:   len(message),
	}
}

// Start begins the animation.
func (s *Spinner) Start() {
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.done:
				return
			case <-ticker.C:
				s.mu.Lock()
				fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(spinnerFrames[i%len(spinnerFrames)]), StyleDim.Render(s.message))
				s.mu.Unlock()
				i++
			}
		}
	}()
}

// SetMessage replaces the text shown next to the frame.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
	s.width = max(s.width, len(message))
}

// Message returns the current text.
func (s *Spinner) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// Stop stops the spinner and clears the line. It is safe to call twice.
func (s *Spinner) Stop() {
	s.cancel()
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	<-s.stopped
	s.clearLine()
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.width+4))
}

// StopWithSuccess stops the spinner and prints a success line.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the spinner and prints an error line.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the spinner's context was cancelled.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}

// stageHooks relabels a spinner as the pipeline moves between stages and
// forwards every event to next.
type stageHooks struct {
	spinner *Spinner
	next    observability.PipelineHooks
}

// trackStages installs s as pipeline hooks in front of the current ones.
// The returned func restores them.
func trackStages(s *Spinner) (restore func()) {
	prev := observability.Pipeline()
	observability.SetPipelineHooks(stageHooks{spinner: s, next: prev})
	return func() { observability.SetPipelineHooks(prev) }
}

func (h stageHooks) OnParseStart(ctx context.Context, source string) {
	h.spinner.SetMessage("Reading " + source + "...")
	h.next.OnParseStart(ctx, source)
}

func (h stageHooks) OnParseComplete(ctx context.Context, source string, tagCount int, d time.Duration, err error) {
	h.next.OnParseComplete(ctx, source, tagCount, d, err)
}

func (h stageHooks) OnLayoutStart(ctx context.Context, mode string, tagCount int) {
	h.spinner.SetMessage(fmt.Sprintf("Placing %d words (%s)...", tagCount, mode))
	h.next.OnLayoutStart(ctx, mode, tagCount)
}

func (h stageHooks) OnLayoutComplete(ctx context.Context, mode string, placed, skipped int, d time.Duration, err error) {
	h.next.OnLayoutComplete(ctx, mode, placed, skipped, d, err)
}

func (h stageHooks) OnRenderStart(ctx context.Context, formats []string) {
	h.spinner.SetMessage("Rendering " + strings.Join(formats, ", ") + "...")
	h.next.OnRenderStart(ctx, formats)
}

func (h stageHooks) OnRenderComplete(ctx context.Context, formats []string, d time.Duration, err error) {
	h.next.OnRenderComplete(ctx, formats, d, err)
}
