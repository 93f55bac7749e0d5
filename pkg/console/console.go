package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

const banner = `
╔═══════════════════════════════════════╗
║            🎬 ClipGenius 🤖            ║
║     Guided Video Download Assistant    ║
╚═══════════════════════════════════════╝
`

const ruleWidth = 50

// Console renders the guided session. Colours and markdown rendering are
// only used when writing to a terminal.
type Console struct {
	out      io.Writer
	output   *termenv.Output
	renderer *glamour.TermRenderer
	width    int
	mu       sync.Mutex
}

// New creates a console writing to f, detecting whether f is a terminal
func New(f *os.File) *Console {
	if !term.IsTerminal(int(f.Fd())) {
		return NewPlain(f)
	}

	width := terminalWidth(f)
	c := &Console{
		out:    f,
		output: termenv.NewOutput(f, termenv.WithProfile(termenv.EnvColorProfile())),
		width:  width,
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(termenv.EnvColorProfile()),
	)
	if err == nil {
		c.renderer = r
	}
	return c
}

// NewPlain creates a console without colours or markdown rendering
func NewPlain(w io.Writer) *Console {
	return &Console{
		out:    w,
		output: termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii)),
		width:  80,
	}
}

// terminalWidth gets the terminal width with a fallback
func terminalWidth(f *os.File) int {
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	if width > 10 {
		return width - 4
	}
	return width
}

// Banner prints the application banner
func (c *Console) Banner() {
	c.write(c.colored(banner, "6") + "\n")
}

// Section prints a titled separator
func (c *Console) Section(title string) {
	c.write("\n" + c.colored(title, "5") + "\n" + strings.Repeat("=", ruleWidth) + "\n")
}

// Info prints an informational line
func (c *Console) Info(msg string) {
	c.write(c.colored("ℹ️  "+msg, "4") + "\n")
}

// Success prints a success line
func (c *Console) Success(msg string) {
	c.write(c.colored("✅ "+msg, "2") + "\n")
}

// Warning prints a warning line
func (c *Console) Warning(msg string) {
	c.write(c.colored("⚠️  "+msg, "3") + "\n")
}

// Error prints an error line
func (c *Console) Error(msg string) {
	c.write(c.colored("❌ "+msg, "1") + "\n")
}

// Println prints text as is
func (c *Console) Println(text string) {
	c.write(text + "\n")
}

// Markdown prints text rendered as markdown on a terminal, or as is otherwise
func (c *Console) Markdown(text string) {
	if c.renderer != nil {
		if rendered, err := c.renderer.Render(text); err == nil {
			c.write(rendered)
			return
		}
	}
	c.write(text + "\n\n")
}

// PromptLabel styles a question shown before user input
func (c *Console) PromptLabel(question string) string {
	return c.colored("❓ "+question, "6") + " "
}

// Progress starts a byte progress bar. update may be called with total 0
// while the size is unknown; done finishes the bar.
func (c *Console) Progress(description string) (update func(downloaded, total int64), done func()) {
	bar := progressbar.NewOptions64(-1,
		progressbar.OptionSetWriter(c.out),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(c.out) }),
	)

	var max int64 = -1
	update = func(downloaded, total int64) {
		c.mu.Lock()
		defer c.mu.Unlock()
		if total > 0 && total != max {
			max = total
			bar.ChangeMax64(total)
		}
		_ = bar.Set64(downloaded)
	}
	done = func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		_ = bar.Finish()
	}
	return update, done
}

func (c *Console) colored(s, color string) string {
	return c.output.String(s).Foreground(c.output.Color(color)).String()
}

func (c *Console) write(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprint(c.out, s)
}
