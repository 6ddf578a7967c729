package hostbuffer

import (
	"io"
	"os"
	"os/exec"
	"runtime"
	"sort"
	"strings"

	"github.com/anmitsu/go-shlex"
	"github.com/creack/pty"
	"golang.org/x/term"

	"github.com/cedartext/buffer/internal/debuglog"
)

// editorCommand returns the user's preferred editor, preferring $VISUAL
// over $EDITOR and falling back to a platform default, the same precedence
// a shell uses.
func editorCommand() string {
	if v := os.Getenv("VISUAL"); v != "" {
		return v
	}
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	if runtime.GOOS == "windows" {
		return "notepad"
	}
	return "vi"
}

// editorArgv splits an $EDITOR/$VISUAL value like "code -w" into an argv,
// the way a shell would, so flags the user configured actually reach the
// child process instead of being treated as part of the binary name.
func editorArgv(command, path string) []string {
	fields, err := shlex.Split(command, true)
	if err != nil || len(fields) == 0 {
		fields = []string{command}
	}
	return append(fields, path)
}

// RunExternalEditor writes the buffer to a temp file, spawns the user's
// editor against it over a pty (so full-screen editors like vim work),
// puts the surrounding terminal into raw mode for the duration so keystrokes
// pass straight through to the pty, and loads the edited file back into the
// buffer on return. The whole round trip is
// one undo step: a single SetText call, not one per keystroke the external
// editor made.
//
// terminalFD is the file descriptor of the terminal the host process itself
// is attached to; when it is a terminal it is switched to raw mode while the
// child editor owns the screen and restored to its previous mode afterward.
func (a *Adapter) RunExternalEditor(terminalFD int) error {
	tmp, err := os.CreateTemp("", "cedartext-*.txt")
	if err != nil {
		return err
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.WriteString(a.expandedText()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	var restore *term.State
	if term.IsTerminal(terminalFD) {
		restore, err = term.MakeRaw(terminalFD)
		if err != nil {
			restore = nil
		}
	}
	err = a.spawnEditor(path)
	if restore != nil {
		if rErr := term.Restore(terminalFD, restore); rErr != nil {
			debuglog.Printf("failed to restore terminal state after external editor: %v", rErr)
		}
	}
	if err != nil {
		debuglog.Printf("external editor exited with error: %v", err)
		return err
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	a.SetText(a.recollapse(string(edited)))
	return nil
}

// expandedText returns the buffer's text with every paste placeholder
// substituted by its original registry content, the form an external editor
// should actually see and edit.
func (a *Adapter) expandedText() string {
	text := a.Text()
	for _, id := range a.state.Paste.Ids() {
		if content, ok := a.state.Paste.Get(id); ok {
			text = strings.ReplaceAll(text, id, content)
		}
	}
	return text
}

// recollapse looks for registry entries whose full original content still
// appears verbatim in text returned from the external editor and replaces
// the first such occurrence with the placeholder id, so pastes the user
// didn't touch go back to being collapsed instead of ballooning the buffer.
// Longest content first, so one entry's content can't be matched inside a
// different (longer) entry's content by accident.
func (a *Adapter) recollapse(text string) string {
	type candidate struct{ id, content string }
	ids := a.state.Paste.Ids()
	candidates := make([]candidate, 0, len(ids))
	for _, id := range ids {
		if content, ok := a.state.Paste.Get(id); ok {
			candidates = append(candidates, candidate{id, content})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return len(candidates[i].content) > len(candidates[j].content)
	})
	for _, c := range candidates {
		if idx := strings.Index(text, c.content); idx >= 0 {
			text = text[:idx] + c.id + text[idx+len(c.content):]
		}
	}
	return text
}

// spawnEditor runs the configured editor against path inside a pty,
// pumping its output to the real terminal and its input from stdin until
// the process exits.
func (a *Adapter) spawnEditor(path string) error {
	argv := editorArgv(editorCommand(), path)
	cmd := exec.Command(argv[0], argv[1:]...)
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return err
	}
	defer ptmx.Close()

	done := make(chan struct{})
	go func() {
		io.Copy(os.Stdout, ptmx)
		close(done)
	}()
	go io.Copy(ptmx, os.Stdin)

	err = cmd.Wait()
	<-done
	return err
}
