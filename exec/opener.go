// Package exec opens URIs by running the operating system's URL handler.
package exec

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"slices"
	"strings"

	"github.com/fwojciec/writeup"
)

// Ensure Opener implements writeup.Opener at compile time.
var _ writeup.Opener = (*Opener)(nil)

// Opener hands URIs to an external command. The URI is passed as the last
// argument.
type Opener struct {
	name string
	args []string
}

// NewOpener returns an Opener running name with args followed by the URI.
func NewOpener(name string, args ...string) *Opener {
	return &Opener{name: name, args: args}
}

// Name returns the command line without the URI, for logging.
func (o *Opener) Name() string {
	return strings.Join(append([]string{o.name}, o.args...), " ")
}

// Args returns the argument vector passed to the command for uri.
// The URI is always a single element and never reaches a shell.
func (o *Opener) Args(uri string) []string {
	return append(slices.Clone(o.args), uri)
}

// Open implements writeup.Opener.
// Returns EUNAVAILABLE if the command is missing or exits non-zero.
func (o *Opener) Open(ctx context.Context, uri string) error {
	// #nosec G204 -- the command is fixed at construction, the URI is one argument
	cmd := exec.CommandContext(ctx, o.name, o.Args(uri)...)
	out, err := cmd.CombinedOutput()
	if err == nil {
		return nil
	}
	if errors.Is(err, exec.ErrNotFound) {
		return writeup.Errorf(writeup.EUNAVAILABLE, "%s not found", o.name)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	msg := strings.TrimSpace(string(out))
	if msg == "" {
		msg = err.Error()
	}
	return writeup.Errorf(writeup.EUNAVAILABLE, "%s: %s", o.Name(), msg)
}

// DefaultOpeners returns the primary and secondary URL handlers for goos.
// secondary is nil where no alternative exists. None of them go through a
// shell, so characters such as & in the URI stay part of it.
func DefaultOpeners(goos string) (primary, secondary *Opener) {
	switch goos {
	case "darwin":
		return NewOpener("open"), nil
	case "windows":
		return NewOpener("rundll32", "url.dll,FileProtocolHandler"), NewOpener("explorer.exe")
	default:
		return NewOpener("xdg-open"), NewOpener("gio", "open")
	}
}

// SystemOpeners returns DefaultOpeners for the running system.
func SystemOpeners() (primary, secondary *Opener) {
	return DefaultOpeners(runtime.GOOS)
}
