// This file is part of Gophersid.
//
// Gophersid is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gophersid is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gophersid.  If not, see <https://www.gnu.org/licenses/>.

package terminal

import (
	"fmt"
	"io"
	"time"

	"github.com/pkg/term"

	"github.com/jetsetilly/gophersid/curated"
)

// the device opened for keyboard input
const ttyDevice = "/dev/tty"

// how long a read waits for a key before checking for the end of the reader
// goroutine
const readTimeout = 100 * time.Millisecond

// Keyboard reads key presses from the terminal.
type Keyboard struct {
	tty  *term.Term
	out  io.Writer
	keys chan rune

	quit chan bool
	done chan bool
}

// NewKeyboard is the preferred method of initialisation for the Keyboard
// type. The output argument is used by Status() and can be nil.
func NewKeyboard(output io.Writer) (*Keyboard, error) {
	tty, err := term.Open(ttyDevice, term.CBreakMode)
	if err != nil {
		return nil, curated.Errorf("terminal: %v", err)
	}

	err = tty.SetReadTimeout(readTimeout)
	if err != nil {
		_ = tty.Restore()
		_ = tty.Close()
		return nil, curated.Errorf("terminal: %v", err)
	}

	kb := &Keyboard{
		tty:  tty,
		out:  output,
		keys: make(chan rune, 16),
		quit: make(chan bool),
		done: make(chan bool),
	}

	go kb.read()

	return kb, nil
}

func (kb *Keyboard) read() {
	defer close(kb.done)

	b := make([]byte, 1)
	for {
		select {
		case <-kb.quit:
			return
		default:
		}

		// a read timeout returns zero bytes
		n, err := kb.tty.Read(b)
		if err != nil && err != io.EOF {
			return
		}
		if n == 0 {
			continue
		}

		select {
		case kb.keys <- rune(b[0]):
		case <-kb.quit:
			return
		}
	}
}

// Keys returns the channel over which key presses are delivered.
func (kb *Keyboard) Keys() <-chan rune {
	return kb.keys
}

// Status overwrites the current line of the output with the formatted string.
func (kb *Keyboard) Status(format string, args ...interface{}) {
	if kb.out == nil {
		return
	}
	fmt.Fprintf(kb.out, "\r\033[K"+format, args...)
}

// Close stops reading from the terminal and restores its original mode.
func (kb *Keyboard) Close() error {
	close(kb.quit)
	<-kb.done

	if kb.out != nil {
		fmt.Fprintln(kb.out)
	}

	err := kb.tty.Restore()
	if err != nil {
		_ = kb.tty.Close()
		return curated.Errorf("terminal: %v", err)
	}

	err = kb.tty.Close()
	if err != nil {
		return curated.Errorf("terminal: %v", err)
	}

	return nil
}
