// Package interaction reads raw-mode keyboard input and sorts fights for
// list-style output.
package interaction

import (
	"os"

	"golang.org/x/term"
)

// KeyType represents the type of key pressed
type KeyType int

const (
	KeyChar KeyType = iota
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// KeyEvent represents a keyboard event
type KeyEvent struct {
	Key  rune
	Type KeyType
}

// KeyboardReader handles keyboard input in raw mode
type KeyboardReader struct {
	oldState *term.State
	input    chan KeyEvent
	stop     chan struct{}
}

// NewKeyboardReader puts the terminal into raw mode and starts reading
func NewKeyboardReader() (*KeyboardReader, error) {
	kr := &KeyboardReader{
		input: make(chan KeyEvent, 10),
		stop:  make(chan struct{}),
	}

	state, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return nil, err
	}
	kr.oldState = state

	go kr.readInput()
	return kr, nil
}

// readInput reads keyboard input in a goroutine
func (kr *KeyboardReader) readInput() {
	buf := make([]byte, 3)

	for {
		select {
		case <-kr.stop:
			return
		default:
			n, err := os.Stdin.Read(buf)
			if err != nil || n == 0 {
				continue
			}

			event := kr.parseInput(buf[:n])
			if event != nil {
				select {
				case kr.input <- *event:
				case <-kr.stop:
					return
				}
			}
		}
	}
}

// parseInput parses raw keyboard input, including arrow escape sequences
func (kr *KeyboardReader) parseInput(buf []byte) *KeyEvent {
	if len(buf) == 0 {
		return nil
	}

	if buf[0] == 3 { // Ctrl+C
		return &KeyEvent{Key: 3, Type: KeyChar}
	}

	if buf[0] == 27 { // ESC
		if len(buf) == 1 {
			return &KeyEvent{Key: 27, Type: KeyEscape}
		}
		if len(buf) >= 3 && buf[1] == '[' {
			switch buf[2] {
			case 'A':
				return &KeyEvent{Key: rune(buf[2]), Type: KeyUp}
			case 'B':
				return &KeyEvent{Key: rune(buf[2]), Type: KeyDown}
			case 'C':
				return &KeyEvent{Key: rune(buf[2]), Type: KeyRight}
			case 'D':
				return &KeyEvent{Key: rune(buf[2]), Type: KeyLeft}
			}
		}
		return nil
	}

	return &KeyEvent{Key: rune(buf[0]), Type: KeyChar}
}

// Events returns the keyboard event channel
func (kr *KeyboardReader) Events() <-chan KeyEvent {
	return kr.input
}

// Close stops the keyboard reader and restores the terminal
func (kr *KeyboardReader) Close() error {
	close(kr.stop)
	if kr.oldState != nil {
		return term.Restore(int(os.Stdin.Fd()), kr.oldState)
	}
	return nil
}
