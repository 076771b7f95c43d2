package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/nowwaveradio/datepicker/internal/picker"
	"github.com/nowwaveradio/datepicker/internal/render"
)

var errUsage = errors.New("usage")

// session replays host events against one controller
type session struct {
	ctrl   *picker.Controller
	bus    *picker.Bus
	term   *render.Terminal
	out    io.Writer
	logger *slog.Logger
}

func newSession(ctrl *picker.Controller, bus *picker.Bus, term *render.Terminal, out io.Writer, logger *slog.Logger) *session {
	return &session{ctrl: ctrl, bus: bus, term: term, out: out, logger: logger}
}

// run executes r line by line. prompt, when set, is called before each
// read. With keepGoing a failing line is reported and skipped; otherwise the
// first failure stops the run.
func (s *session) run(r io.Reader, prompt func(), keepGoing bool) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for {
		if prompt != nil {
			prompt()
		}
		if !scanner.Scan() {
			break
		}
		lineNo++

		if err := s.exec(scanner.Text()); err != nil {
			err = fmt.Errorf("line %d: %w", lineNo, err)
			if !keepGoing {
				return err
			}
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
	return scanner.Err()
}

// exec runs one command. Blank lines and # comments are ignored.
func (s *session) exec(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	fields := strings.Fields(line)
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	s.logger.Debug("Script command", slog.String("command", cmd), slog.Any("args", args))

	switch cmd {
	case "trigger":
		if len(args) < 1 {
			return fmt.Errorf("%w: trigger <id> [value]", errUsage)
		}
		id := picker.TriggerID(args[0])
		s.ctrl.AddTriggers(id)
		if len(args) > 1 {
			s.term.SetTriggerValue(id, strings.Join(args[1:], " "))
		}

	case "focus":
		if len(args) != 1 {
			return fmt.Errorf("%w: focus <id>", errUsage)
		}
		s.bus.Focus(picker.TriggerID(args[0]))

	case "prev":
		s.ctrl.ChangeMonth(-1)

	case "next":
		s.ctrl.ChangeMonth(1)

	case "month":
		delta, err := intArg(args, "month <delta>")
		if err != nil {
			return err
		}
		s.ctrl.ChangeMonth(delta)

	case "pick":
		index, err := intArg(args, "pick <index>")
		if err != nil {
			return err
		}
		if _, open := s.ctrl.Grid(); !open {
			return fmt.Errorf("pick: popup is closed")
		}
		s.ctrl.SelectCell(index)

	case "date":
		if len(args) != 1 {
			return fmt.Errorf("%w: date <text>", errUsage)
		}
		if !s.ctrl.State().IsOpen() {
			return fmt.Errorf("date: popup is closed")
		}
		d, err := s.ctrl.Codec().ParseValid(args[0])
		if err != nil {
			return fmt.Errorf("date: %w", err)
		}
		s.ctrl.SelectDate(d)

	case "click":
		if len(args) != 1 {
			return fmt.Errorf("%w: click <id|outside|popup>", errUsage)
		}
		switch args[0] {
		case "outside":
			s.bus.Pointer(picker.PointerEvent{})
		case "popup":
			s.bus.Pointer(picker.PointerEvent{InPopup: true})
		default:
			s.bus.Pointer(picker.PointerEvent{Target: picker.TriggerID(args[0])})
		}

	case "close":
		s.ctrl.Close()

	case "show":
		s.show()

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func (s *session) show() {
	if p, ok := s.term.Open(); ok {
		fmt.Fprintf(s.out, "%s\n", s.term.View(&p))
	} else {
		fmt.Fprintln(s.out, "popup closed")
	}
	for _, line := range s.term.Values() {
		fmt.Fprintln(s.out, line)
	}
}

func intArg(args []string, usage string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: %s", errUsage, usage)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%s: %w", usage, err)
	}
	return n, nil
}
