package gtp

import (
	"bytes"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type Command interface {
	Do(id int, args []string, e *Engine) (int, string, error)
}

type stdlib func(e *Engine) string

type stdlib2 func(e *Engine, args []string) (string, error)

func (f stdlib) Do(id int, args []string, e *Engine) (int, string, error) {
	str := f(e)
	return id, str, nil
}

func (f stdlib2) Do(id int, args []string, e *Engine) (int, string, error) {
	str, err := f(e, args)
	return id, str, err
}

func protocolVersion(e *Engine) string { return "2" }
func name(e *Engine) string            { return e.name }
func version(e *Engine) string         { return e.version }

func listCommands(e *Engine) string {
	cmds := make([]string, 0, len(e.known))
	for c := range e.known {
		cmds = append(cmds, c)
	}
	sort.Strings(cmds)
	return strings.Join(cmds, "\n")
}

func quit(e *Engine) string { close(e.ch); return "QUIT" }

func knownCommand(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("Not enough arguments for \"known_command\"")
	}
	if _, ok := e.known[args[0]]; ok {
		return "true", nil
	}
	return "false", nil
}

func demoRequired(e *Engine) error {
	if e.d == nil {
		return errors.New("No demo attached")
	}
	return nil
}

func showboard(e *Engine, args []string) (string, error) {
	if err := demoRequired(e); err != nil {
		return "", err
	}
	return "\n" + strings.TrimRight(e.d.String(), "\n"), nil
}

func clearBoard(e *Engine, args []string) (string, error) {
	if err := demoRequired(e); err != nil {
		return "", err
	}
	return "", e.d.Reset()
}

func train(e *Engine, args []string) (string, error) {
	if err := demoRequired(e); err != nil {
		return "", err
	}
	if err := e.d.Run(); err != nil {
		return "", err
	}
	return strconv.FormatFloat(float64(e.d.Cost()), 'f', 6, 32), nil
}

func invert(e *Engine, args []string) (string, error) {
	if err := demoRequired(e); err != nil {
		return "", err
	}
	return "", e.d.Invert()
}

func cell(cmd string, args []string) (row, col int, err error) {
	if len(args) < 2 {
		return 0, 0, errors.Errorf("Not enough arguments for %q", cmd)
	}
	if row, err = strconv.Atoi(args[0]); err != nil {
		return 0, 0, errors.WithMessagef(err, "Unable to parse first argument of %s", cmd)
	}
	if col, err = strconv.Atoi(args[1]); err != nil {
		return 0, 0, errors.WithMessagef(err, "Unable to parse second argument of %s", cmd)
	}
	return row, col, nil
}

func toggleInput(e *Engine, args []string) (string, error) {
	if err := demoRequired(e); err != nil {
		return "", err
	}
	row, col, err := cell("toggle_input", args)
	if err != nil {
		return "", err
	}
	return "", e.d.ToggleInput(row, col)
}

func toggleTarget(e *Engine, args []string) (string, error) {
	if err := demoRequired(e); err != nil {
		return "", err
	}
	row, col, err := cell("toggle_target", args)
	if err != nil {
		return "", err
	}
	return "", e.d.ToggleTarget(row, col)
}

func predict(e *Engine, args []string) (string, error) {
	if err := demoRequired(e); err != nil {
		return "", err
	}
	if len(args) == 0 {
		return "", errors.New("Not enough arguments for \"predict\"")
	}
	input := make([]float32, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 32)
		if err != nil {
			return "", errors.WithMessagef(err, "Unable to parse argument %d of predict", i+1)
		}
		input[i] = float32(v)
	}
	out, err := e.d.Predict(input)
	if err != nil {
		return "", err
	}
	s := make([]string, len(out))
	for i, v := range out {
		s[i] = strconv.FormatFloat(float64(v), 'f', 4, 32)
	}
	return strings.Join(s, " "), nil
}

func results(e *Engine, args []string) (string, error) {
	if err := demoRequired(e); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := e.d.Report(&buf); err != nil {
		return "", err
	}
	return "\n" + strings.TrimRight(buf.String(), "\n"), nil
}

func StandardLib() map[string]Command {
	return map[string]Command{
		"protocol_version": stdlib(protocolVersion),
		"name":             stdlib(name),
		"version":          stdlib(version),
		"list_commands":    stdlib(listCommands),
		"quit":             stdlib(quit),

		"known_command": stdlib2(knownCommand),
		"showboard":     stdlib2(showboard),
		"clear_board":   stdlib2(clearBoard),
		"train":         stdlib2(train),
		"invert":        stdlib2(invert),
		"toggle_input":  stdlib2(toggleInput),
		"toggle_target": stdlib2(toggleTarget),
		"predict":       stdlib2(predict),
		"results":       stdlib2(results),
	}
}
