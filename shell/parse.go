package shell

import (
	"errors"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
)

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

// CmdOptions holds `-key value` pairs given to a command.
type CmdOptions map[string]string

func (c CmdOptions) String(key, def string) string {
	if v, ok := c[key]; ok {
		return v
	}
	return def
}

func (c CmdOptions) IntDefault(key string, def int) (int, error) {
	v, ok := c[key]
	if !ok {
		return def, nil
	}
	return strconv.Atoi(v)
}

// extractFields splits a line into a command, its positional arguments and
// its options. Quoting follows shell rules. An option with no value is an
// error; a bare "-" followed by digits is treated as a (negative) argument.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := CmdOptions{}
	for idx := 1; idx < len(fields); idx++ {
		f := fields[idx]
		if strings.HasPrefix(f, "-") && len(f) > 1 && !isNumber(f) {
			if idx == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			options[f[1:]] = fields[idx+1]
			idx++
			continue
		}
		args = append(args, f)
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func isNumber(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}
