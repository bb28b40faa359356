package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spikehound/wizard/internal/wizard"
)

// OpKind enumerates the navigation operations a session accepts.
type OpKind string

const (
	OpStart    OpKind = "start"
	OpPause    OpKind = "pause"
	OpStop     OpKind = "stop"
	OpNext     OpKind = "next"
	OpPrevious OpKind = "previous"
	OpFirst    OpKind = "first"
	OpLast     OpKind = "last"
	OpPin      OpKind = "pin"
	OpUnpin    OpKind = "unpin"
	OpIgnore   OpKind = "ignore"
)

// Op is one session operation. Ignore ops carry their suppression target.
type Op struct {
	Kind OpKind
	Sup  wizard.Suppression // set when Kind == OpIgnore
}

// ParseOp parses one line of the CLI script format:
//
//	start | pause | stop | next | prev | previous | first | last |
//	pin | unpin | ignore <id> | ignore <a> <b>
//
// Tokens are whitespace-separated; "prev" is accepted as shorthand.
func ParseOp(line string) (Op, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Op{}, fmt.Errorf("empty operation")
	}

	kind := fields[0]
	if kind == "prev" {
		kind = string(OpPrevious)
	}

	switch OpKind(kind) {
	case OpStart, OpPause, OpStop, OpNext, OpPrevious, OpFirst, OpLast, OpPin, OpUnpin:
		if len(fields) > 1 {
			return Op{}, fmt.Errorf("operation %q takes no arguments", kind)
		}
		return Op{Kind: OpKind(kind)}, nil

	case OpIgnore:
		switch len(fields) {
		case 2:
			id, err := parseClusterID(fields[1])
			if err != nil {
				return Op{}, err
			}
			return Op{Kind: OpIgnore, Sup: wizard.SuppressCluster(id)}, nil
		case 3:
			a, err := parseClusterID(fields[1])
			if err != nil {
				return Op{}, err
			}
			b, err := parseClusterID(fields[2])
			if err != nil {
				return Op{}, err
			}
			return Op{Kind: OpIgnore, Sup: wizard.SuppressPair(a, b)}, nil
		default:
			return Op{}, fmt.Errorf("ignore takes one cluster or a pair, got %d arguments", len(fields)-1)
		}

	default:
		return Op{}, fmt.Errorf("unknown operation %q", fields[0])
	}
}

func parseClusterID(s string) (wizard.ClusterID, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid cluster id %q", s)
	}
	return wizard.ClusterID(id), nil
}

// ParseScript parses a newline-separated operation script, skipping blank
// lines and '#' comments. Errors name the offending line.
func ParseScript(src string) ([]Op, error) {
	var ops []Op
	for i, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		op, err := ParseOp(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		ops = append(ops, op)
	}
	return ops, nil
}
