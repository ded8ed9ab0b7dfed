package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shruggr/subjecttrie/registry"
)

const usage = "commands: sub <pattern> <id> | unsub <pattern> <id> | unsuball <pattern> | match <subject> | exist <subject> | stats"

// handle runs one command line against reg and returns the response line.
func handle(ctx context.Context, reg *registry.Registry, line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}

	cmd, args := fields[0], fields[1:]
	switch {
	case cmd == "sub" && len(args) == 2:
		added, err := reg.Subscribe(ctx, args[0], args[1])
		return result(added, "added", "exists", err)

	case cmd == "unsub" && len(args) == 2:
		removed, err := reg.Unsubscribe(ctx, args[0], args[1])
		return result(removed, "removed", "absent", err)

	case cmd == "unsuball" && len(args) == 1:
		removed, err := reg.UnsubscribeAll(ctx, args[0])
		return result(removed, "removed", "absent", err)

	case cmd == "match" && len(args) == 1:
		ids, err := reg.Match(args[0])
		if err != nil {
			return "error: " + err.Error()
		}
		if ids == nil {
			ids = []string{}
		}
		out, err := json.Marshal(ids)
		if err != nil {
			return "error: " + err.Error()
		}
		return string(out)

	case cmd == "exist" && len(args) == 1:
		ok, err := reg.Exists(args[0])
		return result(ok, "true", "false", err)

	case cmd == "stats" && len(args) == 0:
		s := reg.Stats()
		return fmt.Sprintf("subscriptions=%d hits=%d misses=%d invalidated=%d",
			reg.Len(), s.Hits, s.Misses, s.Invalidated)

	default:
		return "error: " + usage
	}
}

func result(ok bool, yes, no string, err error) string {
	if err != nil {
		return "error: " + err.Error()
	}
	if ok {
		return yes
	}
	return no
}
