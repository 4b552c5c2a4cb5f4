package dockerfile

import (
	"strings"

	"github.com/moby/buildkit/frontend/dockerfile/command"
	"github.com/moby/buildkit/frontend/dockerfile/parser"
)

// fromNode maps one BuildKit instruction node onto its variant. Nodes that
// lack the arguments their variant needs become Unknown.
func fromNode(node *parser.Node, heredocs []Heredoc, escape rune) Instruction {
	unknown := Unknown{Name: node.Value, Text: strings.TrimSpace(node.Original)}
	flags := parseFlags(node.Flags)

	switch strings.ToLower(node.Value) {
	case command.From:
		words := values(node)
		if len(words) == 0 {
			return unknown
		}
		from := From{Image: ParseImage(words[0]), Platform: flags.get("platform")}
		if len(words) >= 3 && strings.EqualFold(words[1], "as") {
			from.Alias = words[2]
		}
		return from

	case command.Run:
		run := Run{
			Arguments: arguments(node),
			Flags: RunFlags{
				Mounts:   flags["mount"],
				Network:  flags.get("network"),
				Security: flags.get("security"),
			},
			Heredocs: heredocs,
		}
		if len(heredocs) > 0 && !run.Exec {
			run.Text = heredocScript(run.Text, heredocs)
		}
		return run

	case command.Copy:
		srcs, dest, ok := splitSourcesDest(values(node))
		if !ok {
			return unknown
		}
		return Copy{
			Sources: srcs,
			Dest:    dest,
			Flags: CopyFlags{
				From:  flags.get("from"),
				Chown: flags.get("chown"),
				Chmod: flags.get("chmod"),
				Link:  flags.has("link") && flags.get("link") != "false",
			},
			Heredocs: heredocs,
		}

	case command.Add:
		srcs, dest, ok := splitSourcesDest(values(node))
		if !ok {
			return unknown
		}
		return Add{
			Sources: srcs,
			Dest:    dest,
			Flags: AddFlags{
				Chown:    flags.get("chown"),
				Chmod:    flags.get("chmod"),
				Checksum: flags.get("checksum"),
				Link:     flags.has("link") && flags.get("link") != "false",
			},
			Heredocs: heredocs,
		}

	case command.Workdir:
		return Workdir{Path: restOf(node)}
	case command.User:
		return User{Name: restOf(node)}
	case command.StopSignal:
		return StopSignal{Signal: restOf(node)}
	case command.Maintainer:
		return Maintainer{Name: restOf(node)}

	case command.Cmd:
		return Cmd{Arguments: commandArguments(node)}
	case command.Entrypoint:
		return Entrypoint{Arguments: commandArguments(node)}

	case command.Env:
		return Env{Pairs: keyValues(node, escape)}
	case command.Label:
		return Label{Pairs: keyValues(node, escape)}

	case command.Expose:
		return Expose{Ports: values(node)}
	case command.Volume:
		return Volume{Paths: values(node)}

	case command.Arg:
		words := values(node)
		if len(words) == 0 {
			return Arg{}
		}
		name, def, found := strings.Cut(words[0], "=")
		return Arg{Name: name, Default: unquote(def, escape), HasDefault: found}

	case command.Healthcheck:
		return healthcheck(node, flags)

	case command.Shell:
		args := arguments(node)
		if args.Exec {
			return Shell{Args: args.Values}
		}
		return Shell{Args: strings.Fields(args.Text)}

	case command.Onbuild:
		if node.Next == nil || len(node.Next.Children) == 0 {
			return unknown
		}
		return OnBuild{Inner: fromNode(node.Next.Children[0], heredocs, escape)}
	}
	return unknown
}

// commandArguments is arguments for CMD and ENTRYPOINT, which take no flags:
// BuildKit still splits leading "--words" off, so they are put back.
func commandArguments(node *parser.Node) Arguments {
	if len(node.Flags) > 0 {
		return Arguments{Text: restOf(node)}
	}
	return arguments(node)
}

func healthcheck(node *parser.Node, flags flagSet) Healthcheck {
	hc := Healthcheck{Flags: make(map[string]string, len(flags))}
	for k := range flags {
		hc.Flags[k] = flags.get(k)
	}
	typ := node.Next
	if typ == nil {
		return hc
	}
	switch strings.ToUpper(typ.Value) {
	case "NONE":
		hc.None = true
	case "CMD":
		if isJSON(node) {
			hc.Arguments = Arguments{Exec: true, Values: values(typ)}
		} else if typ.Next != nil {
			hc.Arguments = Arguments{Text: typ.Next.Value}
		}
	default:
		text := typ.Value
		if typ.Next != nil {
			text += " " + typ.Next.Value
		}
		hc.Arguments = Arguments{Text: text}
	}
	return hc
}
