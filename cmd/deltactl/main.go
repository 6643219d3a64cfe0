package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"

	"github.com/deltakit/deltakit/delta"
	"github.com/deltakit/deltakit/delta/instruction"
	"github.com/deltakit/deltakit/internal/logging"
)

const usage = `usage:
  deltactl diff <source> <target> <patch-out>
  deltactl apply [-no-verify] <source> <patch> <target-out>
  deltactl inspect <patch>
`

func main() {
	logging.ConfigureRuntime()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "diff":
		err = runDiff(os.Args[2:])
	case "apply":
		err = runApply(os.Args[2:])
	case "inspect":
		err = runInspect(os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "deltactl: %v\n", err)
		os.Exit(1)
	}
}

func runDiff(args []string) error {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 3 {
		return fmt.Errorf("diff needs <source> <target> <patch-out>")
	}

	source, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	target, err := os.ReadFile(fs.Arg(1))
	if err != nil {
		return err
	}

	patch := delta.Diff(source, target)
	wire := delta.Encode(patch)
	if err := os.WriteFile(fs.Arg(2), wire, 0o644); err != nil {
		return err
	}

	log.Info().
		Str("source", fs.Arg(0)).
		Str("target", fs.Arg(1)).
		Int("instructions", len(patch)).
		Msg("diff written")
	fmt.Print(summarize(patch, len(source), len(target)))
	fmt.Printf("patch:   %s (%s), digest %016x\n",
		fs.Arg(2), humanize.Bytes(uint64(len(wire))), xxhash.Sum64(wire))
	return nil
}

func runApply(args []string) error {
	fs := flag.NewFlagSet("apply", flag.ExitOnError)
	noVerify := fs.Bool("no-verify", false, "skip copy content verification")
	fs.Parse(args)
	if fs.NArg() != 3 {
		return fmt.Errorf("apply needs <source> <patch> <target-out>")
	}

	source, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	wire, err := os.ReadFile(fs.Arg(1))
	if err != nil {
		return err
	}

	patch, err := delta.Decode(wire)
	if err != nil {
		return err
	}
	target, err := delta.ApplyWith(source, patch, delta.ApplyOptions{VerifyCopy: !*noVerify})
	if err != nil {
		return err
	}
	if err := os.WriteFile(fs.Arg(2), target, 0o644); err != nil {
		return err
	}

	log.Info().
		Str("patch", fs.Arg(1)).
		Str("target", fs.Arg(2)).
		Msg("patch applied")
	fmt.Printf("target:  %s (%s), digest %016x\n",
		fs.Arg(2), humanize.Bytes(uint64(len(target))), xxhash.Sum64(target))
	return nil
}

func runInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("inspect needs <patch>")
	}

	wire, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	patch, err := delta.Decode(wire)
	if err != nil {
		return err
	}

	fmt.Print(summarize(patch, patch.SourceLen(), patch.TargetLen()))
	return nil
}

// summarize renders per-variant instruction counts and run totals.
func summarize(p delta.Patch, sourceBytes, targetBytes int) string {
	var removes, adds, copies, removed, added, copied int
	for _, ins := range p {
		switch ins.(type) {
		case *instruction.Remove:
			removes++
			removed += int(ins.Len())
		case *instruction.Add:
			adds++
			added += int(ins.Len())
		case *instruction.Copy:
			copies++
			copied += int(ins.Len())
		}
	}
	out := fmt.Sprintf("stream:  %d instructions (%d remove, %d add, %d copy)\n",
		len(p), removes, adds, copies)
	out += fmt.Sprintf("runs:    %s removed, %s added, %s copied\n",
		humanize.Bytes(uint64(removed)), humanize.Bytes(uint64(added)), humanize.Bytes(uint64(copied)))
	out += fmt.Sprintf("buffers: %s source, %s target\n",
		humanize.Bytes(uint64(sourceBytes)), humanize.Bytes(uint64(targetBytes)))
	return out
}
