package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/decimal-jit/codegen"
	"github.com/wippyai/decimal-jit/decimal"
	"github.com/wippyai/decimal-jit/emitter"
	"github.com/wippyai/decimal-jit/routine"
)

func main() {
	var (
		width       = flag.Int("width", 64, "Decimal width in bits (8, 16, 32, 64, 128, 256)")
		out         = flag.String("o", "", "Write the generated module to a file")
		frames      = flag.Bool("frames", false, "Dump the verification frame table")
		eval        = flag.String("eval", "", "Evaluate abs on an integer value")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		routine.SetLogger(l)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	w, err := parseWidth(*width)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := run(w, *out, *frames, *eval); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseWidth(bits int) (decimal.Width, error) {
	for _, w := range decimal.Widths {
		if w.Bits() == bits {
			return w, nil
		}
	}
	return 0, fmt.Errorf("unsupported width %d, want one of 8, 16, 32, 64, 128, 256", bits)
}

func run(w decimal.Width, out string, dumpFrames bool, eval string) error {
	e := emitter.New()
	if err := codegen.EmitAbs(e, w); err != nil {
		return err
	}
	frames := e.Frames()
	bin, err := e.Finish()
	if err != nil {
		return err
	}

	fmt.Printf("Routine: %s\n", codegen.AbsExportName(w))
	fmt.Printf("Module size: %d bytes\n", len(bin))
	fmt.Printf("Branch joins: %d\n", len(frames))

	if dumpFrames {
		fmt.Printf("\nVerification frames:\n")
		for i, f := range frames {
			fmt.Printf("  [%d] offset %d\n", i, f.Offset)
			fmt.Printf("      locals: %s\n", slotTypes(f.Locals))
			fmt.Printf("      stack:  %s\n", slotTypes(f.Stack))
		}
	}

	if out != "" {
		if err := os.WriteFile(out, bin, 0o644); err != nil {
			return fmt.Errorf("write module: %w", err)
		}
		fmt.Printf("Wrote %s\n", out)
	}

	if eval != "" {
		v, err := strconv.ParseInt(eval, 10, 64)
		if err != nil {
			return fmt.Errorf("parse value: %w", err)
		}
		return evalAbs(w, bin, decimal.FromInt64(v, 0))
	}
	return nil
}

func evalAbs(w decimal.Width, bin []byte, in decimal.Decimal256) error {
	ctx := context.Background()
	m := routine.NewMaterializer(ctx)
	defer m.Close(ctx)

	r, err := m.Materialize(ctx, bin, codegen.AbsExportName(w))
	if err != nil {
		return err
	}
	got, err := r.Call(ctx, in)
	if err != nil {
		return err
	}
	fmt.Printf("abs(%s) = %s\n", in, got)
	return nil
}

func slotTypes(slots []emitter.SlotType) string {
	if len(slots) == 0 {
		return "(empty)"
	}
	s := ""
	for i, slot := range slots {
		if i > 0 {
			s += " "
		}
		s += slot.Tag.String()
	}
	return s
}
