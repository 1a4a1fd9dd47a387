/*
© 2025–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package script

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestFromByteTransformerEchoesUppercased(t *testing.T) {
	s, err := FromByteTransformer(context.Background(), "upper", func(ctx context.Context, in io.Reader, out io.Writer) error {
		data, rerr := io.ReadAll(in)
		if rerr != nil {
			return rerr
		}
		_, werr := out.Write([]byte(strings.ToUpper(string(data))))
		return werr
	})
	if err != nil {
		t.Fatalf("FromByteTransformer error: %v", err)
	}

	if _, werr := s.Stdin().Write([]byte("abc")); werr != nil {
		t.Fatalf("Stdin write error: %v", werr)
	}
	s.Stdin().Close()

	out, err := s.Output(context.Background())
	if err != nil {
		t.Fatalf("Output error: %v", err)
	}
	if out != "ABC" {
		t.Errorf("Output = %q; want %q", out, "ABC")
	}
	if s.ExitCode() != ExitOK {
		t.Errorf("ExitCode = %v; want ExitOK", s.ExitCode())
	}
}

func TestFromLineMapRewritesEveryLine(t *testing.T) {
	s, err := FromLineMap(context.Background(), "prefix", func(ctx context.Context, line string) (string, error) {
		return "> " + line, nil
	})
	if err != nil {
		t.Fatalf("FromLineMap error: %v", err)
	}
	s.Stdin().Write([]byte("one\ntwo\n"))
	s.Stdin().Close()

	lines, err := s.OutputLines(context.Background())
	if err != nil {
		t.Fatalf("OutputLines error: %v", err)
	}
	want := []string{"> one", "> two"}
	if len(lines) != len(want) {
		t.Fatalf("OutputLines = %v; want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q; want %q", i, lines[i], want[i])
		}
	}
}

func TestFromLineTransformerCanEmitMultiple(t *testing.T) {
	s, err := FromLineTransformer(context.Background(), "dup", func(ctx context.Context, line string, emit func(string)) error {
		emit(line)
		emit(line)
		return nil
	})
	if err != nil {
		t.Fatalf("FromLineTransformer error: %v", err)
	}
	s.Stdin().Write([]byte("x\n"))
	s.Stdin().Close()

	lines, err := s.OutputLines(context.Background())
	if err != nil {
		t.Fatalf("OutputLines error: %v", err)
	}
	if len(lines) != 2 || lines[0] != "x" || lines[1] != "x" {
		t.Errorf("OutputLines = %v; want [x x]", lines)
	}
}

func TestFromByteTransformerKillForcesSignaledExit(t *testing.T) {
	started := make(chan struct{})
	s, err := FromByteTransformer(context.Background(), "blocker", func(ctx context.Context, in io.Reader, out io.Writer) error {
		close(started)
		_, rerr := in.Read(make([]byte, 1)) // blocks until Kill closes the pipe
		return rerr
	})
	if err != nil {
		t.Fatalf("FromByteTransformer error: %v", err)
	}
	<-started

	if !s.Kill(context.Background(), nil) {
		t.Fatal("Kill returned false")
	}
	if ec := s.ExitCode(); ec != ExitSignaled {
		t.Errorf("ExitCode = %v; want ExitSignaled", ec)
	}
}
