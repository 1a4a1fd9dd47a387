/*
© 2025–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package script

import (
	"context"
	"testing"
)

func TestWithEnvOverlayAndDelete(t *testing.T) {
	base := context.Background()
	set := func(v string) *string { return &v }

	ctx1 := WithEnv(base, map[string]*string{"A": set("1"), "B": set("2")}, false)
	if got := ambientEnv(ctx1); got["A"] != "1" || got["B"] != "2" {
		t.Fatalf("ambientEnv = %v; want A=1 B=2", got)
	}

	ctx2 := WithEnv(ctx1, map[string]*string{"B": nil, "C": set("3")}, true)
	got := ambientEnv(ctx2)
	if got["A"] != "1" {
		t.Errorf("A = %q; want inherited 1", got["A"])
	}
	if _, ok := got["B"]; ok {
		t.Errorf("B present after nil-value delete: %v", got["B"])
	}
	if got["C"] != "3" {
		t.Errorf("C = %q; want 3", got["C"])
	}

	// ctx1's own overlay must be unaffected by ctx2's derivation
	if got1 := ambientEnv(ctx1); got1["B"] != "2" {
		t.Errorf("parent overlay mutated: B = %q; want 2", got1["B"])
	}
}

func TestWithEnvIncludeParentFalseDropsInherited(t *testing.T) {
	set := func(v string) *string { return &v }
	ctx1 := WithEnv(context.Background(), map[string]*string{"A": set("1")}, false)
	ctx2 := WithEnv(ctx1, map[string]*string{"B": set("2")}, false)

	got := ambientEnv(ctx2)
	if _, ok := got["A"]; ok {
		t.Error("A present despite includeParent=false")
	}
	if got["B"] != "2" {
		t.Errorf("B = %q; want 2", got["B"])
	}
}

func TestIsVerboseIsDebugDefaultFalse(t *testing.T) {
	ctx := context.Background()
	if IsVerbose(ctx) {
		t.Error("IsVerbose true with no ambient context")
	}
	if IsDebug(ctx) {
		t.Error("IsDebug true with no ambient context")
	}
}

func TestCheckAmbientNilAtTopLevel(t *testing.T) {
	if err := checkAmbient(context.Background()); err != nil {
		t.Errorf("checkAmbient at top level = %v; want nil", err)
	}
}
