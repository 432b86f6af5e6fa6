package metadata_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"ngcc-go/packages/compiler-cli/ngtsc/host"
	"ngcc-go/packages/compiler-cli/ngtsc/metadata"
)

func program(constants []*host.ConstantBinding, classes ...*host.ClassDeclaration) (*host.SourceFile, host.Scope) {
	sf := host.NewSourceFile("test.yaml", classes, constants)
	checker := host.NewProgramChecker([]*host.SourceFile{sf})
	return sf, checker.FileScope(sf)
}

func str(s string) host.Expression   { return host.NewStringLiteral(s, nil) }
func num(n float64) host.Expression  { return host.NewNumericLiteral(n, nil) }
func ident(n string) host.Expression { return host.NewIdentifier(n, nil) }

func prop(name string, init host.Expression) *host.PropertyAssignment {
	return &host.PropertyAssignment{Name: name, Initializer: init}
}

func TestStaticallyResolveLiterals(t *testing.T) {
	cases := []struct {
		name string
		expr host.Expression
		want metadata.ResolvedValue
	}{
		{"should resolve a string", str("a"), metadata.StringValue("a")},
		{"should resolve a number", num(4), metadata.NumberValue(4)},
		{"should resolve a boolean", host.NewBooleanLiteral(true, nil), metadata.BoolValue(true)},
		{"should resolve null", host.NewNullLiteral(nil), metadata.NullValue{}},
		{
			"should resolve an array",
			host.NewArrayLiteral([]host.Expression{str("a"), num(1)}, nil),
			metadata.ArrayValue{metadata.StringValue("a"), metadata.NumberValue(1)},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := metadata.StaticallyResolve(tc.expr, nil)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("StaticallyResolve() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStaticallyResolveObjectLiteral(t *testing.T) {
	lit := host.NewObjectLiteral([]*host.PropertyAssignment{
		prop("selector", str("app-root")),
		prop("standalone", host.NewBooleanLiteral(false, nil)),
	}, nil)

	got, ok := metadata.StaticallyResolve(lit, nil).(*metadata.MapValue)
	if !ok {
		t.Fatalf("expected a map value")
	}
	if diff := cmp.Diff([]string{"selector", "standalone"}, got.Keys); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	if s, _ := metadata.AsString(got.Values["selector"]); s != "app-root" {
		t.Errorf("expected selector app-root, got %q", s)
	}
}

func TestStaticallyResolveIdentifiers(t *testing.T) {
	dir := &host.ClassDeclaration{Name: "Dir"}
	_, scope := program([]*host.ConstantBinding{
		{Name: "SELECTOR", Initializer: str("app-dir")},
		{Name: "ALIAS", Initializer: ident("SELECTOR")},
		{Name: "A", Initializer: ident("B")},
		{Name: "B", Initializer: ident("A")},
		{Name: "CONFIG", Initializer: host.NewObjectLiteral([]*host.PropertyAssignment{prop("name", str("cfg"))}, nil)},
	}, dir)

	t.Run("should follow constants", func(t *testing.T) {
		got := metadata.StaticallyResolve(ident("ALIAS"), scope)
		if !metadata.Equal(metadata.StringValue("app-dir"), got) {
			t.Errorf("expected app-dir, got %#v", got)
		}
	})

	t.Run("should resolve classes to references", func(t *testing.T) {
		ref, ok := metadata.StaticallyResolve(ident("Dir"), scope).(*metadata.Reference)
		if !ok || ref.Node != dir {
			t.Errorf("expected a reference to Dir, got %#v", ref)
		}
	})

	t.Run("should resolve cycles to unknown", func(t *testing.T) {
		got := metadata.StaticallyResolve(ident("A"), scope)
		if !metadata.IsUnknown(got) {
			t.Errorf("expected unknown, got %#v", got)
		}
	})

	t.Run("should resolve missing names to unknown", func(t *testing.T) {
		u, ok := metadata.StaticallyResolve(ident("MISSING"), scope).(*metadata.Unknown)
		if !ok {
			t.Fatalf("expected unknown")
		}
		if u.Reason != "MISSING is not in scope" {
			t.Errorf("unexpected reason %q", u.Reason)
		}
	})

	t.Run("should resolve nothing without a scope", func(t *testing.T) {
		if !metadata.IsUnknown(metadata.StaticallyResolve(ident("SELECTOR"), nil)) {
			t.Errorf("expected unknown")
		}
	})

	t.Run("should read properties of resolved objects", func(t *testing.T) {
		got := metadata.StaticallyResolve(host.NewPropertyAccess(ident("CONFIG"), "name", nil), scope)
		if s, ok := metadata.AsString(got); !ok || s != "cfg" {
			t.Errorf("expected cfg, got %#v", got)
		}
		missing := metadata.StaticallyResolve(host.NewPropertyAccess(ident("CONFIG"), "other", nil), scope)
		if !metadata.IsUnknown(missing) {
			t.Errorf("expected unknown, got %#v", missing)
		}
	})
}

func TestStaticallyResolvePartial(t *testing.T) {
	call := host.NewCallExpression(ident("forwardRef"), nil, nil)
	arr := host.NewArrayLiteral([]host.Expression{str("a"), call}, nil)

	t.Run("should collapse composites with unknown elements", func(t *testing.T) {
		u, ok := metadata.StaticallyResolve(arr, nil).(*metadata.Unknown)
		if !ok {
			t.Fatalf("expected unknown")
		}
		if u.Node != call {
			t.Errorf("expected the call to be the offending node")
		}
	})

	t.Run("should keep unknown elements in place when partial", func(t *testing.T) {
		got, ok := metadata.StaticallyResolve(arr, nil, metadata.WithPartial()).(metadata.ArrayValue)
		if !ok || len(got) != 2 {
			t.Fatalf("expected a two element array, got %#v", got)
		}
		if !metadata.IsUnknown(got[1]) {
			t.Errorf("expected the second element to be unknown")
		}
	})
}

func TestStaticallyResolveIsTotal(t *testing.T) {
	exprs := []host.Expression{
		nil,
		str(""),
		num(0),
		host.NewBooleanLiteral(false, nil),
		host.NewNullLiteral(nil),
		ident("x"),
		host.NewObjectLiteral(nil, nil),
		host.NewArrayLiteral(nil, nil),
		host.NewCallExpression(ident("f"), nil, nil),
		host.NewPropertyAccess(num(1), "x", nil),
		host.NewOpaqueExpression("a ? b : c", nil),
	}
	for _, expr := range exprs {
		if got := metadata.StaticallyResolve(expr, nil); got == nil {
			t.Errorf("StaticallyResolve(%#v) returned nil", expr)
		}
	}
}

func TestAsStringArray(t *testing.T) {
	got, ok := metadata.AsStringArray(metadata.ArrayValue{metadata.StringValue("a"), metadata.StringValue("b")})
	if !ok {
		t.Fatalf("expected ok")
	}
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Errorf("AsStringArray() mismatch (-want +got):\n%s", diff)
	}
	if _, ok := metadata.AsStringArray(metadata.ArrayValue{metadata.NumberValue(1)}); ok {
		t.Errorf("expected mixed arrays to be rejected")
	}
}
