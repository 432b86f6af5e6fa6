package render3_test

import (
	"testing"

	"ngcc-go/packages/compiler/output"
	"ngcc-go/packages/compiler/render3"
	"ngcc-go/packages/compiler/render3/view"
)

func TestCompileFactoryFunction(t *testing.T) {
	t.Run("should instantiate the type without dependencies", func(t *testing.T) {
		res := render3.CompileFactoryFunction(render3.R3FactoryMetadata{
			Name:   "Foo",
			Type:   render3.ReferenceTo("Foo"),
			Target: render3.FactoryTargetDirective,
		})
		expected := "function Foo_Factory(t) {\n  return new (t || Foo)();\n}"
		if got := output.PrintExpression(res.Expression); got != expected {
			t.Errorf("Expected %q, got %q", expected, got)
		}
		if got := output.PrintType(res.Type); got != "ɵɵFactoryDeclaration<Foo, never>" {
			t.Errorf("Unexpected type %q", got)
		}
	})

	t.Run("should inject dependencies with the target's inject function", func(t *testing.T) {
		res := render3.CompileFactoryFunction(render3.R3FactoryMetadata{
			Name: "Foo",
			Type: render3.ReferenceTo("Foo"),
			Deps: []render3.R3DependencyMetadata{
				{Token: output.Variable("Http")},
				{Token: output.Variable("Logger"), Optional: true},
				{Token: nil},
			},
			Target: render3.FactoryTargetPipe,
		})
		expected := "function Foo_Factory(t) {\n  return new (t || Foo)(ɵɵdirectiveInject(Http), ɵɵdirectiveInject(Logger, 8), ɵɵinvalidFactoryDep(2));\n}"
		if got := output.PrintExpression(res.Expression); got != expected {
			t.Errorf("Expected %q, got %q", expected, got)
		}
	})

	t.Run("should use inject for injectables", func(t *testing.T) {
		res := render3.CompileFactoryFunction(render3.R3FactoryMetadata{
			Name:   "Svc",
			Type:   render3.ReferenceTo("Svc"),
			Deps:   []render3.R3DependencyMetadata{{Token: output.Variable("Http")}},
			Target: render3.FactoryTargetInjectable,
		})
		expected := "function Svc_Factory(t) {\n  return new (t || Svc)(ɵɵinject(Http));\n}"
		if got := output.PrintExpression(res.Expression); got != expected {
			t.Errorf("Expected %q, got %q", expected, got)
		}
	})
}

func TestCompileBaseDefFromMetadata(t *testing.T) {
	t.Run("should emit inputs and outputs in declaration order", func(t *testing.T) {
		res := render3.CompileBaseDefFromMetadata(render3.R3BaseRefMetaData{
			Name: "Base",
			Type: render3.ReferenceTo("Base"),
			Inputs: []view.DirectiveBindingValue{
				{ClassPropertyName: "value", BindingPropertyName: "value"},
				{ClassPropertyName: "label", BindingPropertyName: "title"},
			},
			Outputs: []view.DirectiveBindingValue{
				{ClassPropertyName: "changed", BindingPropertyName: "changed"},
			},
		})
		expected := "ɵɵdefineBase({inputs: {value: 'value', label: ['title', 'label']}, outputs: {changed: 'changed'}})"
		if got := output.PrintExpression(res.Expression); got != expected {
			t.Errorf("Expected %q, got %q", expected, got)
		}
		if got := output.PrintType(res.Type); got != "ɵɵBaseDef<Base>" {
			t.Errorf("Unexpected type %q", got)
		}
	})

	t.Run("should omit empty maps", func(t *testing.T) {
		res := render3.CompileBaseDefFromMetadata(render3.R3BaseRefMetaData{
			Name:    "Base",
			Type:    render3.ReferenceTo("Base"),
			Outputs: []view.DirectiveBindingValue{{ClassPropertyName: "x", BindingPropertyName: "y"}},
		})
		expected := "ɵɵdefineBase({outputs: {x: 'y'}})"
		if got := output.PrintExpression(res.Expression); got != expected {
			t.Errorf("Expected %q, got %q", expected, got)
		}
	})
}

func TestCompileDirectiveFromMetadata(t *testing.T) {
	t.Run("should compile selectors and exportAs", func(t *testing.T) {
		selector := "[myDir]"
		res, err := render3.CompileDirectiveFromMetadata(render3.R3DirectiveMetadata{
			Name:     "MyDir",
			Type:     render3.ReferenceTo("MyDir"),
			Selector: &selector,
			ExportAs: []string{"myDir"},
		})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		expected := "/*@__PURE__*/ ɵɵdefineDirective({type: MyDir, selectors: [['', 'myDir', '']], exportAs: ['myDir']})"
		if got := output.PrintExpression(res.Expression); got != expected {
			t.Errorf("Expected %q, got %q", expected, got)
		}
		if got := output.PrintType(res.Type); got != "ɵɵDirectiveDeclaration<MyDir, '[myDir]', ['myDir']>" {
			t.Errorf("Unexpected type %q", got)
		}
	})

	t.Run("should report invalid selectors", func(t *testing.T) {
		selector := "a:not(:not(b))"
		_, err := render3.CompileDirectiveFromMetadata(render3.R3DirectiveMetadata{
			Name:     "Bad",
			Type:     render3.ReferenceTo("Bad"),
			Selector: &selector,
		})
		if err == nil {
			t.Fatal("Expected an error for nested :not")
		}
	})
}

func TestCompileComponentFromMetadata(t *testing.T) {
	selector := "app-root"
	res, err := render3.CompileComponentFromMetadata(render3.R3ComponentMetadata{
		R3DirectiveMetadata: render3.R3DirectiveMetadata{
			Name:     "AppCmp",
			Type:     render3.ReferenceTo("AppCmp"),
			Selector: &selector,
		},
		Styles:     []string{"h1 { color: red; }"},
		Directives: []render3.R3Reference{render3.ReferenceTo("MyDir")},
		Pipes:      []render3.R3Reference{render3.ReferenceTo("MyPipe")},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expected := "/*@__PURE__*/ ɵɵdefineComponent({type: AppCmp, selectors: [['app-root']], decls: 0, vars: 0, " +
		"template: function AppCmp_Template(rf, ctx) {\n}, styles: ['h1 { color: red; }'], directives: [MyDir], pipes: [MyPipe]})"
	if got := output.PrintExpression(res.Expression); got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestCompileInjectable(t *testing.T) {
	res := render3.CompileInjectable(render3.R3InjectableMetadata{
		Name:       "Svc",
		Type:       render3.ReferenceTo("Svc"),
		ProvidedIn: output.NewLiteralExpr("root", nil, nil),
	})
	expected := "/*@__PURE__*/ ɵɵdefineInjectable({token: Svc, factory: function Svc_Factory(t) {\n  return new (t || Svc)();\n}, providedIn: 'root'})"
	if got := output.PrintExpression(res.Expression); got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
	if got := output.PrintType(res.Type); got != "ɵɵInjectableDeclaration<Svc>" {
		t.Errorf("Unexpected type %q", got)
	}
}

func TestCompilePipeFromMetadata(t *testing.T) {
	res := render3.CompilePipeFromMetadata(render3.R3PipeMetadata{
		Name:     "MyPipe",
		Type:     render3.ReferenceTo("MyPipe"),
		PipeName: "my",
		Pure:     false,
	})
	expected := "/*@__PURE__*/ ɵɵdefinePipe({name: 'my', type: MyPipe, pure: false})"
	if got := output.PrintExpression(res.Expression); got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
	if got := output.PrintType(res.Type); got != "ɵɵPipeDeclaration<MyPipe, 'my'>" {
		t.Errorf("Unexpected type %q", got)
	}
}
