package dossier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/jsrename/dossier"
	"github.com/mna/jsrename/jsparse"
	"github.com/mna/jsrename/scope"
)

func build(t *testing.T, src string, opts dossier.Options) []*dossier.Dossier {
	t.Helper()
	chunk, err := jsparse.Parse(src, jsparse.Options{Filename: "test.js"})
	require.NoError(t, err)
	tree := scope.Analyze(chunk, 0)
	return dossier.Build(chunk, tree, src, opts)
}

func dossierNamed(t *testing.T, ds []*dossier.Dossier, name string) *dossier.Dossier {
	t.Helper()
	for _, d := range ds {
		if d.OriginalName == name {
			return d
		}
	}
	require.Failf(t, "no such dossier", "name %q", name)
	return nil
}

func TestBuildSkipsTaintedBindings(t *testing.T) {
	ds := build(t, `
		function f() {
			let hidden = 1;
			eval("hidden");
		}
	`, dossier.Options{})
	for _, d := range ds {
		assert.NotEqual(t, "hidden", d.OriginalName)
	}
}

func TestBuildSkipsImportedBindings(t *testing.T) {
	ds := build(t, `
		import { helper } from "./util";
		helper();
	`, dossier.Options{})
	for _, d := range ds {
		assert.NotEqual(t, "helper", d.OriginalName)
	}
}

func TestReferenceCountAndIsCalled(t *testing.T) {
	ds := build(t, `
		function doThing() {}
		doThing();
		doThing();
	`, dossier.Options{})
	d := dossierNamed(t, ds, "doThing")
	assert.True(t, d.Usage.IsCalled)
	assert.Equal(t, 2, d.Usage.ReferenceCount)
}

func TestIsConstructed(t *testing.T) {
	ds := build(t, `
		class Widget {}
		new Widget();
	`, dossier.Options{})
	d := dossierNamed(t, ds, "Widget")
	assert.True(t, d.Usage.IsConstructed)
	assert.Contains(t, d.TypeHints, "constructor")
}

func TestIsAwaited(t *testing.T) {
	ds := build(t, `
		async function f(promiseLike) {
			await promiseLike;
		}
	`, dossier.Options{})
	d := dossierNamed(t, ds, "promiseLike")
	assert.True(t, d.Usage.IsAwaited)
	assert.Contains(t, d.TypeHints, "promise-like")
}

func TestIsIteratedOnForOf(t *testing.T) {
	ds := build(t, `
		function f(items) {
			for (const item of items) {
				console.log(item);
			}
		}
	`, dossier.Options{})
	d := dossierNamed(t, ds, "items")
	assert.True(t, d.Usage.IsIterated)
	assert.Contains(t, d.TypeHints, "iterable")
}

func TestIsReturned(t *testing.T) {
	ds := build(t, `
		function f() {
			let result = 1;
			return result;
		}
	`, dossier.Options{})
	d := dossierNamed(t, ds, "result")
	assert.True(t, d.Usage.IsReturned)
}

func TestIsAssignedTo(t *testing.T) {
	ds := build(t, `
		let counter = 0;
		counter = counter + 1;
	`, dossier.Options{})
	d := dossierNamed(t, ds, "counter")
	assert.True(t, d.Usage.IsAssignedTo)
}

func TestArrayLikeTypeHintFromMutatorMethod(t *testing.T) {
	ds := build(t, `
		function f(list) {
			list.push(1);
		}
	`, dossier.Options{})
	d := dossierNamed(t, ds, "list")
	assert.Contains(t, d.Usage.CalledMethods, "push")
	assert.Contains(t, d.TypeHints, "array-like")
}

func TestMemberReadsAndArrayStringLikeHint(t *testing.T) {
	ds := build(t, `
		function f(text) {
			console.log(text.length);
		}
	`, dossier.Options{})
	d := dossierNamed(t, ds, "text")
	assert.Contains(t, d.Usage.MemberReads, "length")
	assert.Contains(t, d.TypeHints, "array/string-like")
}

func TestMemberWrites(t *testing.T) {
	ds := build(t, `
		function f(obj) {
			obj.name = "x";
		}
	`, dossier.Options{})
	d := dossierNamed(t, ds, "obj")
	assert.Contains(t, d.Usage.MemberWrites, "name")
}

func TestMethodChainAttributesToRootBinding(t *testing.T) {
	ds := build(t, `
		function f(builder) {
			builder.withName("x").withAge(1);
		}
	`, dossier.Options{})
	d := dossierNamed(t, ds, "builder")
	assert.Contains(t, d.Usage.CalledMethods, "withName")
	assert.Contains(t, d.Usage.CalledMethods, "withAge")
}

func TestBinaryOperatorsAndLiteralsCompared(t *testing.T) {
	ds := build(t, `
		function f(status) {
			if (status === "done") {
				console.log("x");
			}
		}
	`, dossier.Options{})
	d := dossierNamed(t, ds, "status")
	assert.Contains(t, d.Usage.BinaryOperators, "===")
	assert.Contains(t, d.Usage.LiteralsCompared, `"done"`)
}

func TestDeclarationSnippetTruncatesAtRuneBoundary(t *testing.T) {
	ds := build(t, `const greeting = "héllo world, this is a long initializer";`, dossier.Options{ContextWindowSize: 10})
	d := dossierNamed(t, ds, "greeting")
	assert.LessOrEqual(t, len(d.DeclarationSnippet), 10+len(" …")+3)
	assert.Contains(t, d.DeclarationSnippet, " …")
}

func TestDeclarationSnippetUsesDefaultBudgetWhenZero(t *testing.T) {
	ds := build(t, `const x = 1;`, dossier.Options{})
	d := dossierNamed(t, ds, "x")
	assert.NotEmpty(t, d.DeclarationSnippet)
	assert.NotContains(t, d.DeclarationSnippet, " …")
}

func TestBuildOrdersByBindingDeclarationOrder(t *testing.T) {
	ds := build(t, `
		const first = 1;
		const second = 2;
		const third = 3;
	`, dossier.Options{})
	require.Len(t, ds, 3)
	assert.Equal(t, "first", ds[0].OriginalName)
	assert.Equal(t, "second", ds[1].OriginalName)
	assert.Equal(t, "third", ds[2].OriginalName)
}
