package gild

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
)

// testPayload is a minimal payload for exercising the registry without
// pulling in the concern packages
type testPayload struct {
	kind  Kind
	value string
}

func (p testPayload) Kind() Kind { return p.kind }

// mergePayload merges by concatenating values
type mergePayload struct {
	kind  Kind
	value string
}

func (p mergePayload) Kind() Kind { return p.kind }

func (p mergePayload) Merge(prev Payload) Payload {
	if old, ok := prev.(mergePayload); ok {
		return mergePayload{kind: p.kind, value: old.value + "+" + p.value}
	}
	return p
}

func TestRegistry_AnnotateAndResolve(t *testing.T) {
	reg := NewRegistry()
	site := Class("BookController").Method("find")

	if err := reg.Annotate(site, testPayload{kind: KindRoute, value: "GET /books"}); err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}

	payload, ok := reg.Resolve(site, KindRoute)
	if !ok {
		t.Fatal("Resolve returned no payload for an annotated site")
	}
	if got := payload.(testPayload).value; got != "GET /books" {
		t.Errorf("Resolve returned %q, want %q", got, "GET /books")
	}

	// Same site, different kind stays empty
	if _, ok := reg.Resolve(site, KindAuthentication); ok {
		t.Error("Resolve returned a payload for a kind that was never annotated")
	}

	// Different site stays empty
	if _, ok := reg.Resolve(Class("BookController").Method("create"), KindRoute); ok {
		t.Error("Resolve returned a payload for a site that was never annotated")
	}
}

func TestRegistry_ResolveAggregateOrder(t *testing.T) {
	reg := NewRegistry()
	class := Class("BookController")

	// Annotate across members and kinds in a deliberate order
	steps := []struct {
		site Site
		kind Kind
	}{
		{class, KindRoute},
		{class.Method("find"), KindRoute},
		{class.Method("find").Param(0), KindParameter},
		{class.Method("create"), KindRoute},
		{class.Method("create").Param(0), KindRequestBody},
		{class.Method("create"), KindAuthentication},
	}
	for i, step := range steps {
		err := reg.Annotate(step.site, testPayload{kind: step.kind, value: fmt.Sprintf("v%d", i)})
		if err != nil {
			t.Fatalf("step %d: Annotate failed: %v", i, err)
		}
	}

	entries := reg.ResolveAggregate(class)
	if len(entries) != len(steps) {
		t.Fatalf("ResolveAggregate returned %d entries, want %d", len(entries), len(steps))
	}
	for i, entry := range entries {
		if entry.Site != steps[i].site || entry.Kind != steps[i].kind {
			t.Errorf("entry %d: got (%s, %s), want (%s, %s)",
				i, entry.Site, entry.Kind, steps[i].site, steps[i].kind)
		}
		if entry.Seq != i {
			t.Errorf("entry %d: Seq = %d, want %d", i, entry.Seq, i)
		}
	}

	// A member site aggregates the same class
	fromMember := reg.ResolveAggregate(class.Method("find"))
	if len(fromMember) != len(steps) {
		t.Errorf("ResolveAggregate from member site returned %d entries, want %d",
			len(fromMember), len(steps))
	}

	// Other classes are not included
	if err := reg.Annotate(Class("AuthorController").Method("find"), testPayload{kind: KindRoute}); err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}
	entries = reg.ResolveAggregate(class)
	if len(entries) != len(steps) {
		t.Errorf("ResolveAggregate leaked entries from another class: got %d, want %d",
			len(entries), len(steps))
	}
}

func TestRegistry_ResolveAggregateReturnsCopy(t *testing.T) {
	reg := NewRegistry()
	class := Class("BookController")
	if err := reg.Annotate(class, testPayload{kind: KindRoute, value: "base"}); err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}

	first := reg.ResolveAggregate(class)
	first[0].Payload = testPayload{kind: KindRoute, value: "mutated"}

	second := reg.ResolveAggregate(class)
	if got := second[0].Payload.(testPayload).value; got != "base" {
		t.Errorf("mutating an aggregate result changed the registry: got %q", got)
	}
}

func TestRegistry_DuplicateRequestBody(t *testing.T) {
	reg := NewRegistry()
	method := Class("BookController").Method("create")

	first := method.Param(0)
	if err := reg.Annotate(first, testPayload{kind: KindRequestBody, value: "original"}); err != nil {
		t.Fatalf("first request body failed: %v", err)
	}

	// Second request body on the same method fails even at another index
	err := reg.Annotate(method.Param(2), testPayload{kind: KindRequestBody, value: "second"})
	if err == nil {
		t.Fatal("second request body on the same method was accepted")
	}
	var dup *DuplicateEntryError
	if !errors.As(err, &dup) {
		t.Fatalf("error is %T, want *DuplicateEntryError", err)
	}
	if !errors.Is(err, ErrDuplicateEntry) {
		t.Error("error does not match ErrDuplicateEntry")
	}
	if dup.Existing != first {
		t.Errorf("Existing = %s, want %s", dup.Existing, first)
	}

	// The first entry is untouched
	payload, ok := reg.Resolve(first, KindRequestBody)
	if !ok || payload.(testPayload).value != "original" {
		t.Errorf("first request body changed after rejected duplicate: %v", payload)
	}
	if _, ok := reg.Resolve(method.Param(2), KindRequestBody); ok {
		t.Error("rejected request body was stored")
	}

	// Another method of the same class has its own slot
	if err := reg.Annotate(Class("BookController").Method("update").Param(1),
		testPayload{kind: KindRequestBody}); err != nil {
		t.Errorf("request body on a different method failed: %v", err)
	}
}

func TestRegistry_ParameterIndexes(t *testing.T) {
	reg := NewRegistry()
	method := Class("BookController").Method("find")

	// Distinct indices never collide
	for i := 0; i < 4; i++ {
		err := reg.Annotate(method.Param(i), testPayload{kind: KindParameter, value: fmt.Sprintf("p%d", i)})
		if err != nil {
			t.Fatalf("parameter %d failed: %v", i, err)
		}
	}

	// The same index does
	err := reg.Annotate(method.Param(2), testPayload{kind: KindParameter, value: "again"})
	if err == nil {
		t.Fatal("second parameter entry at the same index was accepted")
	}
	if !errors.Is(err, ErrDuplicateEntry) {
		t.Errorf("error is %v, want ErrDuplicateEntry", err)
	}

	payload, _ := reg.Resolve(method.Param(2), KindParameter)
	if payload.(testPayload).value != "p2" {
		t.Error("parameter entry changed after rejected duplicate")
	}
}

func TestRegistry_RelationUnsupported(t *testing.T) {
	reg := NewRegistry()

	err := reg.Annotate(Class("Book"), testPayload{kind: KindRelation, value: "hasMany"})
	if err == nil {
		t.Fatal("relation metadata was accepted")
	}
	var unsupported *UnsupportedError
	if !errors.As(err, &unsupported) {
		t.Fatalf("error is %T, want *UnsupportedError", err)
	}
	if !errors.Is(err, ErrUnsupported) {
		t.Error("error does not match ErrUnsupported")
	}
	if unsupported.Hint == "" {
		t.Error("unsupported error carries no hint")
	}
	if reg.Size() != 0 {
		t.Error("rejected relation entry was stored")
	}
}

func TestRegistry_Freeze(t *testing.T) {
	reg := NewRegistry()
	site := Class("BookController").Method("find")
	if err := reg.Annotate(site, testPayload{kind: KindRoute, value: "GET /books"}); err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}

	if reg.Frozen() {
		t.Error("registry reports frozen before Freeze")
	}
	reg.Freeze()
	if !reg.Frozen() {
		t.Error("registry does not report frozen after Freeze")
	}

	err := reg.Annotate(Class("BookController").Method("create"), testPayload{kind: KindRoute})
	if err == nil {
		t.Fatal("Annotate succeeded on a frozen registry")
	}
	if !errors.Is(err, ErrFrozen) {
		t.Errorf("error is %v, want ErrFrozen", err)
	}

	// Reads keep working
	if _, ok := reg.Resolve(site, KindRoute); !ok {
		t.Error("Resolve failed on a frozen registry")
	}
	if len(reg.ResolveAggregate(site)) != 1 {
		t.Error("ResolveAggregate failed on a frozen registry")
	}
}

func TestRegistry_MergeKeepsDeclarationOrder(t *testing.T) {
	reg := NewRegistry()
	class := Class("BookController")

	if err := reg.Annotate(class, mergePayload{kind: KindRoute, value: "a"}); err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}
	if err := reg.Annotate(class.Method("find"), testPayload{kind: KindRoute, value: "find"}); err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}
	// Re-annotating the class merges in place rather than appending
	if err := reg.Annotate(class, mergePayload{kind: KindRoute, value: "b"}); err != nil {
		t.Fatalf("re-annotate failed: %v", err)
	}

	entries := reg.ResolveAggregate(class)
	if len(entries) != 2 {
		t.Fatalf("got %d entries after merge, want 2", len(entries))
	}
	if entries[0].Site != class || entries[0].Seq != 0 {
		t.Errorf("merged entry moved: site %s seq %d", entries[0].Site, entries[0].Seq)
	}
	if got := entries[0].Payload.(mergePayload).value; got != "a+b" {
		t.Errorf("merged payload = %q, want %q", got, "a+b")
	}
}

func TestRegistry_ReplaceWithoutMerger(t *testing.T) {
	reg := NewRegistry()
	site := Class("BookController").Method("create")

	if err := reg.Annotate(site, testPayload{kind: KindAuthentication, value: "jwt"}); err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}
	if err := reg.Annotate(site, testPayload{kind: KindAuthentication, value: "basic"}); err != nil {
		t.Fatalf("re-annotate failed: %v", err)
	}

	payload, _ := reg.Resolve(site, KindAuthentication)
	if got := payload.(testPayload).value; got != "basic" {
		t.Errorf("payload = %q after replace, want %q", got, "basic")
	}
	if reg.Size() != 1 {
		t.Errorf("Size = %d after replace, want 1", reg.Size())
	}
}

func TestRegistry_TargetValidation(t *testing.T) {
	reg := NewRegistry()

	tests := []struct {
		name string
		site Site
		kind Kind
	}{
		{"empty class", Site{ParamIndex: NoParam}, KindRoute},
		{"route on parameter", Class("C").Method("m").Param(0), KindRoute},
		{"parameter on method", Class("C").Method("m"), KindParameter},
		{"request body on class", Class("C"), KindRequestBody},
		{"injection on class", Class("C"), KindInjection},
		{"model on method", Class("C").Method("m"), KindModel},
		{"property on class", Class("C"), KindProperty},
		{"property on parameter", Class("C").Method("m").Param(0), KindProperty},
		{"repository on method", Class("C").Method("m"), KindRepository},
		{"negative parameter index", Class("C").Method("m").Param(-3), KindParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := reg.Annotate(tt.site, testPayload{kind: tt.kind})
			if err == nil {
				t.Fatalf("Annotate accepted %s at %s", tt.kind, tt.site)
			}
			if !errors.Is(err, ErrInvalidSite) {
				t.Errorf("error is %v, want ErrInvalidSite", err)
			}
		})
	}

	if reg.Size() != 0 {
		t.Errorf("invalid annotations were stored: Size = %d", reg.Size())
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	reg := NewRegistry()
	var wg sync.WaitGroup
	var failures int64

	// Concurrent writers on distinct sites
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			class := Class(fmt.Sprintf("Controller%d", id))
			for j := 0; j < 20; j++ {
				site := class.Method(fmt.Sprintf("op%d", j))
				if err := reg.Annotate(site, testPayload{kind: KindRoute}); err != nil {
					atomic.AddInt64(&failures, 1)
				}
			}
		}(i)
	}

	// Concurrent readers
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			class := Class(fmt.Sprintf("Controller%d", id))
			for j := 0; j < 20; j++ {
				reg.Resolve(class.Method(fmt.Sprintf("op%d", j)), KindRoute)
				reg.ResolveAggregate(class)
			}
		}(i)
	}

	wg.Wait()

	if failures != 0 {
		t.Errorf("%d concurrent annotations failed", failures)
	}
	if reg.Size() != 200 {
		t.Errorf("Size = %d after concurrent writes, want 200", reg.Size())
	}
}

func TestDefault_ReturnsSameInstance(t *testing.T) {
	if Default() != Default() {
		t.Error("Default returned different instances")
	}
}
