package gild

import "testing"

func TestSite_Key(t *testing.T) {
	tests := []struct {
		name string
		site Site
		want string
	}{
		{"class", Class("BookController"), "BookController"},
		{"method", Class("BookController").Method("find"), "BookController.find"},
		{"property", Class("Book").Property("title"), "Book.title"},
		{"method parameter", Class("BookController").Method("find").Param(1), "BookController.find[1]"},
		{"constructor parameter", Class("BookController").Constructor(0), "BookController[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.site.Key(); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
			if got := tt.site.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSite_Shape(t *testing.T) {
	class := Class("BookController")
	if class.HasMember() || class.HasParam() {
		t.Error("class site reports a member or parameter")
	}

	method := class.Method("find")
	if !method.HasMember() || method.HasParam() {
		t.Error("method site shape is wrong")
	}

	param := method.Param(2)
	if !param.HasMember() || !param.HasParam() {
		t.Error("parameter site shape is wrong")
	}

	ctor := class.Constructor(1)
	if ctor.HasMember() || !ctor.HasParam() {
		t.Error("constructor parameter site shape is wrong")
	}
}

func TestSite_Navigation(t *testing.T) {
	param := Class("BookController").Method("find").Param(2)

	if got := param.ClassSite(); got != Class("BookController") {
		t.Errorf("ClassSite() = %s", got)
	}
	if got := param.MemberSite(); got != Class("BookController").Method("find") {
		t.Errorf("MemberSite() = %s", got)
	}
	if got := Class("BookController").Constructor(0).MemberSite(); got != Class("BookController") {
		t.Errorf("constructor MemberSite() = %s", got)
	}
}

func TestSite_Equality(t *testing.T) {
	// Sites are comparable values; equal coordinates compare equal
	a := Class("BookController").Method("find").Param(0)
	b := Class("BookController").Method("find").Param(0)
	if a != b {
		t.Error("identical sites compare unequal")
	}
	if a == Class("BookController").Method("find").Param(1) {
		t.Error("different parameter indices compare equal")
	}
	if Class("BookController").Method("x") == Class("BookController").Property("x") {
		// Methods and properties share the member namespace on purpose
		return
	}
	t.Error("method and property sites with the same name should be the same site")
}

func TestKind_StringParseRoundTrip(t *testing.T) {
	kinds := []Kind{
		KindRoute, KindParameter, KindRequestBody, KindInjection,
		KindAuthentication, KindModel, KindProperty, KindRepository, KindRelation,
	}

	for _, kind := range kinds {
		parsed, err := ParseKind(kind.String())
		if err != nil {
			t.Errorf("ParseKind(%q) failed: %v", kind.String(), err)
			continue
		}
		if parsed != kind {
			t.Errorf("ParseKind(%q) = %v, want %v", kind.String(), parsed, kind)
		}
	}

	if _, err := ParseKind("bogus-spec"); err == nil {
		t.Error("ParseKind accepted an unknown kind")
	}
	if got := Kind(99).String(); got != "unknown" {
		t.Errorf("Kind(99).String() = %q, want %q", got, "unknown")
	}
}
