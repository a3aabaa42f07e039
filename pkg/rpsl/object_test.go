package rpsl

import (
	"strings"
	"testing"
)

func testObject() *Object {
	return &Object{Attributes: []Attribute{
		{Name: "route", Value: "192.0.2.0/24"},
		{Name: "origin", Value: "AS65000"},
		{Name: "mnt-by", Value: "MAINT-ONE"},
		{Name: "mnt-by", Value: "MAINT-TWO"},
	}}
}

func TestObject_ClassAndKey(t *testing.T) {
	obj := testObject()
	if obj.Class() != "route" {
		t.Errorf("Class() = %q, want %q", obj.Class(), "route")
	}
	if obj.Key() != "192.0.2.0/24" {
		t.Errorf("Key() = %q, want %q", obj.Key(), "192.0.2.0/24")
	}

	empty := &Object{}
	if empty.Class() != "" || empty.Key() != "" {
		t.Errorf("empty object Class/Key = %q/%q, want empty", empty.Class(), empty.Key())
	}
}

func TestObject_Get(t *testing.T) {
	obj := testObject()

	got := obj.Get("mnt-by")
	want := []string{"MAINT-ONE", "MAINT-TWO"}
	if len(got) != len(want) {
		t.Fatalf("Get(mnt-by) returned %d values, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Get(mnt-by)[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if vals := obj.Get("descr"); vals != nil {
		t.Errorf("Get(descr) = %v, want nil", vals)
	}
}

func TestObject_First(t *testing.T) {
	obj := testObject()

	v, ok := obj.First("mnt-by")
	if !ok || v != "MAINT-ONE" {
		t.Errorf("First(mnt-by) = %q, %v, want %q, true", v, ok, "MAINT-ONE")
	}

	if _, ok := obj.First("source"); ok {
		t.Error("First(source) reported present for a missing attribute")
	}
}

func TestObject_WriteTo(t *testing.T) {
	obj := testObject()

	var sb strings.Builder
	n, err := obj.WriteTo(&sb)
	if err != nil {
		t.Fatalf("WriteTo() failed: %v", err)
	}
	if int64(sb.Len()) != n {
		t.Errorf("WriteTo() reported %d bytes, wrote %d", n, sb.Len())
	}

	want := "route: 192.0.2.0/24\norigin: AS65000\nmnt-by: MAINT-ONE\nmnt-by: MAINT-TWO\n\n"
	if sb.String() != want {
		t.Errorf("WriteTo() output:\n%q\nwant:\n%q", sb.String(), want)
	}
}
