package renderer

import "testing"

func TestRegistryRegisterSequential(t *testing.T) {
	r := NewRegistry()

	for want := int32(0); want < 3; want++ {
		if got := r.Register(&Mesh{}); got != want {
			t.Errorf("Register() = %d, want %d", got, want)
		}
	}
	if got := r.Count(); got != 3 {
		t.Errorf("Count() = %d, want 3", got)
	}
}

func TestRegistryUnregisterReusesSlot(t *testing.T) {
	r := NewRegistry()
	r.Register(&Mesh{})
	idx := r.Register(&Mesh{})
	r.Register(&Mesh{})

	r.Unregister(idx)
	if r.Has(idx) {
		t.Error("unregistered index still present")
	}
	if got := r.Count(); got != 2 {
		t.Errorf("Count() after Unregister = %d, want 2", got)
	}

	m := &Mesh{}
	if got := r.Register(m); got != idx {
		t.Errorf("Register() after Unregister = %d, want reused %d", got, idx)
	}
	if r.Get(idx) != m {
		t.Error("reused slot holds wrong mesh")
	}
}

func TestRegistryGetInvalid(t *testing.T) {
	r := NewRegistry()
	r.Register(&Mesh{})

	if got := r.Get(-1); got != nil {
		t.Errorf("Get(-1) = %v, want nil", got)
	}
	if got := r.Get(5); got != nil {
		t.Errorf("Get(5) = %v, want nil", got)
	}

	r.Unregister(0)
	if got := r.Get(0); got != nil {
		t.Errorf("Get(unregistered) = %v, want nil", got)
	}
}

func TestRegistryUnregisterUnknownNoOp(t *testing.T) {
	r := NewRegistry()
	r.Register(&Mesh{})

	r.Unregister(-1)
	r.Unregister(10)
	r.Unregister(0)
	r.Unregister(0)

	if got := r.Count(); got != 0 {
		t.Errorf("Count() = %d, want 0", got)
	}
	if got := r.Register(&Mesh{}); got != 0 {
		t.Errorf("Register() = %d, want 0 (single freed slot)", got)
	}
}
