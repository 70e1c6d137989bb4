package indexedcache_test

import (
	"testing"

	indexedcache "github.com/karupanerura/indexed-cache"
)

type clonerValue struct {
	value int
}

func (v *clonerValue) Clone() *clonerValue {
	return &clonerValue{value: v.value}
}

type deepCopierValue struct {
	value int
}

func (v *deepCopierValue) DeepCopy() *deepCopierValue {
	return &deepCopierValue{value: v.value}
}

func TestDefaultValueCloner(t *testing.T) {
	t.Parallel()

	t.Run("Clone", func(t *testing.T) {
		t.Parallel()

		cloner := indexedcache.DefaultValueCloner[*clonerValue]()
		original := &clonerValue{value: 1}
		cloned := cloner.CloneValue(original)
		if cloned == original {
			t.Error("value must be cloned, but got the same pointer")
		}
		if cloned.value != original.value {
			t.Errorf("got %d, want %d", cloned.value, original.value)
		}
	})

	t.Run("DeepCopy", func(t *testing.T) {
		t.Parallel()

		cloner := indexedcache.DefaultValueCloner[*deepCopierValue]()
		original := &deepCopierValue{value: 1}
		cloned := cloner.CloneValue(original)
		if cloned == original {
			t.Error("value must be cloned, but got the same pointer")
		}
		if cloned.value != original.value {
			t.Errorf("got %d, want %d", cloned.value, original.value)
		}
	})

	t.Run("FallbackToNop", func(t *testing.T) {
		t.Parallel()

		type plain struct{ value int }
		cloner := indexedcache.DefaultValueCloner[*plain]()
		original := &plain{value: 1}
		if cloned := cloner.CloneValue(original); cloned != original {
			t.Error("plain values are held by reference")
		}
	})
}

func TestNopValueCloner(t *testing.T) {
	t.Parallel()

	original := &clonerValue{value: 1}
	if cloned := (indexedcache.NopValueCloner[*clonerValue]{}).CloneValue(original); cloned != original {
		t.Error("NopValueCloner must return the input value")
	}
}
