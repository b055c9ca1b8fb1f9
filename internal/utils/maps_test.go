package utils

import (
	"reflect"
	"testing"
)

func TestSortedKeys(t *testing.T) {
	t.Parallel()

	m := map[string]string{"b": "2", "a": "1", "c": "3"}

	got := SortedKeys(m)
	want := []string{"a", "b", "c"}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSortedKeys_Empty(t *testing.T) {
	t.Parallel()

	if got := SortedKeys(nil); len(got) != 0 {
		t.Fatalf("got %v, want empty", got)
	}
}
