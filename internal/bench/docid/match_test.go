package docid

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	id := uuid.MustParse("0b8b9c33-2f1e-4a55-8d1b-3f1c2b1e0a77")

	tests := []struct {
		name      string
		predicted any
		truth     []any
		want      bool
	}{
		{"exact", "docA", []any{"docA"}, true},
		{"case and uri", "s3://kb/raw/DocA.pdf", []any{"doca"}, true},
		{"int vs string", 42, []any{"42"}, true},
		{"string vs float", "7", []any{7.0}, true},
		{"prediction contains truth", "doca_chunk_3", []any{"docA"}, true},
		{"truth contains prediction", "annual", []any{"annual-report-2024.pdf"}, true},
		{"uuid vs string", id, []any{"s3://bucket/" + id.String() + ".json"}, true},
		{"miss", "docX", []any{"docA", "docB"}, false},
		{"empty prediction", "", []any{"docA"}, false},
		{"whitespace prediction", "   ", []any{"docA"}, false},
		{"nil prediction", nil, []any{"docA"}, false},
		{"empty truth id", "docA", []any{""}, false},
		{"nil truth", "docA", nil, false},
		{"empty truth", "docA", []any{}, false},
		{"mixed truth types", 3, []any{nil, []byte("x"), panickyID{}, int8(3)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.predicted, tt.truth))
		})
	}
}

func TestMatch_NeverPanics(t *testing.T) {
	weird := []any{
		nil, panickyID{}, (*ptrID)(nil), make(chan int), func() {}, struct{}{},
		[]any{1, "a"}, map[any]any{1: 2}, complex(1, 2), true, uintptr(9),
	}

	for _, p := range weird {
		assert.NotPanics(t, func() {
			Match(p, weird)
			Match(p, nil)
		})
		assert.False(t, Match(p, nil))
	}
}

func TestTruthSet(t *testing.T) {
	ts := NewTruthSet([]any{"DocA.pdf", "doca", "s3://b/docA.txt", "", nil, "docB"})

	require.Equal(t, 2, ts.Len())
	assert.False(t, ts.IsEmpty())
	assert.True(t, ts.Contains("DOCA"))
	assert.True(t, ts.Contains("https://host/x/docB.html"))
	assert.False(t, ts.Contains("docC"))

	empty := NewTruthSet([]any{"", "  ", nil, "s3://bucket/"})
	assert.True(t, empty.IsEmpty())
	assert.False(t, empty.Contains("anything"))
}

func TestResolver_Memoizes(t *testing.T) {
	r := NewResolver()
	ts := r.TruthSet([]any{"docA", "docB"})

	rel := r.Relevance([]any{"docX", "s3://kb/DocA.md", 42, "docB"}, ts)

	assert.Equal(t, []bool{false, true, false, true}, rel)
	assert.Equal(t, "doca", r.Normalize("s3://kb/DocA.md"))
	// docA, docB, docX, uri, 42
	assert.Equal(t, 5, r.Size())
}
