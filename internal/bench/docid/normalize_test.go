package docid

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type panickyID struct{}

func (panickyID) String() string { panic("boom") }

type ptrID struct{ v string }

func (p *ptrID) String() string { return p.v }

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want string
	}{
		{"plain", "docA", "doca"},
		{"s3 uri", "s3://bucket/path/Foo.docx", "foo"},
		{"https with query", "https://kb.example.com/files/Report.PDF?version=3#page=2", "report"},
		{"gcs uri", "gs://bucket/a/b/c/chunk_17.txt", "chunk_17"},
		{"relative path", "corpus/2024/notes.md", "notes"},
		{"trailing slash", "s3://bucket/dir/", ""},
		{"whitespace", "  Foo.txt \n", "foo"},
		{"double extension", "archive.tar.gz", "archive"},
		{"dotfile keeps stem", ".env", ".env"},
		{"dot without extension", "name.", "name."},
		{"extension with dash is kept", "v1.2-beta", "v1.2-beta"},
		{"int", 42, "42"},
		{"int64", int64(-7), "-7"},
		{"uint8", uint8(200), "200"},
		{"float integral", 42.0, "42"},
		{"float fractional keeps fraction", 1.5, "1_5"},
		{"float32 fractional", float32(0.25), "0_25"},
		{"json number integral", json.Number("42.0"), "42"},
		{"json number fractional", json.Number("3.5"), "3_5"},
		{"float32", float32(3), "3"},
		{"nan", math.NaN(), "nan"},
		{"bytes", []byte("Doc-B.pdf"), "doc-b"},
		{"nil", nil, ""},
		{"uuid", uuid.MustParse("6F9619FF-8B86-D011-B42D-00CF4FC964FF"), "6f9619ff-8b86-d011-b42d-00cf4fc964ff"},
		{"stringer", &ptrID{v: "Chunk-9"}, "chunk-9"},
		{"panicking stringer", panickyID{}, ""},
		{"nil stringer pointer", (*ptrID)(nil), ""},
		{"error value", errors.New("Doc.TXT"), "doc"},
		{"slice falls back to Sprint", []int{1, 2}, "[1 2]"},
		{"map falls back to Sprint", map[string]int{"a": 1}, "map[a:1]"},
		{"query on non-uri is kept", "a?b", "a?b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestNormalize_FormatInvariance(t *testing.T) {
	assert.Equal(t, Normalize("foo"), Normalize("s3://bucket/path/Foo.docx"))
	assert.Equal(t, Normalize("42"), Normalize(42))
	assert.Equal(t, Normalize("42"), Normalize(42.0))
	assert.Equal(t, Normalize("42"), Normalize(uint64(42)))
	assert.Equal(t, Normalize("README"), Normalize("/srv/docs/readme.md"))
}

func TestNormalize_FractionalFloatsStayDistinct(t *testing.T) {
	assert.NotEqual(t, Normalize(3), Normalize(3.5))
	assert.NotEqual(t, Normalize(3.25), Normalize(3.5))
	assert.Equal(t, Normalize(3.5), Normalize(Normalize(3.5)))
	assert.Equal(t, Normalize(3.5), Normalize(json.Number("3.5")))
}

var idempotenceSeeds = []string{
	"",
	"   ",
	"docA",
	"s3://bucket/path/Foo.docx",
	"https://x.io/a/b.html?q=1#frag",
	"Foo.TXT .md",
	"a.b.c.d",
	"file.tar.gz ",
	"\u212A.txt",
	"ǅungla.PDF",
	"İstanbul",
	"x/ y.z",
	".hidden.txt",
	"..",
	"a://b?c/d",
	"\xff\xfe.txt",
	"42",
	"chunk_0001",
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, s := range idempotenceSeeds {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once), "input %q", s)
	}
}

func FuzzNormalize(f *testing.F) {
	for _, s := range idempotenceSeeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, s string) {
		once := Normalize(s)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent for %q: %q -> %q", s, once, twice)
		}
	})
}
