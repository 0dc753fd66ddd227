package redis

import (
	"reflect"
	"testing"

	"github.com/kailas-cloud/notedex/internal/db"
)

func TestBuildKNNArgs(t *testing.T) {
	q := &db.KNNQuery{
		IndexName:    "notedex:passage:idx",
		Vector:       []float32{0.5},
		K:            50,
		ReturnFields: []string{"__content", "document_id"},
	}

	want := []string{
		"notedex:passage:idx",
		"*=>[KNN 50 @vector $BLOB]",
		"RETURN", "3", "__vector_score", "__content", "document_id",
		"SORTBY", "__vector_score",
		"LIMIT", "0", "50",
		"PARAMS", "2", "BLOB", vectorToBytes(q.Vector),
		"DIALECT", "2",
	}
	if got := buildKNNArgs(q); !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected args:\n got %q\nwant %q", got, want)
	}
}

func TestBuildKNNArgs_Filter(t *testing.T) {
	q := &db.KNNQuery{
		IndexName: "idx",
		Vector:    []float32{0.5},
		K:         5,
		Filter:    `@document_id:{d1}`,
	}

	args := buildKNNArgs(q)
	if args[1] != `(@document_id:{d1})=>[KNN 5 @vector $BLOB]` {
		t.Errorf("filter not prefixed to KNN clause: %q", args[1])
	}
}

func TestBuildBM25Args(t *testing.T) {
	q := &db.TextQuery{
		IndexName:    "notedex:passage:idx",
		Query:        "release notes",
		TopK:         25,
		ReturnFields: []string{"__content", "document_id"},
	}

	want := []string{
		"notedex:passage:idx",
		"@__content:(release notes)",
		"RETURN", "2", "__content", "document_id",
		"WITHSCORES",
		"LIMIT", "0", "25",
		"DIALECT", "2",
	}
	if got := buildBM25Args(q); !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected args:\n got %q\nwant %q", got, want)
	}
}

func TestBuildBM25Args_EscapesQuery(t *testing.T) {
	q := &db.TextQuery{IndexName: "idx", Query: `hello @world`, TopK: 10}

	args := buildBM25Args(q)
	if args[1] != `@__content:(hello \@world)` {
		t.Errorf("query not escaped: %q", args[1])
	}
}
