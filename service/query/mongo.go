package query

/*
	Package `query` wraps https://godoc.org/go.mongodb.org/mongo-driver/mongo
	for the collections of the house and its mirror.
*/

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/domain"
)

var (
	// ErrNotFound is mongo document not found error
	ErrNotFound = fmt.Errorf("document not found")

	// ErrDuplicateKey is an error when violating unique index
	ErrDuplicateKey = fmt.Errorf("duplicate key")

	// ErrCollScan is error for unindexed query
	ErrCollScan = fmt.Errorf("COLLSCAN is not allowed")
)

type patchOp struct {
	patchMany bool
}

// PatchOp is an alias for functional argument
type PatchOp func(*patchOp)

// WithPatchMany patches every entry selected
func WithPatchMany(patchMany bool) PatchOp {
	return func(o *patchOp) {
		o.patchMany = patchMany
	}
}

// Index describes one index, keys use the sort syntax ("seq" ascending, "-seq" descending)
type Index struct {
	Keys   []string
	Unique bool
}

// Mongo abstract the mongo layer.
type Mongo interface {
	// Insert inserts a new document to the table
	Insert(c ctx.Ctx, table domain.Table, insert interface{}) error

	// InsertMany inserts docs in order, the first failure stops the rest
	InsertMany(c ctx.Ctx, table domain.Table, docs []interface{}) error

	// FindOne get data from the table
	FindOne(c ctx.Ctx, table domain.Table, query, result interface{}) error

	// Count return counting for matched entry in the table
	Count(c ctx.Ctx, table domain.Table, selector interface{}) (n int, err error)

	// Upsert replaces the entry matching selector, or inserts it
	Upsert(c ctx.Ctx, table domain.Table, selector, update interface{}) error

	// Search sort order by `sort` argument (ex "timestamp" ascending, or "-timestamp" descending)
	// if `sort` is "", the sort action is skipped, and the MongoDB does not guarantee the order of query results.
	Search(c ctx.Ctx, table domain.Table, offset, limit int, sort string, query, results interface{}) error

	// SearchNSorts sort with multiple fields
	SearchNSorts(c ctx.Ctx, table domain.Table, offset, limit int, sortFields []string, query, results interface{}) error

	// RemoveAll remove all entries matching the selector from the table
	RemoveAll(c ctx.Ctx, table domain.Table, selector interface{}) (removedCnt int64, err error)

	// Patch $sets update on the selected entry.
	// Return ErrNotFound if selector does not match any documents
	Patch(c ctx.Ctx, table domain.Table, selector, update interface{}, ops ...PatchOp) error

	// CustomPatch patch an entry with customized mongo query
	// Return ErrNotFound if upsert is false and selector does not match any documents,
	CustomPatch(c ctx.Ctx, table domain.Table, selector, update bson.M, upsert bool) error

	EnsureIndexes(c ctx.Ctx, table domain.Table, indexes ...Index) error

	RunWithTransaction(c ctx.Ctx, run func(ctx.Ctx) error) error
}
