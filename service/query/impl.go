package query

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/base/database/mongoclient"
	"github.com/x-xyz/auctionhouse/base/log"
	"github.com/x-xyz/auctionhouse/base/metrics"
	"github.com/x-xyz/auctionhouse/domain"
)

const (
	queryMaxTime    = 20 * time.Second
	slowLogMs       = int64(500)
	maxTransactions = 10
)

var (
	timeNow = time.Now
	met     = metrics.New("mongo")
)

type impl struct {
	client     *mongoclient.Client
	checkIndex bool
	tokens     chan int
}

// New initializes an impl. checkIndex rejects queries that would scan a whole collection.
func New(client *mongoclient.Client, checkIndex bool) Mongo {
	tokens := make(chan int, maxTransactions)
	for i := 0; i < maxTransactions; i++ {
		tokens <- i + 1
	}
	return &impl{
		client:     client,
		checkIndex: checkIndex,
		tokens:     tokens,
	}
}

func (im *impl) logerr(c ctx.Ctx, msg string, err error) {
	if _, ok := err.(topology.ConnectionError); ok {
		met.BumpSum("conn.err", 1.0)
	}
	c.WithFields(log.Fields{"err": err}).Error(msg)
}

func (im *impl) coll(table domain.Table) *mongo.Collection {
	return im.client.Database(im.client.DbName).Collection(string(table))
}

func (im *impl) Insert(c ctx.Ctx, table domain.Table, insert interface{}) error {
	defer met.BumpTime("time", "func", "insert", "table", string(table)).End()
	defer slowLog(c, string(table), "insert", nil, nil)()

	c = ctx.WithValue(c, "table", table)

	if _, err := im.coll(table).InsertOne(c, insert); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		im.logerr(c, "Insert: InsertOne failed", err)
		return err
	}
	return nil
}

func (im *impl) InsertMany(c ctx.Ctx, table domain.Table, docs []interface{}) error {
	defer met.BumpTime("time", "func", "insertMany", "table", string(table)).End()
	defer slowLog(c, string(table), "insertMany", nil, nil)()

	if len(docs) == 0 {
		return nil
	}

	c = ctx.WithValues(c, map[string]interface{}{
		"table": table,
		"docs":  len(docs),
	})

	if _, err := im.coll(table).InsertMany(c, docs, options.InsertMany().SetOrdered(true)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		im.logerr(c, "InsertMany failed", err)
		return err
	}
	return nil
}

func (im *impl) FindOne(c ctx.Ctx, table domain.Table, query, result interface{}) error {
	defer met.BumpTime("time", "func", "findone", "table", string(table)).End()
	defer slowLog(c, string(table), "findone", query, nil)()

	c = ctx.WithValues(c, map[string]interface{}{
		"table": table,
		"query": query,
	})

	if err := im.checkQueryIndex(c, string(table), "find", bson.E{Key: "filter", Value: query}); err != nil {
		im.logerr(c, "checkQueryIndex failed", err)
		return err
	}

	res := im.coll(table).FindOne(c, query, options.FindOne().SetMaxTime(queryMaxTime))
	if err := res.Decode(result); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		im.logerr(c, "FindOne: FindOne error", err)
		return err
	}
	return nil
}

func (im *impl) Count(c ctx.Ctx, table domain.Table, selector interface{}) (int, error) {
	defer met.BumpTime("time", "func", "count", "table", string(table)).End()
	defer slowLog(c, string(table), "count", selector, nil)()

	c = ctx.WithValues(c, map[string]interface{}{
		"table":    table,
		"selector": selector,
	})

	if err := im.checkQueryIndex(c, string(table), "count", bson.E{Key: "query", Value: selector}); err != nil {
		im.logerr(c, "checkQueryIndex failed", err)
		return 0, err
	}

	count, err := im.coll(table).CountDocuments(c, selector, options.Count().SetMaxTime(queryMaxTime))
	if err != nil {
		im.logerr(c, "Count: CountDocuments failed", err)
		return 0, err
	}
	return int(count), nil
}

func (im *impl) Upsert(c ctx.Ctx, table domain.Table, selector, update interface{}) error {
	defer met.BumpTime("time", "func", "upsert", "table", string(table)).End()
	defer slowLog(c, string(table), "upsert", selector, nil)()

	c = ctx.WithValues(c, map[string]interface{}{
		"table":    table,
		"selector": selector,
	})

	if _, err := im.coll(table).ReplaceOne(c, selector, update, options.Replace().SetUpsert(true)); err != nil {
		im.logerr(c, "Upsert: ReplaceOne failed", err)
		return err
	}
	return nil
}

func getSortOption(sortStrings ...string) bson.D {
	res := bson.D{}
	for _, sort := range sortStrings {
		if sort == "" {
			continue
		}
		if sort[0] == '-' {
			res = append(res, bson.E{Key: sort[1:], Value: -1})
		} else {
			res = append(res, bson.E{Key: sort, Value: 1})
		}
	}
	return res
}

func (im *impl) Search(c ctx.Ctx, table domain.Table, offset, limit int, sort string, query, results interface{}) error {
	return im.SearchNSorts(c, table, offset, limit, []string{sort}, query, results)
}

func (im *impl) SearchNSorts(c ctx.Ctx, table domain.Table, offset, limit int, sortFields []string, query, results interface{}) error {
	defer met.BumpTime("time", "func", "search", "table", string(table)).End()
	defer slowLog(c, string(table), "search", query, sortFields)()

	c = ctx.WithValues(c, map[string]interface{}{
		"table": table,
		"query": query,
	})

	if err := im.checkQueryIndex(c, string(table), "find", bson.E{Key: "filter", Value: query}); err != nil {
		im.logerr(c, "checkQueryIndex failed", err)
		return err
	}

	findOpts := options.Find().SetMaxTime(queryMaxTime).SetSkip(int64(offset))
	if limit > 0 {
		findOpts.SetLimit(int64(limit))
	}
	if sortOpt := getSortOption(sortFields...); len(sortOpt) > 0 {
		findOpts.SetSort(sortOpt)
	}
	cursor, err := im.coll(table).Find(c, query, findOpts)
	if err != nil {
		im.logerr(c, "Search: Find failed", err)
		return err
	}
	defer cursor.Close(c)

	if err := cursor.All(c, results); err != nil {
		im.logerr(c, "Search: cursor.All failed", err)
		return err
	}
	return nil
}

func (im *impl) RemoveAll(c ctx.Ctx, table domain.Table, selector interface{}) (int64, error) {
	defer met.BumpTime("time", "func", "removeAll", "table", string(table)).End()
	defer slowLog(c, string(table), "removeAll", selector, nil)()

	c = ctx.WithValues(c, map[string]interface{}{
		"table":    table,
		"selector": selector,
	})

	res, err := im.coll(table).DeleteMany(c, selector)
	if err != nil {
		im.logerr(c, "RemoveAll: DeleteMany failed", err)
		return 0, err
	}
	return res.DeletedCount, nil
}

func (im *impl) Patch(c ctx.Ctx, table domain.Table, selector, update interface{}, ops ...PatchOp) error {
	defer met.BumpTime("time", "func", "update", "table", string(table)).End()
	defer slowLog(c, string(table), "update", selector, nil)()

	o := &patchOp{}
	for _, opt := range ops {
		opt(o)
	}

	c = ctx.WithValues(c, map[string]interface{}{
		"table":    table,
		"selector": selector,
	})

	var (
		updateRes *mongo.UpdateResult
		err       error
	)
	updater := bson.M{"$set": update}
	if o.patchMany {
		updateRes, err = im.coll(table).UpdateMany(c, selector, updater)
	} else {
		updateRes, err = im.coll(table).UpdateOne(c, selector, updater)
	}
	if err != nil {
		im.logerr(c, "Patch: Update failed", err)
		return err
	}

	if updateRes.MatchedCount == 0 && updateRes.ModifiedCount == 0 && updateRes.UpsertedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (im *impl) CustomPatch(c ctx.Ctx, table domain.Table, selector, update bson.M, upsert bool) error {
	defer met.BumpTime("time", "func", "customupdate", "table", string(table)).End()
	defer slowLog(c, string(table), "customupdate", selector, nil)()

	c = ctx.WithValues(c, map[string]interface{}{
		"table":    table,
		"selector": selector,
	})

	updateRes, err := im.coll(table).UpdateOne(c, selector, update, options.Update().SetUpsert(upsert))
	if err != nil {
		im.logerr(c, "CustomPatch: UpdateOne failed", err)
		return err
	}

	if updateRes.MatchedCount == 0 && updateRes.ModifiedCount == 0 && updateRes.UpsertedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (im *impl) EnsureIndexes(c ctx.Ctx, table domain.Table, indexes ...Index) error {
	models := make([]mongo.IndexModel, 0, len(indexes))
	for _, idx := range indexes {
		models = append(models, mongo.IndexModel{
			Keys:    getSortOption(idx.Keys...),
			Options: options.Index().SetUnique(idx.Unique),
		})
	}
	if len(models) == 0 {
		return nil
	}
	if _, err := im.coll(table).Indexes().CreateMany(c, models); err != nil {
		im.logerr(ctx.WithValue(c, "table", table), "EnsureIndexes failed", err)
		return err
	}
	return nil
}

// RunWithTransaction runs run in a mongo transaction. The driver may call run
// again on transient errors, work outside mongo inside run has to tolerate that.
func (im *impl) RunWithTransaction(c ctx.Ctx, run func(ctx.Ctx) error) error {
	var token int
	select {
	case <-c.Done():
		return c.Err()
	case token = <-im.tokens:
	}
	defer func() { im.tokens <- token }()

	// explain command is not support in transaction
	if im.checkIndex {
		return run(c)
	}

	session, err := im.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(c)

	fn := func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, run(ctx.From(c, sessCtx))
	}
	_, err = session.WithTransaction(c, fn)
	return err
}

func slowLog(c ctx.Ctx, table, action string, query interface{}, sort interface{}) func() {
	start := timeNow()

	return func() {
		elapsedMs := time.Since(start).Milliseconds()
		if elapsedMs >= slowLogMs {
			met.BumpSum("slowlog", 1, "table", table, "action", action)
			c.WithFields(log.Fields{
				"table":      table,
				"action":     action,
				"startTime":  start.Unix(),
				"durationMs": elapsedMs,
				"query":      query,
				"sort":       sort,
			}).Warn("mongo slowlog")
		}
	}
}

func (im *impl) checkQueryIndex(c ctx.Ctx, table string, action string, query bson.E) error {
	if !im.checkIndex {
		return nil
	}
	// reference: https://docs.mongodb.com/manual/reference/command/explain/
	res := im.client.Database(im.client.DbName).RunCommand(c, bson.D{
		bson.E{
			Key: "explain",
			Value: bson.D{
				bson.E{Key: action, Value: table},
				query,
			},
		},
		bson.E{Key: "verbosity", Value: "queryPlanner"},
	})

	var m bson.M
	if err := res.Decode(&m); err != nil {
		c.WithField("err", err).Warn("checkQueryIndex decode failed")
		met.BumpSum("checkQueryIndex.err", 1)
		return nil
	}

	// the explain output differs between server versions, a string match is the stable check
	if strings.Contains(fmt.Sprintf("%v", m), "COLLSCAN") {
		c.WithField("query", query).Warn("COLLSCAN")
		return ErrCollScan
	}
	return nil
}
