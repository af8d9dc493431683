package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/triego"
	"github.com/hupe1980/triego/query"
)

type spell struct {
	ID   string
	Name string
}

func newSpellIndex(t *testing.T) *triego.TrieSearch[spell] {
	t.Helper()
	ts, err := triego.New(
		func(s spell) string { return s.ID },
		triego.Key(func(s spell) string { return s.Name }),
	)
	require.NoError(t, err)
	require.NoError(t, ts.Add(spell{ID: "1", Name: "Fireball"}))
	require.NoError(t, ts.Add(spell{ID: "2", Name: "Firewall"}))
	require.NoError(t, ts.Add(spell{ID: "3", Name: "Icebolt"}))
	return ts
}

func ids(hits []triego.Hit[spell]) []string {
	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.ID)
	}
	return out
}

func TestNew(t *testing.T) {
	t.Run("NilIndex", func(t *testing.T) {
		_, err := query.New[spell](nil)
		assert.ErrorIs(t, err, query.ErrNilIndex)
	})

	t.Run("InvalidLimit", func(t *testing.T) {
		ts := newSpellIndex(t)
		_, err := query.New(ts, query.WithLimit[spell](-2))
		assert.ErrorIs(t, err, triego.ErrInvalidLimit)
	})

	t.Run("StartsIdle", func(t *testing.T) {
		ts := newSpellIndex(t)
		q, err := query.New(ts)
		require.NoError(t, err)
		defer q.Destroy()

		var published int
		q.Subscribe(func([]triego.Hit[spell]) { published++ })

		assert.Empty(t, q.Results())
		assert.Equal(t, uint64(0), q.Generation())

		// Index mutations and limit changes while idle publish nothing.
		require.NoError(t, ts.Add(spell{ID: "4", Name: "Firefly"}))
		require.NoError(t, q.Limit().Set(1))
		assert.Equal(t, 0, published)
	})
}

func TestRecompute(t *testing.T) {
	t.Run("TextChangePublishesSynchronously", func(t *testing.T) {
		ts := newSpellIndex(t)
		q, err := query.New(ts)
		require.NoError(t, err)
		defer q.Destroy()

		var got [][]string
		q.Subscribe(func(hits []triego.Hit[spell]) {
			got = append(got, ids(hits))
		})

		require.NoError(t, q.Text().Set("fire"))
		require.Equal(t, [][]string{{"1", "2"}}, got)
		assert.Equal(t, []string{"1", "2"}, ids(q.Results()))

		require.NoError(t, q.Text().Set("ice"))
		assert.Equal(t, [][]string{{"1", "2"}, {"3"}}, got)

		// An unmatched query publishes an empty list, not an error.
		require.NoError(t, q.Text().Set("zzz"))
		assert.Empty(t, q.Results())
		assert.Equal(t, uint64(3), q.Generation())
	})

	t.Run("LimitRetruncatesCachedHits", func(t *testing.T) {
		ts := newSpellIndex(t)
		q, err := query.New(ts)
		require.NoError(t, err)
		defer q.Destroy()

		require.NoError(t, q.Text().Set("fire"))
		require.NoError(t, q.Limit().Set(1))
		assert.Equal(t, []string{"1"}, ids(q.Results()))

		// Repeated recomputation stays consistent.
		require.NoError(t, q.Text().Set("fire"))
		assert.Equal(t, []string{"1"}, ids(q.Results()))

		require.NoError(t, q.Limit().Set(0))
		assert.Empty(t, q.Results())

		require.NoError(t, q.Limit().Set(triego.NoLimit))
		assert.Equal(t, []string{"1", "2"}, ids(q.Results()))

		assert.ErrorIs(t, q.Limit().Set(-3), triego.ErrInvalidLimit)
	})

	t.Run("ReducerAppliesEagerly", func(t *testing.T) {
		ts := newSpellIndex(t)
		q, err := query.New(ts)
		require.NoError(t, err)
		defer q.Destroy()

		require.NoError(t, q.Text().Set("fire"))
		require.Equal(t, []string{"1", "2"}, ids(q.Results()))

		reverse := triego.Reducer[spell](func(query string, hits []triego.Hit[spell]) []triego.Hit[spell] {
			out := make([]triego.Hit[spell], 0, len(hits))
			for i := len(hits) - 1; i >= 0; i-- {
				out = append(out, hits[i])
			}
			return out
		})

		// Setting the reducer recomputes immediately, without waiting
		// for another trigger.
		require.NoError(t, q.Reducer().Set(reverse))
		assert.Equal(t, []string{"2", "1"}, ids(q.Results()))

		require.NoError(t, q.Reducer().Set(nil))
		assert.Equal(t, []string{"1", "2"}, ids(q.Results()))
	})

	t.Run("IndexMutationTriggersRecompute", func(t *testing.T) {
		ts := newSpellIndex(t)
		q, err := query.New(ts)
		require.NoError(t, err)
		defer q.Destroy()

		require.NoError(t, q.Text().Set("fire"))
		require.Equal(t, []string{"1", "2"}, ids(q.Results()))

		require.NoError(t, ts.Add(spell{ID: "4", Name: "Firefly"}))
		assert.Equal(t, []string{"1", "2", "4"}, ids(q.Results()))

		ts.RemoveID("1")
		assert.Equal(t, []string{"2", "4"}, ids(q.Results()))
	})

	t.Run("GenerationsAreMonotonic", func(t *testing.T) {
		ts := newSpellIndex(t)
		q, err := query.New(ts)
		require.NoError(t, err)
		defer q.Destroy()

		var gens []uint64
		q.Subscribe(func([]triego.Hit[spell]) {
			gens = append(gens, q.Generation())
		})

		require.NoError(t, q.Text().Set("fire"))
		require.NoError(t, q.Limit().Set(1))
		require.NoError(t, q.Text().Set("ice"))
		require.NoError(t, ts.Add(spell{ID: "5", Name: "Iceberg"}))

		assert.Equal(t, []uint64{1, 2, 3, 4}, gens)
	})
}

func TestSubscribe(t *testing.T) {
	ts := newSpellIndex(t)
	q, err := query.New(ts)
	require.NoError(t, err)
	defer q.Destroy()

	var a, b int
	unsubA := q.Subscribe(func([]triego.Hit[spell]) { a++ })
	q.Subscribe(func([]triego.Hit[spell]) { b++ })

	require.NoError(t, q.Text().Set("fire"))
	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)

	unsubA()
	require.NoError(t, q.Text().Set("ice"))
	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
}

func TestIndependentQueries(t *testing.T) {
	ts := newSpellIndex(t)

	q1, err := query.New(ts)
	require.NoError(t, err)
	defer q1.Destroy()

	q2, err := query.New(ts, query.WithLimit[spell](1))
	require.NoError(t, err)
	defer q2.Destroy()

	require.NoError(t, q1.Text().Set("fire"))
	require.NoError(t, q2.Text().Set("fire"))

	assert.Equal(t, []string{"1", "2"}, ids(q1.Results()))
	assert.Equal(t, []string{"1"}, ids(q2.Results()))

	// Destroying one query leaves the other and the index untouched.
	q1.Destroy()
	require.NoError(t, ts.Add(spell{ID: "4", Name: "Firefly"}))
	assert.Equal(t, []string{"1"}, ids(q2.Results()))
	assert.Equal(t, 4, ts.Len())
}

func TestDestroy(t *testing.T) {
	ts := newSpellIndex(t)
	q, err := query.New(ts)
	require.NoError(t, err)

	var published int
	q.Subscribe(func([]triego.Hit[spell]) { published++ })

	require.NoError(t, q.Text().Set("fire"))
	require.Equal(t, 1, published)

	q.Destroy()
	assert.True(t, q.Destroyed())
	assert.Empty(t, q.Results())

	// Mutating a destroyed query fails and publishes nothing.
	assert.ErrorIs(t, q.Text().Set("ice"), query.ErrDestroyed)
	assert.ErrorIs(t, q.Limit().Set(1), query.ErrDestroyed)
	assert.ErrorIs(t, q.Reducer().Set(nil), query.ErrDestroyed)
	assert.Equal(t, 1, published)

	// Index mutations no longer reach the destroyed query.
	require.NoError(t, ts.Add(spell{ID: "4", Name: "Firefly"}))
	assert.Empty(t, q.Results())

	// Destroy is idempotent.
	q.Destroy()
}
