package triego_test

import (
	"fmt"
	"log"

	"github.com/hupe1980/triego"
	"github.com/hupe1980/triego/query"
)

type Spell struct {
	ID   string
	Name string
}

// Example_search demonstrates basic indexing and prefix search.
func Example_search() {
	ts, err := triego.New(
		func(s Spell) string { return s.ID },
		triego.Key(func(s Spell) string { return s.Name }),
	)
	if err != nil {
		log.Fatal(err)
	}

	ts.Add(Spell{ID: "1", Name: "Fireball"})
	ts.Add(Spell{ID: "2", Name: "Firewall"})
	ts.Add(Spell{ID: "3", Name: "Icebolt"})

	hits, err := ts.Search("fire")
	if err != nil {
		log.Fatal(err)
	}

	for _, h := range hits {
		fmt.Println(h.Item.Name)
	}
	// Output:
	// Fireball
	// Firewall
}

// Example_limit demonstrates truncating results in engine order.
func Example_limit() {
	ts, _ := triego.New(
		func(s Spell) string { return s.ID },
		triego.Key(func(s Spell) string { return s.Name }),
	)

	ts.Add(Spell{ID: "1", Name: "Fireball"})
	ts.Add(Spell{ID: "2", Name: "Firewall"})

	hits, _ := ts.Search("fire", func(o *triego.SearchOptions[Spell]) {
		o.Limit = 1
	})

	fmt.Println(len(hits), hits[0].Item.Name)
	// Output: 1 Fireball
}

// Example_jsonKeys demonstrates indexing raw JSON documents with
// gjson path selectors.
func Example_jsonKeys() {
	ts, _ := triego.New(
		triego.JSONPath("id"),
		triego.JSONKeys("name", "school"),
	)

	ts.Add(`{"id":"1","name":"Fireball","school":"evocation"}`)
	ts.Add(`{"id":"2","name":"Counterspell","school":"abjuration"}`)

	hits, _ := ts.Search("evoc fire")
	for _, h := range hits {
		fmt.Println(h.ID)
	}
	// Output: 1
}

// Example_reactiveQuery demonstrates the observable query facade.
func Example_reactiveQuery() {
	ts, _ := triego.New(
		func(s Spell) string { return s.ID },
		triego.Key(func(s Spell) string { return s.Name }),
	)
	ts.Add(Spell{ID: "1", Name: "Fireball"})
	ts.Add(Spell{ID: "2", Name: "Firewall"})

	q, _ := query.New(ts)
	defer q.Destroy()

	q.Subscribe(func(hits []triego.Hit[Spell]) {
		fmt.Printf("gen %d: %d hits\n", q.Generation(), len(hits))
	})

	q.Text().Set("fire")                    // recompute + publish
	q.Limit().Set(1)                        // re-truncate + publish
	ts.Add(Spell{ID: "3", Name: "Firefly"}) // index change + publish
	// Output:
	// gen 1: 2 hits
	// gen 2: 1 hits
	// gen 3: 1 hits
}
