package main

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

func main() {
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
		fmt.Printf("direct search: %s %s\n", h.ID, h.Item.Name)
	}

	// Reactive query: republishes whenever text, limit, reducer or the
	// index changes.
	q, err := query.New(ts, query.WithLimit[Spell](10))
	if err != nil {
		log.Fatal(err)
	}
	defer q.Destroy()

	q.Subscribe(func(hits []triego.Hit[Spell]) {
		names := make([]string, 0, len(hits))
		for _, h := range hits {
			names = append(names, h.Item.Name)
		}
		fmt.Printf("gen %d: %v\n", q.Generation(), names)
	})

	q.Text().Set("fire")                    // gen 1: [Fireball Firewall]
	q.Limit().Set(1)                        // gen 2: [Fireball]
	ts.Add(Spell{ID: "4", Name: "Firefly"}) // gen 3: [Fireball]
	q.Limit().Set(triego.NoLimit)           // gen 4: [Fireball Firewall Firefly]
}
