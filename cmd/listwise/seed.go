package main

import (
	"context"
	"time"

	"github.com/mkarven/listwise/internal/store/memstore"
	"github.com/mkarven/listwise/pkg/suggest"
)

// demoEntry is one seeded historical item: title, days since last use, and
// how many times it appears in the history.
type demoEntry struct {
	title    string
	agedDays int
	count    int
	quantity int
}

// seedDemoStore builds an in-memory corpus that behaves like a few months
// of grocery history, so CLI mode has something to rank without a database.
func seedDemoStore() (*memstore.MemoryStore, error) {
	entries := []demoEntry{
		{title: "Milk", agedDays: 1, count: 18, quantity: 1},
		{title: "Eggs", agedDays: 2, count: 15, quantity: 12},
		{title: "Bread", agedDays: 1, count: 14, quantity: 1},
		{title: "Butter", agedDays: 5, count: 9, quantity: 1},
		{title: "Eggplant", agedDays: 12, count: 2, quantity: 2},
		{title: "Milk chocolate", agedDays: 20, count: 3, quantity: 1},
		{title: "Bananas", agedDays: 3, count: 11, quantity: 6},
		{title: "Coffee beans", agedDays: 8, count: 6, quantity: 1},
		{title: "Toilet paper", agedDays: 15, count: 4, quantity: 8},
		{title: "Orange juice", agedDays: 6, count: 7, quantity: 1},
		{title: "Tomatoes", agedDays: 4, count: 8, quantity: 5},
		{title: "Toothpaste", agedDays: 35, count: 2, quantity: 1},
	}

	s := memstore.New()
	ctx := context.Background()
	now := time.Now()

	for _, e := range entries {
		for i := 0; i < e.count; i++ {
			// Spread occurrences back in time, newest at agedDays.
			touched := now.AddDate(0, 0, -(e.agedDays + i*7))
			_, err := s.Create(ctx, suggest.HistoricalItem{
				ListID:     "demo-list",
				Title:      e.title,
				Quantity:   e.quantity,
				CreatedAt:  touched,
				ModifiedAt: touched,
			})
			if err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}
