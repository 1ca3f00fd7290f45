/*
Package server implements msgpack IPC for the suggestion service.

The host list-management app embeds the service as a child process and talks
binary msgpack over stdin/stdout. Messages are processed synchronously with
timing info included in responses.

# IPC

Each request carries an ID and an action. The default action is a suggestion
query:

	{"id": "req_001", "p": "mi", "x": "item-being-edited", "l": 10}

The server responds with the ranked suggestions:

	{"id": "req_001", "s": [{"id": "...", "t": "Milk", "f": 2, "sc": 87.4, "r": 1}], "c": 1, "t": 2}

The host app reports corpus mutations (item created, edited, deleted,
crossed out) so cached rankings are dropped:

	{"id": "inv_001", "action": "invalidate"}

Other actions: "stats" returns cache/scan counters, "health" a liveness
check, "config_update" adjusts server limits at runtime and persists them to
the TOML config.

msgpack keeps messages compact on the hot path; every keystroke past the
activation threshold can produce a query.
*/
package server

// Request is the single request envelope. An empty action means a
// suggestion query.
type Request struct {
	ID      string `msgpack:"id"`
	Action  string `msgpack:"action,omitempty"` // "", "invalidate", "stats", "config_update", "health"
	Prefix  string `msgpack:"p,omitempty"`
	Exclude string `msgpack:"x,omitempty"` // id of the item being edited
	Limit   int    `msgpack:"l,omitempty"`

	// config_update fields
	DefaultLimit *int `msgpack:"default_limit,omitempty"`
	MaxLimit     *int `msgpack:"max_limit,omitempty"`
	MaxPrefix    *int `msgpack:"max_prefix,omitempty"`
}

// SuggestionPayload is one ranked suggestion on the wire. Selecting it in
// the UI copies title, description, quantity and images into the item form.
type SuggestionPayload struct {
	ID             string   `msgpack:"id"`
	Title          string   `msgpack:"t"`
	Description    string   `msgpack:"d,omitempty"`
	Quantity       int      `msgpack:"q,omitempty"`
	Images         []string `msgpack:"img,omitempty"`
	Frequency      int      `msgpack:"f"`
	LastUsed       int64    `msgpack:"u,omitempty"` // unix seconds
	Score          float64  `msgpack:"sc"`
	RecencyScore   float64  `msgpack:"rs"`
	FrequencyScore float64  `msgpack:"fs"`
	Rank           uint16   `msgpack:"r"`
}

// SuggestResponse answers a suggestion query.
type SuggestResponse struct {
	ID          string              `msgpack:"id"`
	Suggestions []SuggestionPayload `msgpack:"s"`
	Count       int                 `msgpack:"c"`
	TimeTaken   int64               `msgpack:"t"` // milliseconds
}

// StatusResponse answers invalidate, stats, health and config_update.
type StatusResponse struct {
	ID     string         `msgpack:"id,omitempty"`
	Status string         `msgpack:"status"`
	Error  string         `msgpack:"error,omitempty"`
	Stats  map[string]int `msgpack:"stats,omitempty"`
}

// ErrorResponse holds basic error information for failed requests.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
