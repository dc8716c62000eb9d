package routing

const (
	STRATEGY_BOUNDED  = "bounded"
	STRATEGY_DIJKSTRA = "dijkstra"
)
