package config

// CategoryWeights orders command categories in help output.
var CategoryWeights = map[string]int{
	"🕯️ Information": 0,
	"🧪 Projects":     10,
	"💬 Language":     20,
}
