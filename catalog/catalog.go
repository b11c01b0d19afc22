// Package catalog holds the static contest content: the problem
// listing and the locally judged bonus chain. Flags for regular
// problems are judged by the backend.
package catalog

// Problem is one catalog entry.
type Problem struct {
	ID          int
	Title       string
	Difficulty  string
	Points      int
	Category    string
	Description string
}

// Categories in display order.
var Categories = []string{"Normal", "Debugging", "Function Reversal", "Algorithm"}

var problems = []Problem{
	{ID: 1, Title: "Hamming Weights", Difficulty: "Easy", Points: 100, Category: "Normal",
		Description: "Find the count of 1's in binary."},
	{ID: 2, Title: "Redstone Circuit", Difficulty: "Medium", Points: 200, Category: "Debugging",
		Description: "Reverse engineer the redstone encoding algorithm."},
	{ID: 3, Title: "Mystery Function", Difficulty: "Hard", Points: 300, Category: "Function Reversal",
		Description: "Determine what this obfuscated function does."},
	{ID: 4, Title: "Path Finder", Difficulty: "Medium", Points: 250, Category: "Algorithm",
		Description: "Optimize the pathfinding algorithm for efficiency."},
	{ID: 5, Title: "Simple Cipher", Difficulty: "Easy", Points: 150, Category: "Normal",
		Description: "Decode a basic encryption scheme."},
	{ID: 6, Title: "Memory Leak Hunt", Difficulty: "Hard", Points: 350, Category: "Debugging",
		Description: "Find and fix the memory leak in the server code."},
}

// Problems returns every catalog entry in id order.
func Problems() []Problem {
	return problems
}

// ByID looks a problem up by its id.
func ByID(id int) (Problem, bool) {
	for _, p := range problems {
		if p.ID == id {
			return p, true
		}
	}
	return Problem{}, false
}

// ByCategory returns the problems of one category, in catalog order.
func ByCategory(category string) []Problem {
	var out []Problem
	for _, p := range problems {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// BonusLevel is a sequential challenge judged locally: solving one
// unlocks the next.
type BonusLevel struct {
	ID          int
	Title       string
	Description string
	Flag        string
	Unlocks     int // level unlocked on success, 0 for the last one
}

var bonusLevels = []BonusLevel{
	{
		ID:          1,
		Title:       "The Hidden Biome",
		Description: "Find the glitch in the terrain generation code.",
		Flag:        "flag{biome_glitch_fixed}",
		Unlocks:     2,
	},
	{
		ID:          2,
		Title:       "The Ender Dragon's Secret",
		Description: "Decrypt the dragon's roar to find the final flag.",
		Flag:        "flag{ender_dragon_defeated}",
	},
}

// BonusLevels returns the bonus chain in order.
func BonusLevels() []BonusLevel {
	return bonusLevels
}

// Bonus looks a bonus level up by id.
func Bonus(id int) (BonusLevel, bool) {
	for _, l := range bonusLevels {
		if l.ID == id {
			return l, true
		}
	}
	return BonusLevel{}, false
}
