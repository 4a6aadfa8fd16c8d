package fleet

import (
	"fmt"
	"math/rand"
)

// shipNames is the pool ship names are drawn from.
var shipNames = []string{
	"Han", "Masada", "Gnome", "Yang Zhen", "Yan Di", "Numancia", "Su Shili", "He Ran", "Sea Wolf", "Infinite Frontier",
	"Anyang", "Vikramaditya", "Sao Paulo", "Newton", "Sweden", "Xing Tian", "Rhode Island", "Victory", "Mojie", "Cuauhtemoc",
	"Hunter", "Avenger", "Albion", "Meiji", "Dayuan", "Toronto", "Kentucky", "Hurricane", "Tonnerre", "Kunpeng",
	"Antarctica", "Kingston", "Independence Day", "Delhi", "Bentus", "Columbia", "Xu Zhexin", "Autumn Rain", "Santisima Trinidad", "Tsar",
	"Guanchou", "Picha", "Niteroi", "Glorious", "Iron Man", "Orca", "Washington", "Zeeland", "Snow Lotus", "Ho Chi Minh",
	"Los Angeles", "Yushu", "Hercules", "Mysore", "Volga", "Missouri", "Stalin", "Blue Knight", "Chariot", "Roosevelt",
	"Cloud", "Yilan", "Virginia", "Yamato", "Tai'an", "China Cat", "Victoria", "Golden Lion", "Bafang", "Faraway",
	"Feynman", "Mosquitofish", "Orient", "Drummond", "Abenaki", "Cretaceous", "Dreadnought", "Iroquois", "Metropolis", "Mistral",
	"Rattlesnake", "Fuxu", "Forward", "Nautilus", "Descartes", "Shangri-La", "Nekobazaki", "Haoyuan", "Chollima", "Everest",
	"Crystal Princess", "Holland", "Xuejian", "Enlightenment", "Ranger", "Nelson", "Lexington", "Mumbai", "North", "Foghorn",
	"Mandela", "Thanksgiving", "Mei Qiuyu", "Dixmude", "Venezuela", "Ohio", "Ticonderoga", "Arctic Ocean", "Viking", "Elizabeth",
	"Linlang", "Schrodinger", "Wuhan", "Valmy", "Book of Kells", "Extreme", "Arleigh Burke", "Adam", "Groningen", "Son of the Sea",
	"Terrible", "San Diego", "Proton", "Shang", "Zhenyuan", "Ganges", "Zhiyuan", "Kilo", "East Wind", "Salta",
	"Algonquin", "Wandering", "Joy", "Einstein", "Xia", "Protector", "Green", "Ark Royal", "Shudra", "Izu",
	"Moskva", "Halifax", "Fermi", "Royal Oak", "Tempest", "Atlantic",
}

// drawNames returns n unique names in random order. When n exceeds the pool,
// later passes get a numeric suffix.
func drawNames(rng *rand.Rand, n int) []string {
	pool := uniqueNames()
	perm := rng.Perm(len(pool))
	out := make([]string, n)
	for i := 0; i < n; i++ {
		name := pool[perm[i%len(pool)]]
		if pass := i / len(pool); pass > 0 {
			name = fmt.Sprintf("%s %d", name, pass+1)
		}
		out[i] = name
	}
	return out
}

func uniqueNames() []string {
	seen := make(map[string]bool, len(shipNames))
	out := make([]string, 0, len(shipNames))
	for _, n := range shipNames {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
