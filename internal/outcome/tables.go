package outcome

// band assigns value to every index in [from, to)
type band struct {
	from, to int
	value    int
}

func buildTable(size, fill int, bands ...band) []int {
	t := make([]int, size)
	for i := range t {
		t[i] = fill
	}
	for _, b := range bands {
		for i := b.from; i < b.to; i++ {
			t[i] = b.value
		}
	}
	return t
}

var (
	baseAmmoCounts = buildTable(BaseAmmoRange, 0,
		band{0, 2, 6}, band{2, 4, 5}, band{4, 8, 4}, band{8, 16, 3}, band{16, 32, 2}, band{32, 63, 1})

	bonusAmmoCounts = buildTable(BonusAmmoRange, 0,
		band{0, 2, 5}, band{2, 4, 4}, band{4, 8, 3}, band{8, 16, 2}, band{16, 32, 1})

	bonusMultipliers = buildTable(BonusMultiplierRange, 1,
		band{0, 2, 100}, band{2, 4, 75}, band{4, 8, 50}, band{8, 16, 20}, band{16, 32, 10}, band{32, 63, 5})
)

// BaseAmmoCount returns the chambers loaded for a base roll in [0,63)
func BaseAmmoCount(roll int) int {
	return lookup(baseAmmoCounts, roll)
}

// BonusAmmoCount returns the extra chambers loaded for a bonus roll in [0,186)
func BonusAmmoCount(roll int) int {
	return lookup(bonusAmmoCounts, roll)
}

// BonusMultiplier returns the multiplier band for a roll in [0,64)
func BonusMultiplier(roll int) int {
	return lookup(bonusMultipliers, roll)
}

func lookup(t []int, i int) int {
	if i < 0 || i >= len(t) {
		return 0
	}
	return t[i]
}

// Tables is a copy of every lookup table, published so players can check them
type Tables struct {
	BaseAmmoCounts   []int `json:"baseAmmoCounts"`
	BonusAmmoCounts  []int `json:"bonusAmmoCounts"`
	BonusMultipliers []int `json:"bonusMultipliers"`
}

// AllTables returns copies of the tables
func AllTables() Tables {
	return Tables{
		BaseAmmoCounts:   append([]int(nil), baseAmmoCounts...),
		BonusAmmoCounts:  append([]int(nil), bonusAmmoCounts...),
		BonusMultipliers: append([]int(nil), bonusMultipliers...),
	}
}
