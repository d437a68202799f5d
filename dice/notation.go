package dice

import (
	"fmt"
	"regexp"
	"strconv"
)

var notationRegex = regexp.MustCompile(`^(\d*)[dD](\d+)([+-]\d+)?$`)

// Notation is a parsed dice expression like "1d8" or "2d6+1".
type Notation struct {
	Count    int
	Size     int
	Modifier int
}

// ParseNotation parses simple dice notation: "1d8", "2d6+3", "d20".
func ParseNotation(notation string) (Notation, error) {
	matches := notationRegex.FindStringSubmatch(notation)
	if matches == nil {
		return Notation{}, fmt.Errorf("dice: invalid notation %q", notation)
	}

	count := 1
	if matches[1] != "" {
		var err error
		count, err = strconv.Atoi(matches[1])
		if err != nil {
			return Notation{}, fmt.Errorf("dice: invalid count in %q: %w", notation, err)
		}
	}

	size, err := strconv.Atoi(matches[2])
	if err != nil {
		return Notation{}, fmt.Errorf("dice: invalid die size in %q: %w", notation, err)
	}
	if size <= 0 {
		return Notation{}, fmt.Errorf("dice: die size must be positive in %q", notation)
	}

	modifier := 0
	if matches[3] != "" {
		modifier, err = strconv.Atoi(matches[3])
		if err != nil {
			return Notation{}, fmt.Errorf("dice: invalid modifier in %q: %w", notation, err)
		}
	}

	return Notation{Count: count, Size: size, Modifier: modifier}, nil
}

// Roll rolls the notation using roller and returns the individual dice rolls
// and the final total (dice sum plus modifier).
func (n Notation) Roll(roller Roller) ([]int, int, error) {
	rolls, err := roller.RollN(n.Count, n.Size)
	if err != nil {
		return nil, 0, err
	}
	total := n.Modifier
	for _, r := range rolls {
		total += r
	}
	return rolls, total, nil
}
