package workorder

import (
	"fmt"
	"strconv"
	"strings"
)

// NumberPrefix prefijo de los números de orden.
const NumberPrefix = "OT"

// FormatNumber arma OT-<año>-NNN con al menos tres dígitos (OT-2024-007, OT-2024-1000).
func FormatNumber(year, seq int) string {
	return fmt.Sprintf("%s-%d-%03d", NumberPrefix, year, seq)
}

// YearPattern patrón LIKE para buscar números del año.
func YearPattern(year int) string {
	return fmt.Sprintf("%s-%d-%%", NumberPrefix, year)
}

// ParseSequence extrae el consecutivo de un número OT-<año>-NNN.
func ParseSequence(number string) (int, error) {
	parts := strings.Split(number, "-")
	if len(parts) != 3 || parts[0] != NumberPrefix {
		return 0, fmt.Errorf("número de orden mal formado: %q", number)
	}
	seq, err := strconv.Atoi(parts[2])
	if err != nil || seq < 0 {
		return 0, fmt.Errorf("consecutivo inválido en %q", number)
	}
	return seq, nil
}

// NextNumber calcula el siguiente número del año a partir del último emitido.
// last vacío (ninguna orden en el año) empieza en 001.
func NextNumber(year int, last string) (string, error) {
	if last == "" {
		return FormatNumber(year, 1), nil
	}
	seq, err := ParseSequence(last)
	if err != nil {
		return "", err
	}
	return FormatNumber(year, seq+1), nil
}
