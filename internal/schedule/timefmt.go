package schedule

import "fmt"

// FormatTimeUntil renders minutes until departure the way the board prints it.
// Remainders under a quarter hour round down to "about n hours".
func FormatTimeUntil(minutes int) string {
	switch {
	case minutes < 1:
		return "Za chwilę"
	case minutes == 1:
		return "Za 1 min"
	case minutes < 60:
		return fmt.Sprintf("Za %d min", minutes)
	}

	hours, rest := minutes/60, minutes%60
	if rest < 15 {
		return fmt.Sprintf("Za ok. %dh", hours)
	}
	return fmt.Sprintf("Za %dh %dmin", hours, rest)
}
