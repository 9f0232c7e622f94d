package domain

// Teams are derived from seat parity and never stored.
const (
	TeamEven = 0
	TeamOdd  = 1
)

// Team returns the team of seat: seat mod 2.
func Team(seat int) int {
	return seat % 2
}

// SameTeam reports whether two seats play together.
func SameTeam(a, b int) bool {
	return Team(a) == Team(b)
}

// OpponentSeat returns the single opposing seat that profits from a failed
// declaration by seat: the next seat clockwise, wrapping the last seat to 1.
func OpponentSeat(seat, seats int) int {
	if seat == seats {
		return 1
	}
	return seat + 1
}

// SlotSeat returns the seat expected for declaration slot i (0-based) of team.
// Slots enumerate the team's seats in increasing order.
func SlotSeat(slot, team int) int {
	return 2*(slot+1) - team
}

// TeamSeats lists the seats of team at a table of the given size.
func TeamSeats(team, seats int) []int {
	out := make([]int, 0, seats/2)
	for s := 1; s <= seats; s++ {
		if Team(s) == team {
			out = append(out, s)
		}
	}
	return out
}
