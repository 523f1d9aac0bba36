package domain

// PermissionSnapshot is the union of the flags of every role a user belongs
// to at the moment of the lookup.
type PermissionSnapshot struct {
	AgeRestricted bool
	Privileged    bool
}

// Merge ORs the flags of a role into the snapshot.
func (p PermissionSnapshot) Merge(ageRestricted, privileged bool) PermissionSnapshot {
	return PermissionSnapshot{
		AgeRestricted: p.AgeRestricted || ageRestricted,
		Privileged:    p.Privileged || privileged,
	}
}

// MayDrain is the coarse gate applied before the pending queue is swept for
// an identified user.
func (p PermissionSnapshot) MayDrain() bool {
	return p.Privileged || !p.AgeRestricted
}

// Allows evaluates Allowed for a restricted command.
func (p PermissionSnapshot) Allows(cmd Command) bool {
	return Allowed(cmd.AgeRestricted, cmd.Privileged, p.AgeRestricted, p.Privileged)
}

// Allowed decides whether a user with flags (ua, up) may run a command with
// flags (ca, cp). Unrestricted commands never reach this predicate.
//
// The third branch also requires the user to be free of age restriction for a
// command that is both age restricted and privileged. Kept literally for
// compatibility with existing home configurations.
func Allowed(ca, cp, ua, up bool) bool {
	return (ca && !ua && !cp) ||
		(cp && up && !ca) ||
		(ca && !ua && cp && up)
}
