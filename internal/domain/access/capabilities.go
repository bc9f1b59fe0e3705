package access

// CapabilitiesFor lists the operations a role may perform on an unlocked
// entity it did not author.
func (p Policy) CapabilitiesFor(role Role) []Operation {
	caps := []Operation{}
	for _, op := range Operations {
		if p.Allows(Request{Role: role, Op: op}) {
			caps = append(caps, op)
		}
	}
	return caps
}
