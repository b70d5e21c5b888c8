package mpsm

// Tuple is one row of a relation. Tables are plain []Tuple; a table is
// sorted when it is ordered by Key alone.
type Tuple struct {
	Key     uint64
	Payload uint64
}

// Joined is one row of an equi-join result.
type Joined struct {
	Key          uint64
	LeftPayload  uint64
	RightPayload uint64
}
