// SPDX-License-Identifier: MPL-2.0

package capability

type (
	// Snapshot is the complete, immutable set of flags and identity of one
	// build. It is created by New and never modified afterwards, so any
	// number of goroutines may read it concurrently without synchronization.
	Snapshot struct {
		identity Identity
		kinds    [flagCount]Kind
		values   [flagCount]Value
	}

	// Entry is one resolved flag of a Snapshot.
	Entry struct {
		Flag  Flag
		Kind  Kind
		Value Value
	}
)

// Has reports whether the flag is present, with or without a value.
// Unknown flag names are absent.
func (s *Snapshot) Has(f Flag) bool {
	return s.Kind(f).IsPresent()
}

// Value returns the value of a valued flag. It returns false for absent
// flags, boolean flags and unknown names.
func (s *Snapshot) Value(f Flag) (Value, bool) {
	i, ok := flagIndex[f]
	if !ok || s.kinds[i] != KindValued {
		return Value{}, false
	}
	return s.values[i], true
}

// Kind returns the resolved kind of the flag. Unknown names are KindAbsent.
func (s *Snapshot) Kind(f Flag) Kind {
	i, ok := flagIndex[f]
	if !ok {
		return KindAbsent
	}
	return s.kinds[i]
}

// Identity returns the package identity record.
func (s *Snapshot) Identity() Identity { return s.identity }

// Flags returns the present flags in declaration order.
func (s *Snapshot) Flags() []Flag {
	var flags []Flag
	for i := range flagTable {
		if s.kinds[i].IsPresent() {
			flags = append(flags, flagTable[i].flag)
		}
	}
	return flags
}

// Entries returns every flag of the closed set with its resolved state, in
// declaration order. Absent flags are included.
func (s *Snapshot) Entries() []Entry {
	entries := make([]Entry, flagCount)
	for i := range flagTable {
		entries[i] = Entry{Flag: flagTable[i].flag, Kind: s.kinds[i], Value: s.values[i]}
	}
	return entries
}
