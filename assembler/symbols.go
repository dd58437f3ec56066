package assembler

// symbolTable unifies code labels and data names into one lookup for
// operand resolution, even though they are captured in two disjoint
// passes over the source. Duplicates across either namespace are a
// fatal error, so both namespaces share one map keyed by name.
type symbolTable struct {
	values map[string]uint32
	lines  map[string]int // definition line, for duplicate diagnostics
}

func newSymbolTable() *symbolTable {
	return &symbolTable{
		values: make(map[string]uint32),
		lines:  make(map[string]int),
	}
}

// defineLabel binds a code label to a byte offset within the code
// region. Returns an error if the name was already bound, whether as
// a label or as a data name.
func (st *symbolTable) defineLabel(name string, offset uint32, line int) error {
	if _, exists := st.values[name]; exists {
		return newError(ErrDuplicateLabel, line, "duplicate label %q (first defined on line %d)", name, st.lines[name])
	}
	st.values[name] = offset
	st.lines[name] = line
	return nil
}

// defineData binds a data name to an absolute address. Returns an
// error if the name was already bound, whether as a data name or a
// code label.
func (st *symbolTable) defineData(name string, address uint32, line int) error {
	if _, exists := st.values[name]; exists {
		return newError(ErrDuplicateData, line, "duplicate data name %q (first defined on line %d)", name, st.lines[name])
	}
	st.values[name] = address
	st.lines[name] = line
	return nil
}

// lookup resolves a symbolic name to its address, returning false if
// it names neither a code label nor a data name.
func (st *symbolTable) lookup(name string) (uint32, bool) {
	v, ok := st.values[name]
	return v, ok
}
